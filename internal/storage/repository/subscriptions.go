package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

const subscriptionColumns = `id, user_uid, plan_type, status, stripe_customer_id,
				stripe_subscription_id, expires_at, updated_at`

// GetSubscriptionByUserUID возвращает подписку пользователя.
func (s *Storage) GetSubscriptionByUserUID(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByUserUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_uid = $1`
	return s.scanSubscription(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// GetSubscriptionByCustomerRef возвращает подписку по идентификатору клиента
// платёжного шлюза.
func (s *Storage) GetSubscriptionByCustomerRef(ctx context.Context, customerRef string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByCustomerRef"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE stripe_customer_id = $1`
	return s.scanSubscription(s.DB.QueryRowContext(ctx, query, customerRef), op)
}

func (s *Storage) scanSubscription(row *sql.Row, op string) (*models.Subscription, error) {
	var sub models.Subscription
	var planType, status string
	err := row.Scan(&sub.ID, &sub.UserUID, &planType, &status, &sub.StripeCustomerID,
		&sub.StripeSubscriptionID, &sub.ExpiresAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.PlanType = models.PlanType(planType)
	sub.Status = models.SubscriptionStatus(status)
	return &sub, nil
}

// SetCustomerRef сохраняет идентификатор клиента платёжного шлюза,
// если он ещё не задан.
func (s *Storage) SetCustomerRef(ctx context.Context, userUID, customerRef string) error {
	const op = "storage.SetCustomerRef"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET stripe_customer_id = $1, updated_at = now()
			  WHERE user_uid = $2 AND stripe_customer_id = ''`
	result, err := s.DB.ExecContext(ctx, query, customerRef, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}
	return nil
}

// ConfirmPurchase переводит подписку на premium/active одним UPDATE:
// записывает ссылку на подписку шлюза и дату истечения. Возвращает
// количество изменённых строк — 0 означает, что подписка с таким
// customerRef локально не найдена. Пустой customerRef не совпадает ни
// с одной строкой: пустая строка в stripe_customer_id означает, что
// покупка не инициировалась.
func (s *Storage) ConfirmPurchase(ctx context.Context, customerRef, subscriptionRef string, expiresAt time.Time) (int, error) {
	const op = "storage.ConfirmPurchase"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET plan_type = $1, status = $2, stripe_subscription_id = $3,
			      expires_at = $4, updated_at = now()
			  WHERE stripe_customer_id = $5 AND stripe_customer_id <> ''`
	result, err := s.DB.ExecContext(ctx, query,
		string(models.PlanPremium), string(models.StatusActive), subscriptionRef, expiresAt, customerRef)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DowngradeExpired понижает истёкшую premium-подписку пользователя до
// basic/active без даты истечения. Условие на текущем состоянии строки
// делает операцию compare-and-set: из двух конкурентных запросов
// понижение применит ровно один. Возвращает количество изменённых строк.
func (s *Storage) DowngradeExpired(ctx context.Context, userUID string, now time.Time) (int, error) {
	const op = "storage.DowngradeExpired"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET plan_type = $1, status = $2, expires_at = NULL, updated_at = now()
			  WHERE user_uid = $3 AND plan_type = $4 AND expires_at IS NOT NULL AND expires_at < $5`
	result, err := s.DB.ExecContext(ctx, query,
		string(models.PlanBasic), string(models.StatusActive), userUID, string(models.PlanPremium), now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
