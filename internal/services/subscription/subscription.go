// Package subscription содержит бизнес-логику жизненного цикла подписки:
// покупку premium через платёжный шлюз, подтверждение оплаты и ленивое
// понижение истёкшей подписки при чтении статуса.
//
// Состояние подписки меняется только в двух местах: подтверждением оплаченной
// checkout-сессии и понижением истёкшего premium. Создание сессии состояние
// не трогает — доступ не выдаётся раньше, чем оплата прошла.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movie-explorer/internal/config"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Ошибки сервиса подписок.
var (
	// ErrInvalidPlanType — неизвестная длительность подписки в запросе.
	ErrInvalidPlanType = errors.New("invalid plan type")
	// ErrInvalidClientType — неизвестный тип клиента в запросе.
	ErrInvalidClientType = errors.New("invalid client type")
	// ErrNoSubscription — у пользователя нет записи подписки.
	ErrNoSubscription = errors.New("no active subscription found")
	// ErrSubscriptionNotFound — шлюз знает клиента, которого нет в локальном
	// хранилище. Признак рассинхронизации данных, наружу не замалчивается.
	ErrSubscriptionNotFound = errors.New("subscription not found for gateway customer")
)

// DowngradeMessage — текст ответа при ленивом понижении истёкшего premium.
const DowngradeMessage = "Your subscription has expired. Downgrading to basic plan."

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetSubscriptionByUserUID возвращает подписку пользователя.
	GetSubscriptionByUserUID(ctx context.Context, userUID string) (*models.Subscription, error)
	// SetCustomerRef сохраняет клиента шлюза, если он ещё не задан.
	SetCustomerRef(ctx context.Context, userUID, customerRef string) error
	// ConfirmPurchase переводит подписку на premium одним UPDATE.
	ConfirmPurchase(ctx context.Context, customerRef, subscriptionRef string, expiresAt time.Time) (int, error)
	// DowngradeExpired понижает истёкший premium compare-and-set запросом.
	DowngradeExpired(ctx context.Context, userUID string, now time.Time) (int, error)
}

// UserRepository определяет методы для чтения пользователей.
type UserRepository interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// PaymentProvider определяет методы платёжного шлюза.
type PaymentProvider interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, params paymentprovider.CreateSessionParams) (*paymentprovider.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error)
}

// CheckoutResult — идентификатор созданной сессии и адрес страницы оплаты.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// ConfirmResult — текст подтверждения покупки.
type ConfirmResult struct {
	Message string `json:"message"`
}

// StatusResult — текущий уровень подписки. Message заполняется только
// когда этот же вызов понизил истёкший premium.
type StatusResult struct {
	PlanType models.PlanType `json:"plan_type"`
	Message  string          `json:"message,omitempty"`
}

// Service реализует жизненный цикл подписки.
type Service struct {
	repo     SubscriptionRepository
	users    UserRepository
	provider PaymentProvider
	cfg      config.Stripe
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo SubscriptionRepository, users UserRepository, provider PaymentProvider, cfg config.Stripe, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// priceRef возвращает идентификатор цены шлюза для длительности подписки.
func (s *Service) priceRef(plan models.CheckoutPlan) string {
	switch plan {
	case models.CheckoutPlan1Day:
		return s.cfg.Price1Day
	case models.CheckoutPlan7Days:
		return s.cfg.Price7Days
	case models.CheckoutPlan1Month:
		return s.cfg.Price1Month
	}
	return ""
}

// expiresAt возвращает дату истечения premium, купленного в момент now.
func expiresAt(plan models.CheckoutPlan, now time.Time) time.Time {
	switch plan {
	case models.CheckoutPlan1Day:
		return now.AddDate(0, 0, 1)
	case models.CheckoutPlan7Days:
		return now.AddDate(0, 0, 7)
	case models.CheckoutPlan1Month:
		return now.AddDate(0, 1, 0)
	}
	return now
}

// InitiateCheckout создаёт checkout-сессию в платёжном шлюзе для покупки
// premium на выбранную длительность. Состояние подписки не меняется:
// переход произойдёт только после подтверждения оплаты. Метаданные сессии
// несут user_id, plan_type и client_type и возвращаются шлюзом как есть.
func (s *Service) InitiateCheckout(ctx context.Context, userUID string, planType, clientType string) (*CheckoutResult, error) {
	const op = "subscription.InitiateCheckout"

	plan, err := models.ParseCheckoutPlan(planType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlanType, planType)
	}
	client, err := models.ParseClientType(clientType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidClientType, clientType)
	}

	sub, err := s.repo.GetSubscriptionByUserUID(ctx, userUID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	customerRef := sub.StripeCustomerID
	if customerRef == "" {
		user, err := s.users.GetUserByUID(ctx, userUID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		customerRef, err = s.provider.CreateCustomer(ctx, user.Email)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.repo.SetCustomerRef(ctx, userUID, customerRef); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("created gateway customer", slog.String("user_uid", userUID))
	}

	successURL := s.cfg.SuccessURLWeb
	if client == models.ClientMobile {
		successURL = s.cfg.SuccessURLMobile
	}

	session, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CreateSessionParams{
		CustomerRef: customerRef,
		PriceRef:    s.priceRef(plan),
		SuccessURL:  successURL,
		CancelURL:   s.cfg.CancelURL,
		Metadata: map[string]string{
			"user_id":     userUID,
			"plan_type":   string(plan),
			"client_type": string(client),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created checkout session",
		slog.String("session_id", session.ID), slog.String("plan_type", string(plan)))
	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

// ConfirmCheckout подтверждает оплаченную сессию: единственный путь перевода
// подписки на premium. Уровень после подтверждения всегда premium независимо
// от выбранной длительности — она задаёт только дату истечения.
func (s *Service) ConfirmCheckout(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	const op = "subscription.ConfirmCheckout"

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plan, err := models.ParseCheckoutPlan(session.Metadata["plan_type"])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlanType, session.Metadata["plan_type"])
	}

	// Пустой customer в ответе шлюза — такой же признак рассинхронизации,
	// как и неизвестный: все не инициировавшие покупку подписки хранят
	// пустой stripe_customer_id, и UPDATE по нему задел бы их все.
	if session.Customer == "" {
		s.log.Error("gateway session carries no customer ref",
			slog.String("session_id", sessionID))
		return nil, ErrSubscriptionNotFound
	}

	rowsAffected, err := s.repo.ConfirmPurchase(ctx, session.Customer, session.Subscription, expiresAt(plan, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		// Шлюз знает клиента, локальное хранилище — нет: данные разъехались.
		s.log.Error("gateway customer has no local subscription",
			slog.String("session_id", sessionID), slog.String("customer_ref", session.Customer))
		return nil, ErrSubscriptionNotFound
	}

	s.log.Info("confirmed checkout", slog.String("session_id", sessionID),
		slog.String("plan_type", string(plan)))

	message := "Subscription confirmed"
	if session.Metadata["client_type"] == string(models.ClientWeb) || session.Metadata["client_type"] == "" {
		message = "Subscription updated successfully"
	}
	return &ConfirmResult{Message: message}, nil
}

// CheckStatus возвращает текущий уровень подписки пользователя.
// Операция формата reconcile-then-report: перед ответом истёкший premium
// понижается до basic одним compare-and-set запросом, и сообщение о
// понижении попадает ровно в один ответ — тот, чей запрос его применил.
func (s *Service) CheckStatus(ctx context.Context, userUID string) (*StatusResult, error) {
	const op = "subscription.CheckStatus"

	sub, err := s.repo.GetSubscriptionByUserUID(ctx, userUID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return nil, ErrNoSubscription
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !expired(sub) {
		return &StatusResult{PlanType: sub.PlanType}, nil
	}

	rowsAffected, err := s.repo.DowngradeExpired(ctx, userUID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		// Конкурентный запрос успел раньше: понижение уже применено,
		// сообщение о нём уже ушло в другом ответе.
		sub, err = s.repo.GetSubscriptionByUserUID(ctx, userUID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &StatusResult{PlanType: sub.PlanType}, nil
	}

	s.log.Info("downgraded expired subscription", slog.String("user_uid", userUID))
	return &StatusResult{PlanType: models.PlanBasic, Message: DowngradeMessage}, nil
}

// CurrentTier возвращает действующий уровень подписки для политики доступа,
// применяя то же ленивое понижение, что и CheckStatus. Отсутствие записи
// подписки означает уровень free.
func (s *Service) CurrentTier(ctx context.Context, userUID string) (models.PlanType, error) {
	const op = "subscription.CurrentTier"

	sub, err := s.repo.GetSubscriptionByUserUID(ctx, userUID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return models.PlanFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !expired(sub) {
		return sub.PlanType, nil
	}

	if _, err := s.repo.DowngradeExpired(ctx, userUID, time.Now()); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("downgraded expired subscription on access check", slog.String("user_uid", userUID))
	return models.PlanBasic, nil
}

func expired(sub *models.Subscription) bool {
	return sub.PlanType == models.PlanPremium && sub.ExpiresAt != nil && sub.ExpiresAt.Before(time.Now())
}
