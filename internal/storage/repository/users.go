package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// RegisterUser сохраняет нового пользователя и в той же транзакции создаёт
// ему подписку free/active. Возвращает UID пользователя.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO users (uid, email, username, password_hash, role, notifications_enabled)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	var uid string
	err = tx.QueryRowContext(ctx, query,
		user.UID, user.Email, user.Username, user.PasswordHash, string(user.Role),
		user.NotificationsEnabled).Scan(&uid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO subscriptions (user_uid, plan_type, status)
			 VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, query, uid, string(models.PlanFree), string(models.StatusActive)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, notifications_enabled, device_token, created_at
			  FROM users WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUserByUID возвращает пользователя по его идентификатору.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, notifications_enabled, device_token, created_at
			  FROM users WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, uid), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	var user models.User
	var role string
	err := row.Scan(&user.UID, &user.Email, &user.Username, &user.PasswordHash, &role,
		&user.NotificationsEnabled, &user.DeviceToken, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// UpdateDeviceToken сохраняет FCM-токен устройства пользователя.
func (s *Storage) UpdateDeviceToken(ctx context.Context, uid, deviceToken string) error {
	const op = "storage.UpdateDeviceToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET device_token = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, deviceToken, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// ToggleNotifications переключает флаг push-уведомлений и возвращает новое значение.
func (s *Storage) ToggleNotifications(ctx context.Context, uid string) (bool, error) {
	const op = "storage.ToggleNotifications"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET notifications_enabled = NOT notifications_enabled
			  WHERE uid = $1
			  RETURNING notifications_enabled`
	var enabled bool
	err := s.DB.QueryRowContext(ctx, query, uid).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return enabled, nil
}

// ListNotifiableDeviceTokens возвращает токены устройств пользователей,
// согласившихся на push-уведомления.
func (s *Storage) ListNotifiableDeviceTokens(ctx context.Context) ([]string, error) {
	const op = "storage.ListNotifiableDeviceTokens"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT device_token FROM users
			  WHERE notifications_enabled = true AND device_token IS NOT NULL`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tokens, nil
}
