// Package auth содержит логику регистрации, авторизации и валидации JWT.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/movie-explorer/internal/lib/jwt"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/password"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// ErrInvalidCredentials возвращается при неверном логине или пароле.
// Текст одинаковый для обоих случаев, чтобы не раскрывать, что именно не совпало.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя вместе с бесплатной подпиской.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByUID возвращает пользователя по UID.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)

	// UpdateDeviceToken сохраняет push-токен устройства пользователя.
	UpdateDeviceToken(ctx context.Context, userUID, deviceToken string) error

	// ToggleNotifications переключает флаг уведомлений и возвращает новое значение.
	ToggleNotifications(ctx context.Context, userUID string) (bool, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью user.
// Роль supervisor при регистрации получить нельзя: она назначается только
// напрямую в базе данных.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UID:                  uuid.NewString(),
		Email:                email,
		Username:             username,
		PasswordHash:         hashed,
		Role:                 models.RoleUser,
		NotificationsEnabled: true,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token string, role models.Role, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, string(user.Role), user.UID)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", err)
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе из claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateToken: %w", err)
	}
	return &models.User{
		Username: claims.Username,
		Role:     role,
		UID:      claims.UserUID,
	}, nil
}

// CurrentUser возвращает профиль пользователя по UID из токена.
func (s *Service) CurrentUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "auth.CurrentUser"

	user, err := s.users.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateDeviceToken сохраняет push-токен устройства пользователя.
func (s *Service) UpdateDeviceToken(ctx context.Context, userUID, deviceToken string) error {
	const op = "auth.UpdateDeviceToken"

	if err := s.users.UpdateDeviceToken(ctx, userUID, deviceToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ToggleNotifications переключает флаг push-уведомлений и возвращает новое значение.
func (s *Service) ToggleNotifications(ctx context.Context, userUID string) (bool, error) {
	const op = "auth.ToggleNotifications"

	enabled, err := s.users.ToggleNotifications(ctx, userUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return enabled, nil
}
