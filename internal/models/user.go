// Package models содержит доменные структуры приложения: пользователи,
// подписки, фильмы, знаменитости и записи вотчлиста.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import (
	"fmt"
	"time"
)

// Role описывает роль пользователя. Закрытое перечисление:
// значений кроме RoleUser и RoleSupervisor в системе не существует.
type Role string

const (
	// RoleUser — обычный пользователь.
	RoleUser Role = "user"
	// RoleSupervisor — пользователь с правами на изменение каталога.
	RoleSupervisor Role = "supervisor"
)

// ParseRole преобразует строку из хранилища или токена в Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                  string    // Уникальный идентификатор пользователя
	Email                string    // Электронная почта
	Username             string    // Имя пользователя (уникальное)
	PasswordHash         string    // Хэш пароля пользователя
	Role                 Role      // Роль пользователя
	NotificationsEnabled bool      // Разрешены ли push-уведомления
	DeviceToken          *string   // FCM-токен устройства, nil если не задан
	CreatedAt            time.Time // Дата регистрации
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest используется для приёма данных входа из JSON-запроса.
type LoginRequest struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}

// UpdateDeviceTokenRequest используется для обновления FCM-токена устройства.
type UpdateDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"required"`
}
