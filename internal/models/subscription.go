package models

import (
	"fmt"
	"time"
)

// PlanType описывает уровень подписки, управляющий доступом к контенту.
type PlanType string

const (
	// PlanFree — уровень по умолчанию после регистрации.
	PlanFree PlanType = "free"
	// PlanBasic — уровень после истечения premium.
	PlanBasic PlanType = "basic"
	// PlanPremium — уровень с доступом к premium-контенту.
	PlanPremium PlanType = "premium"
)

// SubscriptionStatus описывает состояние подписки.
type SubscriptionStatus string

const (
	// StatusActive — подписка активна.
	StatusActive SubscriptionStatus = "active"
	// StatusInactive — подписка не активна.
	StatusInactive SubscriptionStatus = "inactive"
	// StatusCancelled — подписка отменена.
	StatusCancelled SubscriptionStatus = "cancelled"
)

// CheckoutPlan описывает длительность покупаемой подписки.
// Это выбор длительности, а не уровня: успешная оплата любого
// из вариантов переводит подписку на уровень premium.
type CheckoutPlan string

const (
	// CheckoutPlan1Day — premium на один день.
	CheckoutPlan1Day CheckoutPlan = "1_day"
	// CheckoutPlan7Days — premium на неделю.
	CheckoutPlan7Days CheckoutPlan = "7_days"
	// CheckoutPlan1Month — premium на месяц.
	CheckoutPlan1Month CheckoutPlan = "1_month"
)

// ParseCheckoutPlan преобразует строку запроса в CheckoutPlan.
func ParseCheckoutPlan(s string) (CheckoutPlan, error) {
	switch CheckoutPlan(s) {
	case CheckoutPlan1Day:
		return CheckoutPlan1Day, nil
	case CheckoutPlan7Days:
		return CheckoutPlan7Days, nil
	case CheckoutPlan1Month:
		return CheckoutPlan1Month, nil
	}
	return "", fmt.Errorf("unknown plan type: %q", s)
}

// ClientType описывает тип клиента, инициировавшего покупку.
// Влияет только на текст подтверждения и URL возврата.
type ClientType string

const (
	// ClientWeb — веб-клиент.
	ClientWeb ClientType = "web"
	// ClientMobile — мобильный клиент.
	ClientMobile ClientType = "mobile"
)

// ParseClientType преобразует строку запроса в ClientType.
// Пустое значение трактуется как web.
func ParseClientType(s string) (ClientType, error) {
	switch ClientType(s) {
	case ClientWeb, "":
		return ClientWeb, nil
	case ClientMobile:
		return ClientMobile, nil
	}
	return "", fmt.Errorf("unknown client type: %q", s)
}

// Subscription представляет подписку пользователя. У каждого пользователя
// ровно одна запись, создаётся вместе с пользователем при регистрации.
// ExpiresAt может быть nil — подписка без даты окончания.
type Subscription struct {
	ID                   int64              // Идентификатор записи
	UserUID              string             // Владелец подписки
	PlanType             PlanType           // Уровень подписки
	Status               SubscriptionStatus // Состояние подписки
	StripeCustomerID     string             // Идентификатор клиента в платёжном шлюзе
	StripeSubscriptionID string             // Идентификатор подписки в платёжном шлюзе
	ExpiresAt            *time.Time         // Дата истечения premium, nil если не задана
	UpdatedAt            time.Time          // Время последнего изменения
}

// CheckoutRequest используется для приёма запроса на покупку подписки.
type CheckoutRequest struct {
	PlanType   string `json:"plan_type" validate:"required"`
	ClientType string `json:"client_type"`
}
