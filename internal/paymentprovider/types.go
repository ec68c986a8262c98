package paymentprovider

// Customer представляет клиента в платёжном шлюзе.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CreateSessionParams параметры создания checkout-сессии.
type CreateSessionParams struct {
	CustomerRef string            // Идентификатор клиента в шлюзе
	PriceRef    string            // Идентификатор цены из конфигурации
	SuccessURL  string            // URL возврата после успешной оплаты
	CancelURL   string            // URL возврата после отмены
	Metadata    map[string]string // Произвольные данные, шлюз вернёт их без изменений
}

// CheckoutSession представляет checkout-сессию шлюза.
type CheckoutSession struct {
	ID           string            `json:"id"`
	URL          string            `json:"url"`          // Адрес страницы оплаты
	Customer     string            `json:"customer"`     // Идентификатор клиента
	Subscription string            `json:"subscription"` // Ссылка на подписку шлюза после оплаты
	Metadata     map[string]string `json:"metadata"`
}
