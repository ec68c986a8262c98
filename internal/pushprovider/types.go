package pushprovider

// Notification текстовая часть push-уведомления.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Message сообщение FCM для одного устройства.
type Message struct {
	Token        string            `json:"token"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type sendRequest struct {
	Message Message `json:"message"`
}

// DeliveryResult результат доставки уведомления на одно устройство.
type DeliveryResult struct {
	DeviceToken string
	Err         error
}
