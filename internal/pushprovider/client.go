// Package pushprovider реализует клиент Firebase Cloud Messaging (HTTP v1 API)
// для доставки push-уведомлений на устройства пользователей.
// Авторизация — сервисный аккаунт Google, токены обновляются через oauth2.
package pushprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

// Client клиент FCM HTTP v1 API.
type Client struct {
	projectID   string
	apiURL      string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// NewClient читает JSON сервисного аккаунта и создаёт клиент FCM.
func NewClient(serviceAccountFile, projectID string, timeout time.Duration) (*Client, error) {
	const op = "pushprovider.NewClient"
	credentials, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(credentials, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{
		projectID:   projectID,
		apiURL:      "https://fcm.googleapis.com",
		tokenSource: jwtConfig.TokenSource(context.Background()),
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// SendNotification отправляет уведомление на каждый из переданных токенов.
// Возвращает результат доставки по каждому токену; ошибка доставки на одно
// устройство не прерывает рассылку на остальные.
func (c *Client) SendNotification(ctx context.Context, deviceTokens []string, title, body string, data map[string]string) []DeliveryResult {
	results := make([]DeliveryResult, 0, len(deviceTokens))
	for _, token := range deviceTokens {
		err := c.sendOne(ctx, token, title, body, data)
		results = append(results, DeliveryResult{DeviceToken: token, Err: err})
	}
	return results
}

func (c *Client) sendOne(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	const op = "pushprovider.sendOne"

	accessToken, err := c.tokenSource.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	payload := sendRequest{
		Message: Message{
			Token: deviceToken,
			Notification: Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", c.apiURL, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}
	return nil
}
