// Package paymentprovider реализует HTTP-клиент платёжного шлюза Stripe
// для работы с клиентами и checkout-сессиями. Метаданные сессии шлюз
// возвращает без изменений — на этом построено подтверждение покупки.
package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Ошибки клиента. Недоступность шлюза и отсутствие сессии различаются:
// таймаут никогда не трактуется как "сессия не найдена".
var (
	// ErrUnavailable — шлюз недоступен или не ответил за отведённое время.
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrSessionNotFound — шлюз не знает сессию с таким идентификатором.
	ErrSessionNotFound = errors.New("checkout session not found")
)

// Client клиент API Stripe.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Stripe с ограниченным таймаутом запросов.
func NewClient(secretKey, apiURL string, timeout time.Duration) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты означают недоступность шлюза.
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrSessionNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	case resp.StatusCode != http.StatusOK:
		return errors.New("unexpected status: " + resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return err
	}
	return nil
}

// CreateCustomer создаёт клиента в шлюзе и возвращает его идентификатор.
func (c *Client) CreateCustomer(ctx context.Context, email string) (string, error) {
	form := url.Values{}
	form.Set("email", email)

	req, err := c.newRequest(ctx, http.MethodPost, "/customers", form)
	if err != nil {
		return "", err
	}

	var customer Customer
	if err := c.do(req, &customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}

// CreateCheckoutSession создаёт checkout-сессию для покупки подписки.
// Метаданные уходят в шлюз как есть и возвращаются без изменений в
// RetrieveSession.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("customer", params.CustomerRef)
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", params.PriceRef)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for key, value := range params.Metadata {
		form.Set("metadata["+key+"]", value)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/checkout/sessions", form)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrieveSession возвращает checkout-сессию по её идентификатору.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
