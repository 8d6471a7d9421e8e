package clientservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient клиент для работы с ClientService
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ClientService
func NewClient(baseURL string, timeout time.Duration, log Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClient получает клиента по ID
func (c *HTTPClient) GetClient(ctx context.Context, clientID int64) (*Client, error) {
	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ClientService request failed for client_id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrClientNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid client ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var client Client
	if err := json.NewDecoder(resp.Body).Decode(&client); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &client, nil
}

// Exists проверяет, что клиент существует и активен
func (c *HTTPClient) Exists(ctx context.Context, clientID int64) (bool, error) {
	client, err := c.GetClient(ctx, clientID)
	if err != nil {
		if err == ErrClientNotFound {
			c.log.Info("Client id=%d not found in ClientService", clientID)
			return false, nil
		}
		return false, err
	}
	return client.IsActive, nil
}
