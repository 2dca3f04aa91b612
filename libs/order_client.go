package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storefront/models"
	"storefront/services"
)

const (
	productsPath = "/api/store/products"
	orderPath    = "/api/store/order"
)

// OrderClient talks to the order backend. Requests carry no timeout of their
// own; cancellation comes from the caller's context.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOrderClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *OrderClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *OrderClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+productsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if products == nil {
		return nil, fmt.Errorf("decode products: body is not a product list")
	}

	c.logger.Debug("products fetched", zap.Int("count", len(products)))
	return products, nil
}

// SubmitOrder posts the payload. A non-2xx status, an unparseable body or a
// body without ok=true all come back as *services.OrderRejectedError, carrying
// the backend's error message when it sent one.
func (c *OrderClient) SubmitOrder(ctx context.Context, payload models.OrderPayload) (*models.OrderResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orderPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.NewOrderRejected(0, "", fmt.Errorf("post order: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.NewOrderRejected(resp.StatusCode, "", fmt.Errorf("read order response: %w", err))
	}

	var data *models.OrderResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		data = nil
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !ok || data == nil || !data.OK {
		serverMessage := ""
		if data != nil {
			serverMessage = data.Error
		}
		c.logger.Warn("order rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("error", serverMessage),
		)
		return nil, services.NewOrderRejected(resp.StatusCode, serverMessage, nil)
	}

	return data, nil
}
