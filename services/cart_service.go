package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/models"
)

type ProductLookup interface {
	Get(id string) (models.Product, error)
}

// OrderSubmitter posts an order payload to the order backend. Implementations
// report a backend refusal as *OrderRejectedError.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload models.OrderPayload) (*models.OrderResponse, error)
}

// CartService keeps the ordered cart lines of one storefront session.
type CartService struct {
	catalog   ProductLookup
	submitter OrderSubmitter
	logger    *zap.Logger

	mu    sync.Mutex
	lines []models.CartLine
}

func NewCartService(catalog ProductLookup, submitter OrderSubmitter, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		catalog:   catalog,
		submitter: submitter,
		logger:    logger,
	}
}

// Add puts one unit of the product in the cart.
func (s *CartService) Add(productID string) (models.CartLine, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return models.CartLine{}, err
	}
	if !product.Purchasable() {
		return models.CartLine{}, fmt.Errorf("%w: %s", ErrProductUnavailable, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		if s.lines[i].Quantity >= models.MaxQuantity {
			return s.lines[i], ErrQuantityLimitExceeded
		}
		s.lines[i].Quantity++
		return s.lines[i], nil
	}

	line := models.NewCartLine(product)
	s.lines = append(s.lines, line)
	return line, nil
}

// UpdateQuantity applies delta to the line for productID. A result outside
// [MinQuantity, MaxQuantity] is ignored; removing a line takes Remove.
func (s *CartService) UpdateQuantity(productID string, delta int) (models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return models.CartLine{}, false
	}

	next := s.lines[i].Quantity + delta
	if delta == 0 || next < models.MinQuantity || next > models.MaxQuantity {
		return s.lines[i], false
	}

	s.lines[i].Quantity = next
	return s.lines[i], true
}

func (s *CartService) Remove(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Total sums price times quantity over every line. Unavailable prices count
// as zero.
func (s *CartService) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *CartService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// ItemCount is the number of units across all lines.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *CartService) IsEmpty() bool {
	return s.Len() == 0
}

// BuildOrderPayload expands each line into Quantity unit records. Name and
// email are trimmed and must not be empty; their format is not checked.
func (s *CartService) BuildOrderPayload(name, email string) (models.OrderPayload, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return models.OrderPayload{}, ErrCustomerDetailsRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return models.OrderPayload{}, ErrEmptyCart
	}

	items := []models.OrderItem{}
	for _, line := range s.lines {
		for n := 0; n < line.Quantity; n++ {
			items = append(items, models.OrderItem{
				ID:    line.ProductID,
				Name:  line.Name,
				Price: line.Price,
			})
		}
	}

	return models.OrderPayload{
		Name:  name,
		Email: email,
		Items: items,
	}, nil
}

// Submit sends the order and returns the backend's acknowledgement. The cart
// is left as is; callers clear it once they have looked at the response mode.
func (s *CartService) Submit(ctx context.Context, name, email string) (*models.OrderResponse, error) {
	payload, err := s.BuildOrderPayload(name, email)
	if err != nil {
		return nil, err
	}
	if s.submitter == nil {
		return nil, NewOrderRejected(0, "", errors.New("no order submitter configured"))
	}

	s.logger.Info("submitting order",
		zap.Int("items", len(payload.Items)),
		zap.String("total", payload.Total().StringFixed(2)),
	)

	resp, err := s.submitter.SubmitOrder(ctx, payload)
	if err != nil {
		var rejected *OrderRejectedError
		if errors.As(err, &rejected) {
			return nil, rejected
		}
		return nil, NewOrderRejected(0, "", err)
	}
	if resp == nil || !resp.OK {
		serverMessage := ""
		if resp != nil {
			serverMessage = resp.Error
		}
		return nil, NewOrderRejected(0, serverMessage, nil)
	}

	return resp, nil
}

func (s *CartService) indexOf(productID string) int {
	for i, line := range s.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
