package orders

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var allowedStatuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

// ParseStatus validates s against the allowed statuses.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !slices.Contains(allowedStatuses, status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// ItemRequest is one cart line submitted at checkout.
type ItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email,omitempty"`
	CustomerPhone   string        `json:"customer_phone"`
	ShippingAddress string        `json:"shipping_address"`
	City            string        `json:"city"`
	Province        string        `json:"province"`
	PostalCode      string        `json:"postal_code,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Items           []ItemRequest `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	PaymentMethod   string        `json:"payment_method"`
	Status          string        `json:"status,omitempty"`
}

// Validate checks the required fields and item lines. The returned error
// wraps ErrInvalidOrder.
func (r CreateOrderRequest) Validate() error {
	required := []struct{ name, value string }{
		{"customer_name", r.CustomerName},
		{"customer_phone", r.CustomerPhone},
		{"shipping_address", r.ShippingAddress},
		{"city", r.City},
		{"province", r.Province},
		{"payment_method", r.PaymentMethod},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidOrder, field.name)
		}
	}
	if !finite(r.TotalAmount) {
		return fmt.Errorf("%w: total_amount must be a number", ErrInvalidOrder)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for i, item := range r.Items {
		switch {
		case item.ProductID == "":
			return fmt.Errorf("%w: item %d has no product_id", ErrInvalidOrder, i)
		case item.Quantity <= 0:
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidOrder, i)
		case !finite(item.Price):
			return fmt.Errorf("%w: item %d price must be a number", ErrInvalidOrder, i)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Order is a stored order.
type Order struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	ShippingAddress string    `json:"shipping_address"`
	City            string    `json:"city"`
	Province        string    `json:"province"`
	PostalCode      string    `json:"postal_code,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	TotalAmount     float64   `json:"total_amount"`
	PaymentMethod   string    `json:"payment_method"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Item is a stored order line.
type Item struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}
