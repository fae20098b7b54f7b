// Package orders covers the order flows that trigger storefront mail:
// checkout, staff status changes and the pending-order digest.
package orders

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/femi9outfit/storefront/pkg/notify"
	"github.com/rs/zerolog/log"
)

// fallbackProductName is used when a product no longer resolves.
const fallbackProductName = "Product"

// Service runs order flows against a Repository and sends mail through a
// Notifier. Mail failures never fail an order operation.
type Service struct {
	repo     Repository
	notifier *notify.Notifier
	now      func() time.Time
}

// NewService creates a Service.
func NewService(repo Repository, notifier *notify.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// PlaceOrder validates and stores a checkout, then sends the customer
// confirmation and the admin alert. sessionEmail, when set, takes
// precedence over the email in the request.
func (s *Service) PlaceOrder(ctx context.Context, req CreateOrderRequest, sessionEmail string) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := sessionEmail
	if email == "" {
		email = req.CustomerEmail
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	status := StatusPending
	if req.Status != "" {
		parsed, err := ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	order := &Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   email,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		Province:        req.Province,
		PostalCode:      req.PostalCode,
		Notes:           req.Notes,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		Status:          status,
	}
	items := make([]Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price, Size: it.Size, Color: it.Color}
	}

	if err := s.repo.Create(ctx, order, items); err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx).With().Str("order_id", order.ID).Logger()
	logger.Info().Float64("total", order.TotalAmount).Int("items", len(items)).Msg("Order created")

	lines := s.mailItems(logger.WithContext(ctx), items)
	s.notifier.OrderPlaced(ctx, notify.AdminOrderMail{
		OrderMail: notify.OrderMail{
			To:           email,
			OrderID:      order.ID,
			CustomerName: order.CustomerName,
			TotalAmount:  order.TotalAmount,
			Items:        lines,
		},
		CustomerEmail: email,
		CustomerPhone: order.CustomerPhone,
		ShippingAddress: notify.ShippingAddress{
			Address:    order.ShippingAddress,
			City:       order.City,
			Province:   order.Province,
			PostalCode: order.PostalCode,
		},
	})

	return order, nil
}

// UpdateStatus changes an order's status. Moving an order into confirmed
// mails the customer, if they left an email.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*Order, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, id, next); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Status = next
	log.Ctx(ctx).Info().Str("order_id", id).Str("from", string(existing.Status)).Str("to", string(next)).Msg("Order status updated")

	if next == StatusConfirmed && existing.Status != StatusConfirmed && existing.CustomerEmail != "" {
		var lines []notify.Item
		items, err := s.repo.Items(ctx, id)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("order_id", id).Msg("Failed to load order items for mail")
		} else {
			lines = s.mailItems(ctx, items)
		}
		s.notifier.OrderConfirmed(ctx, notify.OrderMail{
			To:           existing.CustomerEmail,
			OrderID:      existing.ID,
			CustomerName: existing.CustomerName,
			TotalAmount:  existing.TotalAmount,
			Items:        lines,
		})
	}

	return &updated, nil
}

// PendingDigest mails the admin every order that has been pending for at
// least olderThan. It returns the number of orders listed.
func (s *Service) PendingDigest(ctx context.Context, olderThan time.Duration) (int, error) {
	now := s.now()
	pending, err := s.repo.Pending(ctx, now.Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to list pending orders: %w", err)
	}
	if len(pending) == 0 {
		log.Ctx(ctx).Info().Msg("No pending orders")
		return 0, nil
	}

	summaries := make([]notify.PendingSummary, len(pending))
	for i, o := range pending {
		summaries[i] = notify.PendingSummary{
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			TotalAmount:  o.TotalAmount,
			Age:          now.Sub(o.CreatedAt).Truncate(time.Minute).String(),
		}
	}
	s.notifier.PendingDigest(ctx, summaries)
	return len(pending), nil
}

// mailItems resolves product names for the mail templates. Lookup
// failures degrade to the fallback name.
func (s *Service) mailItems(ctx context.Context, items []Item) []notify.Item {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if !slices.Contains(ids, it.ProductID) {
			ids = append(ids, it.ProductID)
		}
	}

	names := map[string]string{}
	if len(ids) > 0 {
		resolved, err := s.repo.ProductNames(ctx, ids)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("Failed to resolve product names")
		}
		if resolved != nil {
			names = resolved
		}
	}

	lines := make([]notify.Item, len(items))
	for i, it := range items {
		name, ok := names[it.ProductID]
		if !ok || name == "" {
			name = fallbackProductName
		}
		lines[i] = notify.Item{Name: name, Quantity: it.Quantity, Price: it.Price}
	}
	return lines
}
