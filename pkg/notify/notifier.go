// Package notify builds the storefront's order mails and sends them
// without ever letting a mail failure escape into the order flow.
package notify

import (
	"context"

	"github.com/femi9outfit/storefront/pkg/mail"
	"github.com/rs/zerolog/log"
)

// Notifier sends order mails through a Mailer.
type Notifier struct {
	sender     mail.Mailer
	shop       string
	adminEmail string
}

// NewNotifier creates a Notifier. An empty adminEmail disables admin alerts.
func NewNotifier(sender mail.Mailer, shop, adminEmail string) *Notifier {
	return &Notifier{sender: sender, shop: shop, adminEmail: adminEmail}
}

// OrderPlaced sends the customer confirmation and the admin alert. Each
// send fails independently.
func (n *Notifier) OrderPlaced(ctx context.Context, order AdminOrderMail) {
	n.deliver(ctx, "order confirmation", OrderConfirmation(n.shop, order.OrderMail))

	if n.adminEmail == "" {
		log.Ctx(ctx).Warn().Str("order_id", order.OrderID).Msg("ADMIN_NOTIFICATION_EMAIL is not set, skipping admin alert")
		return
	}
	admin := order
	admin.To = n.adminEmail
	n.deliver(ctx, "admin notification", NewOrderAdmin(n.shop, admin))
}

// OrderConfirmed tells the customer their order was confirmed by staff.
func (n *Notifier) OrderConfirmed(ctx context.Context, order OrderMail) {
	n.deliver(ctx, "order confirmed", OrderConfirmedByAdmin(n.shop, order))
}

// PendingDigest mails the admin the list of pending orders. Nothing is
// sent for an empty list.
func (n *Notifier) PendingDigest(ctx context.Context, orders []PendingSummary) bool {
	if len(orders) == 0 || n.adminEmail == "" {
		return false
	}
	return n.deliver(ctx, "pending digest", PendingDigest(n.shop, n.adminEmail, orders))
}

// deliver is the failure boundary around a single send.
func (n *Notifier) deliver(ctx context.Context, kind string, msg *mail.Message) bool {
	logger := log.Ctx(ctx).With().Str("mail", kind).Str("to", msg.To).Logger()

	res, err := n.sender.Send(ctx, msg)
	if err != nil {
		logger.Error().Err(err).Msg("Email failed, continuing")
		return false
	}
	if !res.Sent {
		logger.Warn().Msg("Email was not sent")
		return false
	}
	logger.Info().Str("subject", msg.Subject).Msg("Email sent")
	return true
}
