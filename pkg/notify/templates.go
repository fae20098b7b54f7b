package notify

import (
	"fmt"
	"strings"

	"github.com/femi9outfit/storefront/pkg/mail"
)

const noItems = "- (No items found)"

// Item is one order line as it appears in a mail.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderMail carries what the customer-facing templates need.
type OrderMail struct {
	To           string  `json:"to"`
	OrderID      string  `json:"order_id"`
	CustomerName string  `json:"customer_name"`
	TotalAmount  float64 `json:"total_amount"`
	Items        []Item  `json:"items"`
}

// ShippingAddress is the delivery block in the admin alert.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code,omitempty"`
}

// AdminOrderMail carries the admin new-order alert.
type AdminOrderMail struct {
	OrderMail
	CustomerEmail   string          `json:"customer_email,omitempty"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// OrderConfirmation is sent to the customer right after checkout.
func OrderConfirmation(shop string, p OrderMail) *mail.Message {
	body := []string{
		fmt.Sprintf("Assalam o Alaikum %s,", p.CustomerName),
		"",
		fmt.Sprintf("Thank you for your order at %s.", shop),
		"",
		"Order ID: " + p.OrderID,
		"Total: " + FormatPrice(p.TotalAmount),
		"",
		"Items:",
		customerItems(p.Items),
		"",
		"We will contact you shortly to confirm your Cash on Delivery order.",
		"",
		"Regards,",
		shop + " Team",
	}
	return &mail.Message{
		To:      p.To,
		Subject: "Order Confirmation - " + p.OrderID,
		Body:    strings.Join(body, "\n"),
	}
}

// OrderConfirmedByAdmin is sent when staff confirm a pending order.
func OrderConfirmedByAdmin(shop string, p OrderMail) *mail.Message {
	body := []string{
		fmt.Sprintf("Assalam o Alaikum %s,", p.CustomerName),
		"",
		"Good news. Your order has been confirmed by our team.",
		"",
		"Order ID: " + p.OrderID,
		"Total: " + FormatPrice(p.TotalAmount),
		"",
		"Items:",
		customerItems(p.Items),
		"",
		"We will dispatch your order soon and share the delivery update.",
		"",
		"Regards,",
		shop + " Team",
	}
	return &mail.Message{
		To:      p.To,
		Subject: "Order Confirmed - " + p.OrderID,
		Body:    strings.Join(body, "\n"),
	}
}

// NewOrderAdmin alerts the shop owner about a new order.
func NewOrderAdmin(shop string, p AdminOrderMail) *mail.Message {
	email := p.CustomerEmail
	if email == "" {
		email = "N/A"
	}

	shipping := []string{
		p.ShippingAddress.Address,
		fmt.Sprintf("%s, %s", p.ShippingAddress.City, p.ShippingAddress.Province),
	}
	if p.ShippingAddress.PostalCode != "" {
		shipping = append(shipping, "Postal Code: "+p.ShippingAddress.PostalCode)
	}

	items := noItems
	if len(p.Items) > 0 {
		lines := make([]string, len(p.Items))
		for i, item := range p.Items {
			lines[i] = fmt.Sprintf("%d. %s | Price: %s | Qty: %d", i+1, item.Name, FormatPrice(item.Price), item.Quantity)
		}
		items = strings.Join(lines, "\n")
	}

	body := []string{
		fmt.Sprintf("New order received on %s.", shop),
		"",
		"Order ID: " + p.OrderID,
		"Customer: " + p.CustomerName,
		"Email: " + email,
		"Phone: " + p.CustomerPhone,
		"Total: " + FormatPrice(p.TotalAmount),
		"",
		"Shipping Address:",
		strings.Join(shipping, "\n"),
		"",
		"Items:",
		items,
	}
	return &mail.Message{
		To:      p.To,
		Subject: "New Order Alert - " + p.OrderID,
		Body:    strings.Join(body, "\n"),
	}
}

// PendingSummary is one line of the pending-order digest.
type PendingSummary struct {
	OrderID      string
	CustomerName string
	TotalAmount  float64
	Age          string
}

// PendingDigest lists orders still waiting for confirmation.
func PendingDigest(shop, to string, orders []PendingSummary) *mail.Message {
	body := []string{
		fmt.Sprintf("%d order(s) on %s are still pending confirmation.", len(orders), shop),
		"",
	}
	for i, o := range orders {
		body = append(body, fmt.Sprintf("%d. %s | %s | %s | waiting %s", i+1, o.OrderID, o.CustomerName, FormatPrice(o.TotalAmount), o.Age))
	}
	return &mail.Message{
		To:      to,
		Subject: fmt.Sprintf("Pending Orders - %d", len(orders)),
		Body:    strings.Join(body, "\n"),
	}
}

func customerItems(items []Item) string {
	if len(items) == 0 {
		return noItems
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("- %s x%d (%s)", item.Name, item.Quantity, FormatPrice(item.Price))
	}
	return strings.Join(lines, "\n")
}
