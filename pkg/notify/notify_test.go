package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/femi9outfit/storefront/pkg/mail"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg *mail.Message) (mail.Result, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(mail.Result), args.Error(1)
}

func sampleOrder() AdminOrderMail {
	return AdminOrderMail{
		OrderMail: OrderMail{
			To:           "ayesha@example.com",
			OrderID:      "ord-42",
			CustomerName: "Ayesha",
			TotalAmount:  5998,
			Items: []Item{
				{Name: "Lawn Suit", Quantity: 2, Price: 2999},
			},
		},
		CustomerEmail: "ayesha@example.com",
		CustomerPhone: "03001234567",
		ShippingAddress: ShippingAddress{
			Address:  "House 1, Street 2",
			City:     "Lahore",
			Province: "Punjab",
		},
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rs 2,999", FormatPrice(2999))
	assert.Equal(t, "Rs 0", FormatPrice(0))
	assert.Equal(t, "Rs 1,250,000", FormatPrice(1250000))
}

func TestOrderConfirmation(t *testing.T) {
	msg := OrderConfirmation("Femi9outfit", sampleOrder().OrderMail)

	assert.Equal(t, "ayesha@example.com", msg.To)
	assert.Equal(t, "Order Confirmation - ord-42", msg.Subject)
	assert.True(t, strings.HasPrefix(msg.Body, "Assalam o Alaikum Ayesha,\n\nThank you for your order at Femi9outfit.\n"))
	assert.Contains(t, msg.Body, "Order ID: ord-42\nTotal: Rs 5,998\n")
	assert.Contains(t, msg.Body, "Items:\n- Lawn Suit x2 (Rs 2,999)\n")
	assert.True(t, strings.HasSuffix(msg.Body, "Regards,\nFemi9outfit Team"))
}

func TestOrderConfirmation_NoItems(t *testing.T) {
	order := sampleOrder().OrderMail
	order.Items = nil

	msg := OrderConfirmation("Femi9outfit", order)
	assert.Contains(t, msg.Body, "Items:\n- (No items found)\n")
}

func TestOrderConfirmedByAdmin(t *testing.T) {
	msg := OrderConfirmedByAdmin("Femi9outfit", sampleOrder().OrderMail)

	assert.Equal(t, "Order Confirmed - ord-42", msg.Subject)
	assert.Contains(t, msg.Body, "Good news. Your order has been confirmed by our team.")
	assert.Contains(t, msg.Body, "We will dispatch your order soon")
}

func TestNewOrderAdmin(t *testing.T) {
	order := sampleOrder()
	order.To = "owner@example.com"
	order.CustomerEmail = ""
	order.ShippingAddress.PostalCode = "54000"

	msg := NewOrderAdmin("Femi9outfit", order)

	assert.Equal(t, "owner@example.com", msg.To)
	assert.Equal(t, "New Order Alert - ord-42", msg.Subject)
	assert.Contains(t, msg.Body, "Email: N/A\nPhone: 03001234567\n")
	assert.Contains(t, msg.Body, "Shipping Address:\nHouse 1, Street 2\nLahore, Punjab\nPostal Code: 54000\n")
	assert.True(t, strings.HasSuffix(msg.Body, "Items:\n1. Lawn Suit | Price: Rs 2,999 | Qty: 2"))
}

func TestNotifier_OrderPlaced(t *testing.T) {
	m := new(MockMailer)
	m.On("Send", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
		return msg.To == "ayesha@example.com"
	})).Return(mail.Result{Sent: true}, nil).Once()
	m.On("Send", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
		return msg.To == "owner@example.com" && strings.HasPrefix(msg.Subject, "New Order Alert")
	})).Return(mail.Result{Sent: true}, nil).Once()

	NewNotifier(m, "Femi9outfit", "owner@example.com").OrderPlaced(context.Background(), sampleOrder())

	m.AssertExpectations(t)
}

func TestNotifier_FailureDoesNotStopAdminAlert(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	m := new(MockMailer)
	m.On("Send", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
		return msg.To == "ayesha@example.com"
	})).Return(mail.Result{}, errors.New("smtp command failed (RCPT TO:<ayesha@example.com>): 550 no such user")).Once()
	m.On("Send", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
		return msg.To == "owner@example.com"
	})).Return(mail.Result{Sent: true}, nil).Once()

	assert.NotPanics(t, func() {
		NewNotifier(m, "Femi9outfit", "owner@example.com").OrderPlaced(ctx, sampleOrder())
	})

	m.AssertExpectations(t)
	assert.Contains(t, buf.String(), "Email failed, continuing")
	assert.Contains(t, buf.String(), "550 no such user")
}

func TestNotifier_NoAdminEmail(t *testing.T) {
	m := new(MockMailer)
	m.On("Send", mock.Anything, mock.Anything).Return(mail.Result{Sent: false}, nil).Once()

	NewNotifier(m, "Femi9outfit", "").OrderPlaced(context.Background(), sampleOrder())

	m.AssertNumberOfCalls(t, "Send", 1)
}

func TestNotifier_PendingDigest(t *testing.T) {
	m := new(MockMailer)
	m.On("Send", mock.Anything, mock.MatchedBy(func(msg *mail.Message) bool {
		return msg.Subject == "Pending Orders - 2" &&
			strings.Contains(msg.Body, "1. ord-1 | Sana | Rs 1,500 | waiting 3h0m0s")
	})).Return(mail.Result{Sent: true}, nil).Once()

	n := NewNotifier(m, "Femi9outfit", "owner@example.com")
	assert.False(t, n.PendingDigest(context.Background(), nil))
	assert.True(t, n.PendingDigest(context.Background(), []PendingSummary{
		{OrderID: "ord-1", CustomerName: "Sana", TotalAmount: 1500, Age: "3h0m0s"},
		{OrderID: "ord-2", CustomerName: "Hina", TotalAmount: 800, Age: "1h0m0s"},
	}))
	m.AssertExpectations(t)
}
