package orders

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:    "Ayesha Khan",
		CustomerEmail:   "ayesha@example.com",
		CustomerPhone:   "03001234567",
		ShippingAddress: "House 12, Street 4",
		City:            "Lahore",
		Province:        "Punjab",
		PaymentMethod:   "cod",
		TotalAmount:     4500,
		Items: []ItemRequest{
			{ProductID: "p-1", Quantity: 2, Price: 1500},
			{ProductID: "p-2", Quantity: 1, Price: 1500},
		},
	}
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	require.NoError(t, validRequest().Validate())

	tests := []struct {
		name   string
		mutate func(r *CreateOrderRequest)
	}{
		{"missing name", func(r *CreateOrderRequest) { r.CustomerName = "" }},
		{"blank phone", func(r *CreateOrderRequest) { r.CustomerPhone = "  " }},
		{"missing address", func(r *CreateOrderRequest) { r.ShippingAddress = "" }},
		{"missing city", func(r *CreateOrderRequest) { r.City = "" }},
		{"missing province", func(r *CreateOrderRequest) { r.Province = "" }},
		{"missing payment method", func(r *CreateOrderRequest) { r.PaymentMethod = "" }},
		{"infinite total", func(r *CreateOrderRequest) { r.TotalAmount = math.Inf(1) }},
		{"NaN total", func(r *CreateOrderRequest) { r.TotalAmount = math.NaN() }},
		{"no items", func(r *CreateOrderRequest) { r.Items = nil }},
		{"item without product", func(r *CreateOrderRequest) { r.Items[0].ProductID = "" }},
		{"zero quantity", func(r *CreateOrderRequest) { r.Items[1].Quantity = 0 }},
		{"negative quantity", func(r *CreateOrderRequest) { r.Items[1].Quantity = -1 }},
		{"NaN price", func(r *CreateOrderRequest) { r.Items[0].Price = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), ErrInvalidOrder)
		})
	}
}

func TestCreateOrderRequest_ValidateReportsFirstMissingField(t *testing.T) {
	req := validRequest()
	req.CustomerPhone = ""
	req.City = ""
	req.PaymentMethod = " "

	assert.EqualError(t, req.Validate(), "invalid order payload: customer_phone is required")

	req.CustomerPhone = "03001234567"
	assert.EqualError(t, req.Validate(), "invalid order payload: city is required")
}

func TestCreateOrderRequest_EmailIsOptional(t *testing.T) {
	req := validRequest()
	req.CustomerEmail = ""
	assert.NoError(t, req.Validate())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "shipped", "delivered", "cancelled"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), status)
	}

	_, err := ParseStatus("refunded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
