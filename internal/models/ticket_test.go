package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidReference(t *testing.T) {
	tests := []struct {
		reference string
		valid     bool
	}{
		{"TIX12345", true},
		{"TIX00000", true},
		{"TIX99999", true},
		{"TIX1234", false},
		{"TIX123456", false},
		{"tix12345", false},
		{"TIX1234a", false},
		{" TIX12345", false},
		{"TIX12345 ", false},
		{"", false},
		{"12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.reference, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidReference(tt.reference))
		})
	}
}

func TestTicketPurchaseRequestValidate(t *testing.T) {
	valid := func() *TicketPurchaseRequest {
		return &TicketPurchaseRequest{
			UserID:         1,
			EventID:        1,
			TicketTypeID:   1,
			Quantity:       2,
			TotalPrice:     decimal.RequireFromString("90.00"),
			PaymentDetails: json.RawMessage(`{"method":"card","last4":"4242"}`),
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(req *TicketPurchaseRequest)
	}{
		{"missing user id", func(req *TicketPurchaseRequest) { req.UserID = 0 }},
		{"missing event id", func(req *TicketPurchaseRequest) { req.EventID = -1 }},
		{"missing ticket type id", func(req *TicketPurchaseRequest) { req.TicketTypeID = 0 }},
		{"zero quantity", func(req *TicketPurchaseRequest) { req.Quantity = 0 }},
		{"negative quantity", func(req *TicketPurchaseRequest) { req.Quantity = -3 }},
		{"negative total", func(req *TicketPurchaseRequest) { req.TotalPrice = decimal.RequireFromString("-0.01") }},
		{"empty payment details", func(req *TicketPurchaseRequest) { req.PaymentDetails = json.RawMessage{} }},
		{"null payment details", func(req *TicketPurchaseRequest) { req.PaymentDetails = json.RawMessage(" null ") }},
		{"invalid payment json", func(req *TicketPurchaseRequest) { req.PaymentDetails = json.RawMessage(`{"method":`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestTicketTypeCreateRequestValidate(t *testing.T) {
	valid := func() *TicketTypeCreateRequest {
		return &TicketTypeCreateRequest{
			EventID:   1,
			Name:      "General Admission",
			Price:     decimal.RequireFromString("45.00"),
			Available: 100,
		}
	}

	assert.NoError(t, valid().Validate())

	free := valid()
	free.Price = decimal.Zero
	assert.NoError(t, free.Validate(), "free tickets are allowed")

	tests := []struct {
		name   string
		mutate func(req *TicketTypeCreateRequest)
	}{
		{"missing event id", func(req *TicketTypeCreateRequest) { req.EventID = 0 }},
		{"blank name", func(req *TicketTypeCreateRequest) { req.Name = "   " }},
		{"negative price", func(req *TicketTypeCreateRequest) { req.Price = decimal.RequireFromString("-1") }},
		{"negative availability", func(req *TicketTypeCreateRequest) { req.Available = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestTicketTypeUpdateApply(t *testing.T) {
	tt := &TicketType{
		ID:        1,
		EventID:   1,
		Name:      "General Admission",
		Price:     decimal.RequireFromString("45.00"),
		Available: 100,
	}

	price := decimal.RequireFromString("50.00")
	available := 80
	(&TicketTypeUpdateRequest{Price: &price, Available: &available}).Apply(tt)

	assert.True(t, tt.Price.Equal(price))
	assert.Equal(t, 80, tt.Available)
	assert.Equal(t, "General Admission", tt.Name, "unset fields stay untouched")
}

func TestTicketStatusHelpers(t *testing.T) {
	issued := &Ticket{Status: TicketIssued}
	assert.True(t, issued.IsIssued())
	assert.True(t, issued.CanBeRedeemed())
	assert.False(t, issued.IsRedeemed())

	redeemed := &Ticket{Status: TicketRedeemed}
	assert.True(t, redeemed.IsRedeemed())
	assert.False(t, redeemed.CanBeRedeemed())
	assert.False(t, redeemed.IsIssued())
}

func TestTicketTypeIsSoldOut(t *testing.T) {
	assert.False(t, (&TicketType{Available: 1}).IsSoldOut())
	assert.True(t, (&TicketType{Available: 0}).IsSoldOut())
}
