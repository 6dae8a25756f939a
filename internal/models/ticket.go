package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus represents the lifecycle state of a ticket. The only
// allowed transition is issued -> redeemed.
type TicketStatus string

const (
	TicketIssued   TicketStatus = "issued"
	TicketRedeemed TicketStatus = "redeemed"
)

// TicketType represents a purchasable class of ticket for an event.
// Available is a live inventory count decremented on every purchase.
type TicketType struct {
	ID          int             `json:"id" db:"id"`
	EventID     int             `json:"eventId" db:"event_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Available   int             `json:"available" db:"available"`
}

// Ticket represents a purchased ticket. It is immutable after creation
// except for the redemption transition.
type Ticket struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"userId" db:"user_id"`
	EventID         int             `json:"eventId" db:"event_id"`
	TicketTypeID    int             `json:"ticketTypeId" db:"ticket_type_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	TotalPrice      decimal.Decimal `json:"totalPrice" db:"total_price"`
	PurchaseDate    time.Time       `json:"purchaseDate" db:"purchase_date"`
	ReferenceNumber string          `json:"referenceNumber" db:"reference_number"`
	PaymentDetails  json.RawMessage `json:"paymentDetails" db:"payment_details"`
	Status          TicketStatus    `json:"status" db:"status"`
	RedeemedAt      *time.Time      `json:"redeemedAt,omitempty" db:"redeemed_at"`
}

// TicketTypeCreateRequest represents the data needed to create a ticket type
type TicketTypeCreateRequest struct {
	EventID     int             `json:"eventId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Available   int             `json:"available"`
}

// TicketTypeUpdateRequest carries a partial ticket type update
type TicketTypeUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Available   *int             `json:"available"`
}

// TicketPurchaseRequest represents a request to purchase tickets. The
// reference number and purchase date are never client-supplied; they
// are assigned during creation.
type TicketPurchaseRequest struct {
	UserID         int             `json:"userId"`
	EventID        int             `json:"eventId"`
	TicketTypeID   int             `json:"ticketTypeId"`
	Quantity       int             `json:"quantity"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

// ReferencePrefix is the literal prefix of every reference number.
// External consumers (the QR payload on confirmations) embed the full
// string, so the format is part of the public contract.
const ReferencePrefix = "TIX"

// referenceRegex matches the fixed-width reference format: the prefix
// followed by exactly five decimal digits.
var referenceRegex = regexp.MustCompile(`^TIX[0-9]{5}$`)

// IsValidReference reports whether s is a well-formed reference number.
// Matching is exact and case-sensitive.
func IsValidReference(s string) bool {
	return referenceRegex.MatchString(s)
}

// Validate validates ticket type creation data
func (req *TicketTypeCreateRequest) Validate() error {
	if req.EventID <= 0 {
		return errors.New("event id is required")
	}

	if err := validateTicketTypeName(req.Name); err != nil {
		return err
	}

	if err := validateTicketTypePrice(req.Price); err != nil {
		return err
	}

	if req.Available < 0 {
		return errors.New("available count cannot be negative")
	}

	return nil
}

// Validate validates ticket type update data
func (req *TicketTypeUpdateRequest) Validate() error {
	if req.Name != nil {
		if err := validateTicketTypeName(*req.Name); err != nil {
			return err
		}
	}

	if req.Price != nil {
		if err := validateTicketTypePrice(*req.Price); err != nil {
			return err
		}
	}

	if req.Available != nil && *req.Available < 0 {
		return errors.New("available count cannot be negative")
	}

	return nil
}

// Validate validates a ticket purchase request
func (req *TicketPurchaseRequest) Validate() error {
	if req.UserID <= 0 {
		return errors.New("user id is required")
	}

	if req.EventID <= 0 {
		return errors.New("event id is required")
	}

	if req.TicketTypeID <= 0 {
		return errors.New("ticket type id is required")
	}

	if req.Quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}

	if req.TotalPrice.IsNegative() {
		return errors.New("total price cannot be negative")
	}

	if err := validatePaymentDetails(req.PaymentDetails); err != nil {
		return err
	}

	return nil
}

// validateTicketTypeName validates a ticket type name
func validateTicketTypeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("ticket type name is required")
	}

	if len(name) > 100 {
		return errors.New("ticket type name must be less than 100 characters")
	}

	return nil
}

// validateTicketTypePrice validates a ticket type price
func validateTicketTypePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.New("ticket price cannot be negative")
	}

	return nil
}

// validatePaymentDetails checks that the payment details payload is a
// present, non-null JSON object. The contents are opaque and stored
// as received.
func validatePaymentDetails(details json.RawMessage) error {
	if len(details) == 0 {
		return errors.New("payment details are required")
	}

	trimmed := bytes.TrimSpace(details)
	if bytes.Equal(trimmed, []byte("null")) {
		return errors.New("payment details cannot be null")
	}

	if !json.Valid(details) {
		return errors.New("payment details must be valid JSON")
	}

	return nil
}

// Apply copies the non-nil fields of the update onto the ticket type
func (req *TicketTypeUpdateRequest) Apply(tt *TicketType) {
	if req.Name != nil {
		tt.Name = *req.Name
	}
	if req.Description != nil {
		tt.Description = *req.Description
	}
	if req.Price != nil {
		tt.Price = *req.Price
	}
	if req.Available != nil {
		tt.Available = *req.Available
	}
}

// IsSoldOut returns true if no tickets remain
func (tt *TicketType) IsSoldOut() bool {
	return tt.Available <= 0
}

// IsIssued returns true if the ticket has not been redeemed yet
func (t *Ticket) IsIssued() bool {
	return t.Status == TicketIssued
}

// IsRedeemed returns true if the ticket has been used for entry
func (t *Ticket) IsRedeemed() bool {
	return t.Status == TicketRedeemed
}

// CanBeRedeemed returns true if the ticket can be used for entry
func (t *Ticket) CanBeRedeemed() bool {
	return t.Status == TicketIssued
}
