package models

import "errors"

// Common errors used throughout the application
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrSoldOut            = errors.New("not enough tickets available")
	ErrTicketRedeemed     = errors.New("ticket already redeemed")
	ErrReferenceExhausted = errors.New("could not allocate a unique reference number")
)
