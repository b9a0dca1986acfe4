package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSubmitterBlocked    = errors.New("submitter is blocked")
	ErrUnknownMenuItem     = errors.New("unknown menu item")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrCounterUnavailable  = errors.New("order counter unavailable")
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrInvalidStatusChange = errors.New("invalid status change")
	ErrNotAdmin            = errors.New("administrative capability required")
	ErrInvalidWord         = errors.New("invalid word")
)
