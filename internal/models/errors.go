package models

import "errors"

// Common errors used throughout the application
var (
	ErrRetreatNotFound = errors.New("retreat not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidInput    = errors.New("invalid input")
	ErrVisitorRequired = errors.New("visitor session required")
)
