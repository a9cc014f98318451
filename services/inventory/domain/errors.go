package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrDuplicateCode indicates a product with the same code already exists.
	ErrDuplicateCode = errors.New("product code already exists")

	// ErrNotFound indicates the requested product does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidValue indicates a price or stock value violates domain constraints.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidQuantity indicates a purchase quantity that is not positive.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientStock indicates a stock change that would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrMalformedStorage indicates the backing file could not be decoded.
	ErrMalformedStorage = errors.New("malformed storage")

	// ErrPersistence indicates a save failed; in-memory state is unaffected
	// and remains authoritative for the rest of the session.
	ErrPersistence = errors.New("persistence failure")
)
