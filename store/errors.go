package store

import "errors"

// Sentinel errors returned by store operations. Callers branch with
// errors.Is; storage failures are wrapped with operation context instead.
var (
	// ErrNotFound means a referenced user, cart, order or product does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart means checkout was attempted with no items in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCartConflict means a guest cart could not be migrated because the
	// target user already has a non-empty cart for a different restaurant.
	// The caller must clear one of the carts and retry.
	ErrCartConflict = errors.New("cart restaurant conflict")

	// ErrEmailTaken means registration was attempted with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidStatus means an order status update named a value outside
	// the known lifecycle.
	ErrInvalidStatus = errors.New("invalid order status")
)
