package models

import "errors"

// Validation failures surfaced by the marketplace engine. Every operation
// reports these to the caller as ordinary error values; none is fatal.
var (
	ErrNoActiveUser    = errors.New("please select a user first")
	ErrMissingField    = errors.New("please fill in all fields")
	ErrInvalidPrice    = errors.New("please enter a valid price")
	ErrSelfPurchase    = errors.New("you cannot buy your own item")
	ErrAlreadySold     = errors.New("item is already sold")
	ErrNotAuthorized   = errors.New("you are not allowed to delete this listing")
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")
)
