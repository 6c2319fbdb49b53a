package services

import "errors"

// Sentinel errors shared by all services. Controllers map these onto
// HTTP status classes; anything else surfaces as a 500.
var (
	ErrShopNotFound    = errors.New("coffee shop not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrItemNotFound    = errors.New("order item not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("access denied")
	ErrNotOrderable    = errors.New("shop is not accepting orders from you")
	ErrSelfOrder       = errors.New("you cannot place orders in your own shop")
	ErrInvalidQuantity = errors.New("resulting quantity must be at least 1")
	ErrInvalidDelta    = errors.New("delta must be a non-zero integer between -20 and 20")
	ErrEmailTaken      = errors.New("email already in use")
	ErrDuplicateStaff  = errors.New("user is already part of this shop")
	ErrOwnerStaff      = errors.New("shop owner cannot be removed from staff")
	ErrAlreadyArchived = errors.New("coffee shop is already archived")
	ErrArchiveOnly     = errors.New("only admin can archive or restore shops")
	ErrBadCredentials  = errors.New("invalid email or password")
)
