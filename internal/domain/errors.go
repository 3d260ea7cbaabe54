package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")

	// ErrQuotaExceeded means a subscription-plan limit was reached. The
	// attempted create is not performed; callers surface an upgrade hint.
	ErrQuotaExceeded = errors.New("plan quota exceeded")

	// ErrSubscriptionExpired blocks every route except subscription
	// management, so the clinic can always self-service an upgrade.
	ErrSubscriptionExpired = errors.New("subscription expired")

	// ErrInvoiceLocked marks invoices frozen after full payment.
	ErrInvoiceLocked = errors.New("invoice is locked")
)
