package entity

import "time"

// Subscription payment lifecycle.
const (
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionFailed  = "failed"
)

// Subscription is one purchase attempt of a paid plan. A pending row is
// created with the provider order; verification of the provider signature
// activates it and upgrades the clinic for the paid period.
type Subscription struct {
	ID              string
	ClinicID        string
	Plan            string
	AmountINR       int
	Status          string // pending, active, failed
	Provider        string // razorpay
	ProviderOrderID string
	StartedAt       *time.Time
	EndsAt          *time.Time
	CreatedAt       time.Time
}
