package entity

import "time"

// Clinic is a tenant. Every owned record carries its ID directly or through
// its parent; a clinic is created at signup together with its owner and is
// never deleted in normal flow.
type Clinic struct {
	ID                 string
	Name               string
	Phone              string
	Address            string
	OwnerID            string
	Plan               string // see plan package: trial, basic, pro, clinic+
	SubscriptionStatus string // trial, active, expired
	TrialStartedAt     *time.Time
	TrialEndsAt        *time.Time
	SubscriptionEndsAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
