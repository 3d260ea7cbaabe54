package entity

import "time"

// Patient is a clinic-scoped medical record holder. Deletion is always the
// soft IsDeleted flag; repositories filter it on every read.
type Patient struct {
	ID        string
	ClinicID  string
	Name      string
	Age       int
	Gender    string
	Phone     string
	Disease   string
	Status    string // Active, Recovered, Critical
	LastVisit string // YYYY-MM-DD of the most recent appointment
	Address   string
	City      string
	State     string
	Pincode   string
	Image     string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
