package entity

import "time"

// PrescriptionTemplate is a reusable prescription body, unique by name within
// a clinic.
type PrescriptionTemplate struct {
	ID        string
	ClinicID  string
	Name      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
