package entity

import "time"

// Appointment statuses.
const (
	AppointmentQueue     = "Queue"
	AppointmentFinished  = "Finished"
	AppointmentCancelled = "Cancelled"
)

// Appointment is a scheduled visit slot for a patient.
type Appointment struct {
	ID          string
	ClinicID    string
	PatientID   string
	PatientName string // joined from patients on reads
	Type        string // Consultation, Follow-up, Emergency
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Status      string // Queue, Finished, Cancelled
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Visit is a completed consultation record attached to a patient.
type Visit struct {
	ID        string
	ClinicID  string
	PatientID string
	VisitDate string // YYYY-MM-DD
	Diagnosis string
	Treatment string
	Notes     string
	CreatedAt time.Time
}
