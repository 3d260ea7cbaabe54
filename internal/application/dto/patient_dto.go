package dto

import "time"

// CreatePatientRequest body for POST /api/patients.
type CreatePatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Phone   string `json:"phone"`
	Disease string `json:"disease"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// UpdatePatientRequest body for PUT /api/patients/:id.
type UpdatePatientRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Phone   string `json:"phone"`
	Disease string `json:"disease"`
	Status  string `json:"status"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// PatientResponse patient in responses.
type PatientResponse struct {
	ID        string    `json:"id"`
	ClinicID  string    `json:"clinic_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	Phone     string    `json:"phone"`
	Disease   string    `json:"disease"`
	Status    string    `json:"status"`
	LastVisit string    `json:"last_visit,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Pincode   string    `json:"pincode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordVisitRequest body for POST /api/patients/:id/visits.
type RecordVisitRequest struct {
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes,omitempty"`
}

// VisitResponse consultation record in responses.
type VisitResponse struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	VisitDate string `json:"visit_date"`
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes,omitempty"`
}

// PatientProfileResponse aggregates the patient with their history.
type PatientProfileResponse struct {
	Patient      PatientResponse       `json:"patient"`
	Appointments []AppointmentResponse `json:"appointments"`
	Visits       []VisitResponse       `json:"visits"`
	Invoices     []InvoiceResponse     `json:"invoices"`
}
