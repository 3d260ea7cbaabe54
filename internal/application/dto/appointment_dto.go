package dto

// BookAppointmentRequest body for POST /api/appointments.
type BookAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	Type      string `json:"type"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
}

// AppointmentResponse appointment in responses.
type AppointmentResponse struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name,omitempty"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

// AppointmentListResponse a tab listing with per-tab counts.
type AppointmentListResponse struct {
	Appointments   []AppointmentResponse `json:"appointments"`
	QueueCount     int                   `json:"queue_count"`
	FinishedCount  int                   `json:"finished_count"`
	CancelledCount int                   `json:"cancelled_count"`
}
