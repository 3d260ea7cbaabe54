package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// UseCase covers booking and working the appointment queue.
type UseCase struct {
	apptRepo    repository.AppointmentRepository
	patientRepo repository.PatientRepository
}

// NewUseCase builds the use case.
func NewUseCase(apptRepo repository.AppointmentRepository, patientRepo repository.PatientRepository) *UseCase {
	return &UseCase{apptRepo: apptRepo, patientRepo: patientRepo}
}

// Book creates a queued appointment and stamps the patient's last visit.
func (uc *UseCase) Book(ctx context.Context, clinicID string, in dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if in.PatientID == "" || in.Date == "" || in.Time == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(ctx, clinicID, in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	appt := &entity.Appointment{
		ID:        uuid.New().String(),
		ClinicID:  clinicID,
		PatientID: in.PatientID,
		Type:      in.Type,
		Date:      in.Date,
		Time:      in.Time,
		Status:    entity.AppointmentQueue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}
	if err := uc.patientRepo.SetLastVisit(ctx, clinicID, in.PatientID, in.Date); err != nil {
		return nil, err
	}
	return toResponse(appt, patient.Name), nil
}

// List returns the tab listing with per-status counts. status and date may
// be empty.
func (uc *UseCase) List(ctx context.Context, clinicID, status, date string) (*dto.AppointmentListResponse, error) {
	appts, err := uc.apptRepo.ListByStatus(ctx, clinicID, status, date)
	if err != nil {
		return nil, err
	}
	counts, err := uc.apptRepo.CountByStatus(ctx, clinicID, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.AppointmentListResponse{
		Appointments:   make([]dto.AppointmentResponse, 0, len(appts)),
		QueueCount:     counts.Queue,
		FinishedCount:  counts.Finished,
		CancelledCount: counts.Cancelled,
	}
	for _, a := range appts {
		resp.Appointments = append(resp.Appointments, *toResponse(a, a.PatientName))
	}
	return resp, nil
}

// SetStatus moves an appointment to Finished or Cancelled.
func (uc *UseCase) SetStatus(ctx context.Context, clinicID, id, status string) error {
	if status != entity.AppointmentFinished && status != entity.AppointmentCancelled && status != entity.AppointmentQueue {
		return domain.ErrInvalidInput
	}
	appt, err := uc.apptRepo.GetByID(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if appt == nil {
		return domain.ErrNotFound
	}
	return uc.apptRepo.UpdateStatus(ctx, clinicID, id, status)
}

// Delete removes an appointment outright; slots carry no history worth
// keeping, so this one is a hard delete.
func (uc *UseCase) Delete(ctx context.Context, clinicID, id string) error {
	appt, err := uc.apptRepo.GetByID(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if appt == nil {
		return domain.ErrNotFound
	}
	return uc.apptRepo.Delete(ctx, clinicID, id)
}

func toResponse(a *entity.Appointment, patientName string) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		PatientName: patientName,
		Type:        a.Type,
		Date:        a.Date,
		Time:        a.Time,
		Status:      a.Status,
	}
}
