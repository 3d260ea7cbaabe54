package patients

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/application/guard"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// UseCase covers patient registration, search, profile and consultations.
type UseCase struct {
	patientRepo repository.PatientRepository
	visitRepo   repository.VisitRepository
	apptRepo    repository.AppointmentRepository
	invoiceRepo repository.InvoiceRepository
	clinicRepo  repository.ClinicRepository
	guard       *guard.Service
}

// NewUseCase builds the use case.
func NewUseCase(
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	apptRepo repository.AppointmentRepository,
	invoiceRepo repository.InvoiceRepository,
	clinicRepo repository.ClinicRepository,
	g *guard.Service,
) *UseCase {
	return &UseCase{
		patientRepo: patientRepo,
		visitRepo:   visitRepo,
		apptRepo:    apptRepo,
		invoiceRepo: invoiceRepo,
		clinicRepo:  clinicRepo,
		guard:       g,
	}
}

// Create registers a patient after the daily-intake quota check. On a full
// quota nothing is inserted.
func (uc *UseCase) Create(ctx context.Context, clinicID string, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if in.Name == "" || in.Disease == "" {
		return nil, domain.ErrInvalidInput
	}
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrUnauthenticated
	}
	ok, err := uc.guard.CanAddPatient(ctx, clinic)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrQuotaExceeded
	}

	now := time.Now()
	p := &entity.Patient{
		ID:        uuid.New().String(),
		ClinicID:  clinicID,
		Name:      in.Name,
		Age:       in.Age,
		Gender:    in.Gender,
		Phone:     in.Phone,
		Disease:   in.Disease,
		Status:    "Active",
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Pincode:   in.Pincode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.patientRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Search lists patients by free-text query and status.
func (uc *UseCase) Search(ctx context.Context, clinicID, query, status string, page dto.PageRequest) ([]dto.PatientResponse, error) {
	page.DefaultPage()
	list, err := uc.patientRepo.Search(ctx, clinicID, query, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPatientResponse(p))
	}
	return out, nil
}

// Profile aggregates the patient with their appointments, visits and
// invoices.
func (uc *UseCase) Profile(ctx context.Context, clinicID, patientID string) (*dto.PatientProfileResponse, error) {
	p, err := uc.patientRepo.GetByID(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	appts, err := uc.apptRepo.ListByPatient(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	visits, err := uc.visitRepo.ListByPatient(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoiceRepo.ListByPatient(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PatientProfileResponse{
		Patient:      *toPatientResponse(p),
		Appointments: make([]dto.AppointmentResponse, 0, len(appts)),
		Visits:       make([]dto.VisitResponse, 0, len(visits)),
		Invoices:     make([]dto.InvoiceResponse, 0, len(invoices)),
	}
	for _, a := range appts {
		resp.Appointments = append(resp.Appointments, dto.AppointmentResponse{
			ID: a.ID, PatientID: a.PatientID, Type: a.Type,
			Date: a.Date, Time: a.Time, Status: a.Status,
		})
	}
	for _, v := range visits {
		resp.Visits = append(resp.Visits, dto.VisitResponse{
			ID: v.ID, PatientID: v.PatientID, VisitDate: v.VisitDate,
			Diagnosis: v.Diagnosis, Treatment: v.Treatment, Notes: v.Notes,
		})
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, dto.InvoiceResponse{
			ID:      inv.ID,
			Number:  inv.Number,
			Total:   inv.Total,
			Paid:    inv.Paid,
			Balance: inv.Total.Sub(inv.Paid),
			Status:  inv.Status,
			Locked:  inv.Locked,
			Date:    inv.CreatedAt.Format("2006-01-02"),
		})
	}
	return resp, nil
}

// Update edits the patient's demographic and status fields.
func (uc *UseCase) Update(ctx context.Context, clinicID, patientID string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.patientRepo.GetByID(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Age > 0 {
		p.Age = in.Age
	}
	if in.Gender != "" {
		p.Gender = in.Gender
	}
	if in.Phone != "" {
		p.Phone = in.Phone
	}
	if in.Disease != "" {
		p.Disease = in.Disease
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	p.Address, p.City, p.State, p.Pincode = in.Address, in.City, in.State, in.Pincode
	p.UpdatedAt = time.Now()
	if err := uc.patientRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Delete soft-deletes the patient; the row stays for history.
func (uc *UseCase) Delete(ctx context.Context, clinicID, patientID string) error {
	p, err := uc.patientRepo.GetByID(ctx, clinicID, patientID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.patientRepo.SoftDelete(ctx, clinicID, patientID)
}

// RecordVisit stores a consultation and stamps the patient's last visit.
func (uc *UseCase) RecordVisit(ctx context.Context, clinicID, patientID string, in dto.RecordVisitRequest) (*dto.VisitResponse, error) {
	if in.Diagnosis == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.patientRepo.GetByID(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	today := time.Now().Format("2006-01-02")
	v := &entity.Visit{
		ID:        uuid.New().String(),
		ClinicID:  clinicID,
		PatientID: patientID,
		VisitDate: today,
		Diagnosis: in.Diagnosis,
		Treatment: in.Treatment,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
	}
	if err := uc.visitRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	if err := uc.patientRepo.SetLastVisit(ctx, clinicID, patientID, today); err != nil {
		return nil, err
	}
	return &dto.VisitResponse{
		ID: v.ID, PatientID: v.PatientID, VisitDate: v.VisitDate,
		Diagnosis: v.Diagnosis, Treatment: v.Treatment, Notes: v.Notes,
	}, nil
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:        p.ID,
		ClinicID:  p.ClinicID,
		Name:      p.Name,
		Age:       p.Age,
		Gender:    p.Gender,
		Phone:     p.Phone,
		Disease:   p.Disease,
		Status:    p.Status,
		LastVisit: p.LastVisit,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		Pincode:   p.Pincode,
		CreatedAt: p.CreatedAt,
	}
}
