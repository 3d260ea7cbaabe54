package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/clinic-api/internal/application/dto"
	"github.com/clinova/clinic-api/internal/domain"
	"github.com/clinova/clinic-api/internal/domain/entity"
	"github.com/clinova/clinic-api/internal/domain/repository"
)

// TemplateUseCase manages prescription templates per clinic.
type TemplateUseCase struct {
	repo repository.TemplateRepository
}

// NewTemplateUseCase builds the use case.
func NewTemplateUseCase(repo repository.TemplateRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Create adds a template; name is unique within the clinic.
func (uc *TemplateUseCase) Create(ctx context.Context, clinicID string, in dto.TemplateRequest) (*dto.TemplateResponse, error) {
	if in.Name == "" || in.Content == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tpl := &entity.PrescriptionTemplate{
		ID:        uuid.New().String(),
		ClinicID:  clinicID,
		Name:      in.Name,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// List returns the clinic's templates.
func (uc *TemplateUseCase) List(ctx context.Context, clinicID string) ([]dto.TemplateResponse, error) {
	tpls, err := uc.repo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateResponse, 0, len(tpls))
	for _, t := range tpls {
		out = append(out, *toTemplateResponse(t))
	}
	return out, nil
}

// Update replaces name and content.
func (uc *TemplateUseCase) Update(ctx context.Context, clinicID, id string, in dto.TemplateRequest) (*dto.TemplateResponse, error) {
	tpl, err := uc.repo.GetByID(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		tpl.Name = in.Name
	}
	if in.Content != "" {
		tpl.Content = in.Content
	}
	tpl.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// Delete removes a template.
func (uc *TemplateUseCase) Delete(ctx context.Context, clinicID, id string) error {
	tpl, err := uc.repo.GetByID(ctx, clinicID, id)
	if err != nil {
		return err
	}
	if tpl == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, clinicID, id)
}

func toTemplateResponse(t *entity.PrescriptionTemplate) *dto.TemplateResponse {
	return &dto.TemplateResponse{ID: t.ID, Name: t.Name, Content: t.Content}
}
