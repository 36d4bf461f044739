package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

// PlanService manages membership plans.
type PlanService struct {
	plans repository.PlanRepository
}

// PlanInput carries a new plan.
type PlanInput struct {
	Name         string
	Modalities   []string
	Price        float64
	DurationDays int
	Benefits     []string
	Active       *bool
}

// PlanUpdate carries a partial update; nil fields are left unchanged.
type PlanUpdate struct {
	Name         *string
	Modalities   []string
	Price        *float64
	DurationDays *int
	Benefits     []string
	Active       *bool
}

func (u PlanUpdate) empty() bool {
	return u.Name == nil && u.Modalities == nil && u.Price == nil &&
		u.DurationDays == nil && u.Benefits == nil && u.Active == nil
}

// NewPlanService constructs the service.
func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans}
}

// CreatePlan stores a new plan; plans are active unless stated otherwise.
func (s *PlanService) CreatePlan(ctx context.Context, in PlanInput) (*domain.Plan, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	created, err := s.plans.Create(ctx, &domain.Plan{
		Name:         in.Name,
		Modalities:   in.Modalities,
		Price:        in.Price,
		DurationDays: in.DurationDays,
		Benefits:     in.Benefits,
		Active:       active,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return created, nil
}

// ListPlans returns every plan.
func (s *PlanService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.plans.List(ctx)
}

// GetPlan fetches a plan.
func (s *PlanService) GetPlan(ctx context.Context, id int64) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, planLookupError(err, id)
	}
	return plan, nil
}

// UpdatePlan applies a partial update. An update without fields is rejected.
func (s *PlanService) UpdatePlan(ctx context.Context, id int64, in PlanUpdate) (*domain.Plan, error) {
	if in.empty() {
		return nil, apperrors.NewValidationError("Nenhuma alteração foi submetida para atualização", nil)
	}
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, planLookupError(err, id)
	}

	setIfPresent(&plan.Name, in.Name)
	if in.Modalities != nil {
		plan.Modalities = in.Modalities
	}
	if in.Price != nil {
		plan.Price = *in.Price
	}
	if in.DurationDays != nil {
		plan.DurationDays = *in.DurationDays
	}
	if in.Benefits != nil {
		plan.Benefits = in.Benefits
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}

	updated, err := s.plans.Update(ctx, plan)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

// DeletePlan removes a plan.
func (s *PlanService) DeletePlan(ctx context.Context, id int64) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return planLookupError(err, id)
	}
	return nil
}

func planLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Plano", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
