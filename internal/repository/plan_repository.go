package repository

import (
	"context"

	"github.com/spec-kit/gym-service/internal/domain"
)

// PlanRepository handles persistence for membership plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id int64) error
}

type memoryPlanRepository struct {
	table *memoryTable[domain.Plan]
}

// NewMemoryPlanRepository returns a process-local plan repository.
func NewMemoryPlanRepository() PlanRepository {
	return &memoryPlanRepository{table: newMemoryTable[domain.Plan]()}
}

func (r *memoryPlanRepository) Create(_ context.Context, plan *domain.Plan) (*domain.Plan, error) {
	row, _ := r.table.insert(nil, func(id int64) domain.Plan {
		created := clonePlan(*plan)
		created.ID = id
		return created
	})
	out := clonePlan(row)
	return &out, nil
}

func (r *memoryPlanRepository) Update(_ context.Context, plan *domain.Plan) (*domain.Plan, error) {
	row, err := r.table.update(plan.ID, func(current *domain.Plan) error {
		createdAt := current.CreatedAt
		*current = clonePlan(*plan)
		current.CreatedAt = createdAt
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	out := clonePlan(row)
	return &out, nil
}

func (r *memoryPlanRepository) GetByID(_ context.Context, id int64) (*domain.Plan, error) {
	row, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := clonePlan(row)
	return &out, nil
}

func (r *memoryPlanRepository) List(_ context.Context) ([]domain.Plan, error) {
	rows := r.table.list(nil)
	for i := range rows {
		rows[i] = clonePlan(rows[i])
	}
	return rows, nil
}

func (r *memoryPlanRepository) Delete(_ context.Context, id int64) error {
	if !r.table.delete(id) {
		return ErrNotFound
	}
	return nil
}

func clonePlan(p domain.Plan) domain.Plan {
	p.Modalities = append([]string(nil), p.Modalities...)
	p.Benefits = append([]string(nil), p.Benefits...)
	return p
}
