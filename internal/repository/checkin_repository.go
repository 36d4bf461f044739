package repository

import (
	"context"

	"github.com/spec-kit/gym-service/internal/domain"
)

// CheckInRepository handles persistence for gym check-ins.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error)
	GetByID(ctx context.Context, id int64) (*domain.CheckIn, error)
	List(ctx context.Context) ([]domain.CheckIn, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.CheckIn, error)
	Delete(ctx context.Context, id int64) error
}

type memoryCheckInRepository struct {
	table *memoryTable[domain.CheckIn]
}

// NewMemoryCheckInRepository returns a process-local check-in repository.
func NewMemoryCheckInRepository() CheckInRepository {
	return &memoryCheckInRepository{table: newMemoryTable[domain.CheckIn]()}
}

func (r *memoryCheckInRepository) Create(_ context.Context, checkIn *domain.CheckIn) (*domain.CheckIn, error) {
	row, _ := r.table.insert(nil, func(id int64) domain.CheckIn {
		created := cloneCheckIn(*checkIn)
		created.ID = id
		return created
	})
	out := cloneCheckIn(row)
	return &out, nil
}

func (r *memoryCheckInRepository) GetByID(_ context.Context, id int64) (*domain.CheckIn, error) {
	row, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneCheckIn(row)
	return &out, nil
}

func (r *memoryCheckInRepository) List(_ context.Context) ([]domain.CheckIn, error) {
	return r.listWhere(nil), nil
}

func (r *memoryCheckInRepository) ListByStudent(_ context.Context, studentID int64) ([]domain.CheckIn, error) {
	return r.listWhere(func(c domain.CheckIn) bool { return c.StudentID == studentID }), nil
}

func (r *memoryCheckInRepository) listWhere(pred func(domain.CheckIn) bool) []domain.CheckIn {
	rows := r.table.list(pred)
	for i := range rows {
		rows[i] = cloneCheckIn(rows[i])
	}
	return rows
}

func (r *memoryCheckInRepository) Delete(_ context.Context, id int64) error {
	if !r.table.delete(id) {
		return ErrNotFound
	}
	return nil
}

func cloneCheckIn(c domain.CheckIn) domain.CheckIn {
	c.Note = cloneString(c.Note)
	c.RegisteredBy = cloneInt64(c.RegisteredBy)
	return c
}
