package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/gym-service/internal/domain"
)

// StudentRepository handles persistence for gym members.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Update(ctx context.Context, student *domain.Student) (*domain.Student, error)
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Delete(ctx context.Context, id int64) error
}

type memoryStudentRepository struct {
	table *memoryTable[domain.Student]
}

// NewMemoryStudentRepository returns a process-local student repository.
func NewMemoryStudentRepository() StudentRepository {
	return &memoryStudentRepository{table: newMemoryTable[domain.Student]()}
}

func (r *memoryStudentRepository) Create(_ context.Context, student *domain.Student) (*domain.Student, error) {
	row, err := r.table.insert(
		func(existing domain.Student) error { return studentUniqueness(*student, existing) },
		func(id int64) domain.Student {
			created := cloneStudent(*student)
			created.ID = id
			return created
		},
	)
	if err != nil {
		return nil, err
	}
	out := cloneStudent(row)
	return &out, nil
}

func (r *memoryStudentRepository) Update(_ context.Context, student *domain.Student) (*domain.Student, error) {
	row, err := r.table.update(student.ID,
		func(current *domain.Student) error {
			createdAt := current.CreatedAt
			*current = cloneStudent(*student)
			current.CreatedAt = createdAt
			return nil
		},
		studentUniqueness,
	)
	if err != nil {
		return nil, err
	}
	out := cloneStudent(row)
	return &out, nil
}

func (r *memoryStudentRepository) GetByID(_ context.Context, id int64) (*domain.Student, error) {
	row, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneStudent(row)
	return &out, nil
}

func (r *memoryStudentRepository) GetByEmail(_ context.Context, email string) (*domain.Student, error) {
	row, ok := r.table.find(func(s domain.Student) bool { return strings.EqualFold(s.Email, email) })
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneStudent(row)
	return &out, nil
}

func (r *memoryStudentRepository) List(_ context.Context) ([]domain.Student, error) {
	rows := r.table.list(nil)
	for i := range rows {
		rows[i] = cloneStudent(rows[i])
	}
	return rows, nil
}

func (r *memoryStudentRepository) Delete(_ context.Context, id int64) error {
	if !r.table.delete(id) {
		return ErrNotFound
	}
	return nil
}

func studentUniqueness(candidate, existing domain.Student) error {
	if strings.EqualFold(existing.Email, candidate.Email) {
		return fmt.Errorf("%w: email %q", ErrConflict, candidate.Email)
	}
	return nil
}

func cloneStudent(s domain.Student) domain.Student {
	s.CPF = cloneString(s.CPF)
	s.PlanID = cloneInt64(s.PlanID)
	s.MedicalNotes = cloneString(s.MedicalNotes)
	s.Address.Complement = cloneString(s.Address.Complement)
	s.Address.District = cloneString(s.Address.District)
	return s
}
