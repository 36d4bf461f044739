package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

// StudentService manages gym members.
type StudentService struct {
	students repository.StudentRepository
	plans    repository.PlanRepository
}

// StudentInput carries the fields of a student registration.
type StudentInput struct {
	FullName     string
	Email        string
	Phone        string
	BirthDate    string
	CPF          *string
	PlanID       *int64
	StartDate    string
	Address      domain.Address
	MedicalNotes *string
}

// StudentUpdate carries a partial update; nil fields are left unchanged.
type StudentUpdate struct {
	FullName     *string
	Email        *string
	Phone        *string
	BirthDate    *string
	CPF          *string
	PlanID       *int64
	StartDate    *string
	Address      *AddressUpdate
	MedicalNotes *string
}

// AddressUpdate patches individual address fields.
type AddressUpdate struct {
	Street     *string
	Number     *string
	Complement *string
	District   *string
	City       *string
	State      *string
	ZipCode    *string
}

func (u AddressUpdate) apply(addr *domain.Address) {
	setIfPresent(&addr.Street, u.Street)
	setIfPresent(&addr.Number, u.Number)
	setIfPresent(&addr.City, u.City)
	setIfPresent(&addr.State, u.State)
	setIfPresent(&addr.ZipCode, u.ZipCode)
	if u.Complement != nil {
		addr.Complement = u.Complement
	}
	if u.District != nil {
		addr.District = u.District
	}
}

// NewStudentService constructs the service.
func NewStudentService(students repository.StudentRepository, plans repository.PlanRepository) *StudentService {
	return &StudentService{students: students, plans: plans}
}

// CreateStudent registers a member. Email must be unique among students.
func (s *StudentService) CreateStudent(ctx context.Context, in StudentInput) (*domain.Student, error) {
	if _, err := s.students.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("Email já cadastrado", map[string]any{"email": in.Email})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}
	if err := s.ensurePlan(ctx, in.PlanID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	startDate := in.StartDate
	if startDate == "" {
		startDate = now.Format(domain.DateLayout)
	}

	created, err := s.students.Create(ctx, &domain.Student{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		CPF:          in.CPF,
		PlanID:       in.PlanID,
		StartDate:    startDate,
		Address:      in.Address,
		MedicalNotes: in.MedicalNotes,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return created, nil
}

// ListStudents returns every member in registration order.
func (s *StudentService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.students.List(ctx)
}

// GetStudent fetches a member.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, studentLookupError(err, id)
	}
	return student, nil
}

// UpdateStudent applies a partial update.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, in StudentUpdate) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, studentLookupError(err, id)
	}

	if in.Email != nil && *in.Email != student.Email {
		if existing, err := s.students.GetByEmail(ctx, *in.Email); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("Email já cadastrado", map[string]any{"email": *in.Email})
		}
		student.Email = *in.Email
	}
	if in.PlanID != nil {
		if err := s.ensurePlan(ctx, in.PlanID); err != nil {
			return nil, err
		}
		student.PlanID = in.PlanID
	}
	setIfPresent(&student.FullName, in.FullName)
	setIfPresent(&student.Phone, in.Phone)
	setIfPresent(&student.BirthDate, in.BirthDate)
	setIfPresent(&student.StartDate, in.StartDate)
	if in.CPF != nil {
		student.CPF = in.CPF
	}
	if in.Address != nil {
		in.Address.apply(&student.Address)
	}
	if in.MedicalNotes != nil {
		student.MedicalNotes = in.MedicalNotes
	}

	updated, err := s.students.Update(ctx, student)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

// DeleteStudent removes a member.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return studentLookupError(err, id)
	}
	return nil
}

func (s *StudentService) ensurePlan(ctx context.Context, planID *int64) error {
	if planID == nil {
		return nil
	}
	if _, err := s.plans.GetByID(ctx, *planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Plano", map[string]any{"planoId": *planID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func studentLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Aluno", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
