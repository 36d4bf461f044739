package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

// CheckInService records student entries.
type CheckInService struct {
	checkIns repository.CheckInRepository
	students repository.StudentRepository
}

// NewCheckInService constructs the service.
func NewCheckInService(checkIns repository.CheckInRepository, students repository.StudentRepository) *CheckInService {
	return &CheckInService{checkIns: checkIns, students: students}
}

// RegisterCheckIn records an entry for an existing student. The registering
// staff member is taken from the caller, never from the payload.
func (s *CheckInService) RegisterCheckIn(ctx context.Context, actor *auth.Principal, studentID int64, at *time.Time, note *string) (*domain.CheckIn, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	when := time.Now().UTC()
	if at != nil {
		when = at.UTC()
	}
	checkIn := &domain.CheckIn{StudentID: studentID, At: when, Note: note}
	if actor != nil {
		id := actor.StaffID
		checkIn.RegisteredBy = &id
	}

	created, err := s.checkIns.Create(ctx, checkIn)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return created, nil
}

// ListCheckIns returns every check-in.
func (s *CheckInService) ListCheckIns(ctx context.Context) ([]domain.CheckIn, error) {
	return s.checkIns.List(ctx)
}

// ListStudentCheckIns returns the check-ins of one student.
func (s *CheckInService) ListStudentCheckIns(ctx context.Context, studentID int64) ([]domain.CheckIn, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.checkIns.ListByStudent(ctx, studentID)
}

// GetCheckIn fetches a check-in.
func (s *CheckInService) GetCheckIn(ctx context.Context, id int64) (*domain.CheckIn, error) {
	checkIn, err := s.checkIns.GetByID(ctx, id)
	if err != nil {
		return nil, checkInLookupError(err, id)
	}
	return checkIn, nil
}

// DeleteCheckIn removes a check-in.
func (s *CheckInService) DeleteCheckIn(ctx context.Context, id int64) error {
	if err := s.checkIns.Delete(ctx, id); err != nil {
		return checkInLookupError(err, id)
	}
	return nil
}

func (s *CheckInService) ensureStudent(ctx context.Context, studentID int64) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Aluno", map[string]any{"alunoId": studentID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func checkInLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Checkin", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
