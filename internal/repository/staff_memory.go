package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/gym-service/internal/domain"
)

type memoryStaffRepository struct {
	table *memoryTable[domain.StaffAccount]
}

// NewMemoryStaffRepository returns a process-local staff repository.
func NewMemoryStaffRepository() StaffRepository {
	return &memoryStaffRepository{table: newMemoryTable[domain.StaffAccount]()}
}

func (r *memoryStaffRepository) Insert(_ context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error) {
	row, err := r.table.insert(
		func(existing domain.StaffAccount) error {
			return staffUniqueness(*account, existing)
		},
		func(id int64) domain.StaffAccount {
			created := cloneStaff(*account)
			created.ID = id
			return created
		},
	)
	if err != nil {
		return nil, err
	}
	out := cloneStaff(row)
	return &out, nil
}

func (r *memoryStaffRepository) Update(_ context.Context, account *domain.StaffAccount) (*domain.StaffAccount, error) {
	row, err := r.table.update(account.ID,
		func(current *domain.StaffAccount) error {
			updated := cloneStaff(*account)
			// attempt state is owned by PersistAttemptState
			updated.FailedAttempts = current.FailedAttempts
			updated.Locked = current.Locked
			updated.CreatedAt = current.CreatedAt
			*current = updated
			return nil
		},
		staffUniqueness,
	)
	if err != nil {
		return nil, err
	}
	out := cloneStaff(row)
	return &out, nil
}

func (r *memoryStaffRepository) PersistAttemptState(_ context.Context, userName string, failedAttempts int, locked bool) error {
	row, ok := r.table.find(func(a domain.StaffAccount) bool { return a.UserName == userName })
	if !ok {
		return ErrNotFound
	}
	_, err := r.table.update(row.ID, func(current *domain.StaffAccount) error {
		current.FailedAttempts = failedAttempts
		current.Locked = locked
		return nil
	}, nil)
	return err
}

func (r *memoryStaffRepository) Delete(_ context.Context, id int64) error {
	if !r.table.delete(id) {
		return ErrNotFound
	}
	return nil
}

func (r *memoryStaffRepository) FindByID(_ context.Context, id int64) (*domain.StaffAccount, error) {
	row, ok := r.table.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneStaff(row)
	return &out, nil
}

func (r *memoryStaffRepository) FindByUserName(_ context.Context, userName string) (*domain.StaffAccount, error) {
	return r.findBy(func(a domain.StaffAccount) bool { return a.UserName == userName })
}

func (r *memoryStaffRepository) FindByEmail(_ context.Context, email string) (*domain.StaffAccount, error) {
	return r.findBy(func(a domain.StaffAccount) bool { return strings.EqualFold(a.Email, email) })
}

func (r *memoryStaffRepository) findBy(pred func(domain.StaffAccount) bool) (*domain.StaffAccount, error) {
	row, ok := r.table.find(pred)
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneStaff(row)
	return &out, nil
}

func (r *memoryStaffRepository) List(_ context.Context, filter StaffFilter) ([]domain.StaffAccount, error) {
	rows := r.table.list(func(a domain.StaffAccount) bool {
		if filter.Role != nil && a.Role != *filter.Role {
			return false
		}
		if filter.Locked != nil && a.Locked != *filter.Locked {
			return false
		}
		return true
	})
	for i := range rows {
		rows[i] = cloneStaff(rows[i])
	}
	return rows, nil
}

func staffUniqueness(candidate, existing domain.StaffAccount) error {
	if existing.UserName == candidate.UserName {
		return fmt.Errorf("%w: user name %q", ErrConflict, candidate.UserName)
	}
	if candidate.Email != "" && strings.EqualFold(existing.Email, candidate.Email) {
		return fmt.Errorf("%w: email %q", ErrConflict, candidate.Email)
	}
	return nil
}

func cloneStaff(a domain.StaffAccount) domain.StaffAccount {
	a.CPF = cloneString(a.CPF)
	a.CREF = cloneString(a.CREF)
	return a
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
