package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-service/internal/domain"
)

func newAccount(userName, email string, role domain.Role) *domain.StaffAccount {
	return &domain.StaffAccount{
		UserName:     userName,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
	}
}

func TestMemoryStaffRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()

	created, err := repo.Insert(ctx, newAccount("ana", "ana@gym.com", domain.RoleAdmin))
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	byName, err := repo.FindByUserName(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "ANA@gym.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	_, err = repo.FindByUserName(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindByID(ctx, 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStaffRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()
	_, err := repo.Insert(ctx, newAccount("ana", "ana@gym.com", domain.RoleAdmin))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, newAccount("ana", "other@gym.com", domain.RoleAdmin))
	require.ErrorIs(t, err, ErrConflict)
	_, err = repo.Insert(ctx, newAccount("bia", "ana@gym.com", domain.RoleAdmin))
	require.ErrorIs(t, err, ErrConflict)
}

func TestMemoryStaffRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()
	created, err := repo.Insert(ctx, newAccount("ana", "ana@gym.com", domain.RoleAdmin))
	require.NoError(t, err)

	created.Locked = true
	created.FailedAttempts = 2

	stored, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, stored.Locked)
	require.Zero(t, stored.FailedAttempts)
}

func TestMemoryStaffRepository_PersistAttemptState(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()
	created, err := repo.Insert(ctx, newAccount("ana", "ana@gym.com", domain.RoleFrontDesk))
	require.NoError(t, err)

	require.NoError(t, repo.PersistAttemptState(ctx, "ana", 2, false))
	stored, _ := repo.FindByID(ctx, created.ID)
	require.Equal(t, 2, stored.FailedAttempts)

	require.NoError(t, repo.PersistAttemptState(ctx, "ana", 0, true))
	stored, _ = repo.FindByID(ctx, created.ID)
	require.Zero(t, stored.FailedAttempts)
	require.True(t, stored.Locked)

	require.ErrorIs(t, repo.PersistAttemptState(ctx, "ghost", 1, false), ErrNotFound)
}

func TestMemoryStaffRepository_UpdateKeepsAttemptState(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()
	created, err := repo.Insert(ctx, newAccount("ana", "ana@gym.com", domain.RoleFrontDesk))
	require.NoError(t, err)
	require.NoError(t, repo.PersistAttemptState(ctx, "ana", 0, true))

	created.Role = domain.RoleManager
	created.Locked = false
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, updated.Role)
	require.True(t, updated.Locked)
}

func TestMemoryStaffRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStaffRepository()
	_, _ = repo.Insert(ctx, newAccount("ana", "ana@gym.com", domain.RoleAdmin))
	_, _ = repo.Insert(ctx, newAccount("bia", "bia@gym.com", domain.RoleInstructor))
	_, _ = repo.Insert(ctx, newAccount("caio", "caio@gym.com", domain.RoleInstructor))
	require.NoError(t, repo.PersistAttemptState(ctx, "caio", 0, true))

	instructor := domain.RoleInstructor
	list, err := repo.List(ctx, StaffFilter{Role: &instructor})
	require.NoError(t, err)
	require.Len(t, list, 2)

	locked := true
	list, err = repo.List(ctx, StaffFilter{Locked: &locked})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "caio", list[0].UserName)

	require.NoError(t, repo.Delete(ctx, list[0].ID))
	require.ErrorIs(t, repo.Delete(ctx, list[0].ID), ErrNotFound)
}
