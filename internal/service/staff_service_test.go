package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/events"
	"github.com/spec-kit/gym-service/internal/repository"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

func newStaffService(t *testing.T) (*StaffService, repository.StaffRepository, *eventRecorder) {
	t.Helper()
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	repo := repository.NewMemoryStaffRepository()
	recorder := &eventRecorder{}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range events.AuthEventTypes() {
		dispatcher.Subscribe(et, recorder.handle)
	}
	return NewStaffService(StaffDependencies{StaffRepo: repo, Hasher: hasher, Dispatcher: dispatcher}), repo, recorder
}

func validStaffInput() CreateStaffInput {
	return CreateStaffInput{
		FullName:  "Paulo Lima",
		Email:     "paulo@gym.com",
		UserName:  "paulo",
		Password:  "treino123",
		Phone:     "11999990000",
		BirthDate: "1990-05-10",
		JobTitle:  "Instrutor",
		Role:      "INSTRUCTOR",
		Salary:    3200,
	}
}

func requireDomainError(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, status, de.HTTPStatus)
	return de
}

func TestCreateStaffMember(t *testing.T) {
	svc, repo, recorder := newStaffService(t)

	created, err := svc.CreateStaffMember(context.Background(), nil, validStaffInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, domain.RoleInstructor, created.Role)
	require.NotEqual(t, "treino123", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("treino123")))

	stored, err := repo.FindByUserName(context.Background(), "paulo")
	require.NoError(t, err)
	require.False(t, stored.Locked)
	require.Equal(t, []events.EventType{events.EventStaffCreated}, recorder.types())
}

func TestCreateStaffMember_RoleIsMandatory(t *testing.T) {
	svc, _, _ := newStaffService(t)

	in := validStaffInput()
	in.Role = ""
	_, err := svc.CreateStaffMember(context.Background(), nil, in)
	de := requireDomainError(t, err, 400)
	require.Equal(t, "Perfil é obrigatório", de.Message)

	in.Role = "RECEPCIONISTA"
	_, err = svc.CreateStaffMember(context.Background(), nil, in)
	requireDomainError(t, err, 400)
}

func TestCreateStaffMember_PasswordLength(t *testing.T) {
	svc, _, _ := newStaffService(t)

	for _, pw := range []string{"12345", "123456789012345678901"} {
		in := validStaffInput()
		in.Password = pw
		_, err := svc.CreateStaffMember(context.Background(), nil, in)
		requireDomainError(t, err, 400)
	}
}

func TestStaffPassword_MultiByteOverBcryptLimit(t *testing.T) {
	svc, _, _ := newStaffService(t)
	wide := strings.Repeat("😀", 20)

	in := validStaffInput()
	in.Password = wide
	_, err := svc.CreateStaffMember(context.Background(), nil, in)
	de := requireDomainError(t, err, 400)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	require.Equal(t, "senha", de.Details["field"])

	created, err := svc.CreateStaffMember(context.Background(), nil, validStaffInput())
	require.NoError(t, err)
	_, err = svc.UpdateStaffMember(context.Background(), created.ID, UpdateStaffInput{Password: &wide})
	requireDomainError(t, err, 400)

	accented := strings.Repeat("é", 20)
	in = validStaffInput()
	in.UserName = "acentos"
	in.Email = "acentos@gym.com"
	in.Password = accented
	_, err = svc.CreateStaffMember(context.Background(), nil, in)
	require.NoError(t, err)
}

func TestCreateStaffMember_Duplicates(t *testing.T) {
	svc, _, _ := newStaffService(t)
	_, err := svc.CreateStaffMember(context.Background(), nil, validStaffInput())
	require.NoError(t, err)

	in := validStaffInput()
	in.Email = "outro@gym.com"
	_, err = svc.CreateStaffMember(context.Background(), nil, in)
	de := requireDomainError(t, err, 409)
	require.Equal(t, "UserName já cadastrado", de.Message)

	in = validStaffInput()
	in.UserName = "outro"
	_, err = svc.CreateStaffMember(context.Background(), nil, in)
	de = requireDomainError(t, err, 409)
	require.Equal(t, "Email já cadastrado", de.Message)
}

func TestUpdateStaffMember(t *testing.T) {
	svc, _, _ := newStaffService(t)
	created, err := svc.CreateStaffMember(context.Background(), nil, validStaffInput())
	require.NoError(t, err)

	role := "manager"
	title := "Gerente"
	updated, err := svc.UpdateStaffMember(context.Background(), created.ID, UpdateStaffInput{Role: &role, JobTitle: &title})
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, updated.Role)
	require.Equal(t, "Gerente", updated.JobTitle)
	require.Equal(t, created.PasswordHash, updated.PasswordHash)

	_, err = svc.UpdateStaffMember(context.Background(), 99, UpdateStaffInput{JobTitle: &title})
	requireDomainError(t, err, 404)
}

func TestDeleteStaffMember(t *testing.T) {
	svc, _, recorder := newStaffService(t)
	created, err := svc.CreateStaffMember(context.Background(), nil, validStaffInput())
	require.NoError(t, err)

	self := &auth.Principal{StaffID: created.ID, UserName: created.UserName, Role: domain.RoleAdmin}
	requireDomainError(t, svc.DeleteStaffMember(context.Background(), self, created.ID), 409)

	admin := &auth.Principal{StaffID: 100, UserName: "admin", Role: domain.RoleAdmin}
	require.NoError(t, svc.DeleteStaffMember(context.Background(), admin, created.ID))
	requireDomainError(t, svc.DeleteStaffMember(context.Background(), admin, created.ID), 404)

	require.Contains(t, recorder.types(), events.EventStaffDeleted)
}

func TestListStaffMembers(t *testing.T) {
	svc, _, _ := newStaffService(t)
	_, err := svc.CreateStaffMember(context.Background(), nil, validStaffInput())
	require.NoError(t, err)

	in := validStaffInput()
	in.UserName, in.Email, in.Role = "rita", "rita@gym.com", "FRONT_DESK"
	_, err = svc.CreateStaffMember(context.Background(), nil, in)
	require.NoError(t, err)

	all, err := svc.ListStaffMembers(context.Background(), StaffListFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	frontDesk := domain.RoleFrontDesk
	filtered, err := svc.ListStaffMembers(context.Background(), StaffListFilters{Role: &frontDesk})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "rita", filtered[0].UserName)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, repo, _ := newStaffService(t)
	cfg := config.AdminConfig{UserName: "admin", Password: "admin@123", Email: "admin@academia.com"}

	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), cfg))
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background(), cfg))

	list, err := repo.List(context.Background(), repository.StaffFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.RoleAdmin, list[0].Role)
}
