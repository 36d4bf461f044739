package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/config"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/events"
	"github.com/spec-kit/gym-service/internal/repository"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 20
	// bcrypt refuses input longer than this many bytes
	maxPasswordBytes = 72
)

// StaffService manages staff accounts.
type StaffService struct {
	staff      repository.StaffRepository
	hasher     auth.Hasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StaffDependencies encapsulates collaborators of the staff service.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	Hasher     auth.Hasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateStaffInput carries a staff registration. Role has no default.
type CreateStaffInput struct {
	FullName  string
	Email     string
	UserName  string
	Password  string
	Phone     string
	BirthDate string
	CPF       *string
	JobTitle  string
	Role      string
	HiredOn   string
	CREF      *string
	Salary    float64
}

// UpdateStaffInput carries a partial update; nil fields are left unchanged.
type UpdateStaffInput struct {
	FullName  *string
	Email     *string
	Password  *string
	Phone     *string
	BirthDate *string
	CPF       *string
	JobTitle  *string
	Role      *string
	HiredOn   *string
	CREF      *string
	Salary    *float64
}

// StaffListFilters define listing parameters.
type StaffListFilters struct {
	Role   *domain.Role
	Locked *bool
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staff:      deps.StaffRepo,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateStaffMember registers a new staff account with a hashed password.
func (s *StaffService) CreateStaffMember(ctx context.Context, actor *auth.Principal, in CreateStaffInput) (*domain.StaffAccount, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, roleError(err)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, 0, in.UserName, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account, err := domain.NewStaffAccount(domain.StaffAccountParams{
		UserName:     in.UserName,
		PasswordHash: hash,
		Role:         role,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		BirthDate:    in.BirthDate,
		CPF:          in.CPF,
		JobTitle:     in.JobTitle,
		HiredOn:      in.HiredOn,
		CREF:         in.CREF,
		Salary:       in.Salary,
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	created, err := s.staff.Insert(ctx, account)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.NewEvent(events.EventStaffCreated, created.UserName, &created.ID,
		events.StaffChangedPayload{Role: created.Role}))
	return created, nil
}

// ListStaffMembers lists staff with filters.
func (s *StaffService) ListStaffMembers(ctx context.Context, filters StaffListFilters) ([]domain.StaffAccount, error) {
	list, err := s.staff.List(ctx, repository.StaffFilter{Role: filters.Role, Locked: filters.Locked})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetStaffMemberByID fetches staff.
func (s *StaffService) GetStaffMemberByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	account, err := s.staff.FindByID(ctx, id)
	if err != nil {
		return nil, staffLookupError(err, id)
	}
	return account, nil
}

// UpdateStaffMember applies a partial update. A role change does not affect
// tokens already issued to the account.
func (s *StaffService) UpdateStaffMember(ctx context.Context, id int64, in UpdateStaffInput) (*domain.StaffAccount, error) {
	account, err := s.staff.FindByID(ctx, id)
	if err != nil {
		return nil, staffLookupError(err, id)
	}

	if in.Email != nil && *in.Email != account.Email {
		if err := s.ensureUnique(ctx, account.ID, "", *in.Email); err != nil {
			return nil, err
		}
		account.Email = *in.Email
	}
	if in.Role != nil {
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, roleError(err)
		}
		account.Role = role
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		account.PasswordHash = hash
	}
	setIfPresent(&account.FullName, in.FullName)
	setIfPresent(&account.Phone, in.Phone)
	setIfPresent(&account.BirthDate, in.BirthDate)
	setIfPresent(&account.JobTitle, in.JobTitle)
	setIfPresent(&account.HiredOn, in.HiredOn)
	if in.CPF != nil {
		account.CPF = in.CPF
	}
	if in.CREF != nil {
		account.CREF = in.CREF
	}
	if in.Salary != nil {
		account.Salary = *in.Salary
	}

	updated, err := s.staff.Update(ctx, account)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return updated, nil
}

// DeleteStaffMember removes a staff account. Callers cannot delete themselves.
func (s *StaffService) DeleteStaffMember(ctx context.Context, actor *auth.Principal, id int64) error {
	if actor != nil && actor.StaffID == id {
		return apperrors.NewConflict("Não é possível excluir o próprio usuário", map[string]any{"id": id})
	}
	account, err := s.staff.FindByID(ctx, id)
	if err != nil {
		return staffLookupError(err, id)
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		return staffLookupError(err, id)
	}
	s.publish(ctx, actor, events.NewEvent(events.EventStaffDeleted, account.UserName, &account.ID,
		events.StaffChangedPayload{Role: account.Role}))
	return nil
}

// EnsureDefaultAdmin seeds the configured administrator when its user name is free.
func (s *StaffService) EnsureDefaultAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if _, err := s.staff.FindByUserName(ctx, cfg.UserName); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup default admin: %w", err)
	}

	_, err := s.CreateStaffMember(ctx, nil, CreateStaffInput{
		FullName:  "Administrador do Sistema",
		Email:     cfg.Email,
		UserName:  cfg.UserName,
		Password:  cfg.Password,
		Phone:     "00000000000",
		BirthDate: "2000-01-01",
		JobTitle:  "Administrador do Sistema",
		Role:      string(domain.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}
	s.logger.Info("default administrator created", zap.String("user_name", cfg.UserName))
	return nil
}

func (s *StaffService) ensureUnique(ctx context.Context, selfID int64, userName, email string) error {
	if userName != "" {
		if existing, err := s.staff.FindByUserName(ctx, userName); err == nil && existing.ID != selfID {
			return apperrors.NewConflict("UserName já cadastrado", map[string]any{"userName": userName})
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return apperrors.MapError(err)
		}
	}
	if email != "" {
		if existing, err := s.staff.FindByEmail(ctx, email); err == nil && existing.ID != selfID {
			return apperrors.NewConflict("Email já cadastrado", map[string]any{"email": email})
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return apperrors.MapError(err)
		}
	}
	return nil
}

func (s *StaffService) publish(ctx context.Context, actor *auth.Principal, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if actor != nil {
		event.Actor = &events.Actor{StaffID: actor.StaffID, UserName: actor.UserName}
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("staff event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("Senha deve ter entre %d e %d caracteres", minPasswordLength, maxPasswordLength),
			map[string]any{"field": "senha"},
		)
	}
	if len(password) > maxPasswordBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("Senha deve ter no máximo %d bytes", maxPasswordBytes),
			map[string]any{"field": "senha"},
		)
	}
	return nil
}

func roleError(err error) error {
	msg := "Perfil inválido. Use: ADMIN, MANAGER, INSTRUCTOR ou FRONT_DESK"
	if errors.Is(err, domain.ErrRoleRequired) {
		msg = "Perfil é obrigatório"
	}
	return apperrors.NewValidationError(msg, map[string]any{"field": "perfil"})
}

func staffLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Funcionário", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
