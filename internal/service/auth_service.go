package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/events"
	"github.com/spec-kit/gym-service/internal/repository"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

// AuthService runs the login lockout state machine.
//
// An account is ACTIVE with 0..MaxLoginAttempts-1 failed attempts, or LOCKED.
// The attempt that reaches MaxLoginAttempts locks the account and zeroes the
// counter. LOCKED is left only through Unlock.
type AuthService struct {
	store      repository.CredentialStore
	hasher     auth.Hasher
	tokens     *auth.TokenIssuer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	locks      *keyedMutex
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	CredentialStore repository.CredentialStore
	Hasher          auth.Hasher
	Tokens          *auth.TokenIssuer
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		store:      deps.CredentialStore,
		hasher:     deps.Hasher,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		locks:      newKeyedMutex(),
	}
}

// AttemptLogin authenticates a staff member. Rejections are reported through
// the result's Outcome; a non-nil error means an internal fault.
func (s *AuthService) AttemptLogin(ctx context.Context, userName, password string) (*domain.LoginResult, error) {
	var pending []events.Event
	result, err := s.attemptLogin(ctx, userName, password, &pending)
	// events are dispatched with the account lock released
	for _, event := range pending {
		s.publish(ctx, event)
	}
	return result, err
}

func (s *AuthService) attemptLogin(ctx context.Context, userName, password string, pending *[]events.Event) (*domain.LoginResult, error) {
	// read-modify-write of the attempt counter is a per-account critical section
	unlock := s.locks.Lock(userName)
	defer unlock()

	account, err := s.store.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			*pending = append(*pending, events.NewEvent(events.EventLoginFailed, userName, nil,
				events.LoginFailedPayload{UnknownAccount: true}))
			return &domain.LoginResult{Outcome: domain.LoginRejectedInvalidCredentials}, nil
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if account.Locked {
		*pending = append(*pending, events.NewEvent(events.EventLoginFailed, userName, &account.ID,
			events.LoginFailedPayload{AlreadyLocked: true}))
		return &domain.LoginResult{Outcome: domain.LoginRejectedLocked}, nil
	}

	match, err := s.hasher.Compare(account.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !match {
		return s.recordFailure(ctx, account, pending)
	}

	if err := s.store.PersistAttemptState(ctx, account.UserName, 0, false); err != nil {
		return nil, fmt.Errorf("reset attempts: %w", err)
	}
	account.FailedAttempts = 0

	token, expiresAt, err := s.tokens.Issue(account.ID, account.UserName, account.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	*pending = append(*pending, events.NewEvent(events.EventLoginSucceeded, userName, &account.ID, nil))
	return &domain.LoginResult{
		Outcome:   domain.LoginAccepted,
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account,
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, account *domain.StaffAccount, pending *[]events.Event) (*domain.LoginResult, error) {
	failed := account.FailedAttempts + 1

	if failed >= domain.MaxLoginAttempts {
		if err := s.store.PersistAttemptState(ctx, account.UserName, 0, true); err != nil {
			return nil, fmt.Errorf("lock account: %w", err)
		}
		account.FailedAttempts = 0
		account.Locked = true

		s.logger.Warn("account locked after failed logins",
			zap.Int64("staff_id", account.ID),
			zap.String("user_name", account.UserName),
			zap.Int("threshold", domain.MaxLoginAttempts))
		*pending = append(*pending, events.NewEvent(events.EventAccountLocked, account.UserName, &account.ID,
			events.AccountLockedPayload{Threshold: domain.MaxLoginAttempts}))
		return &domain.LoginResult{Outcome: domain.LoginRejectedLocked, JustLocked: true}, nil
	}

	if err := s.store.PersistAttemptState(ctx, account.UserName, failed, false); err != nil {
		return nil, fmt.Errorf("record failed attempt: %w", err)
	}
	account.FailedAttempts = failed

	remaining := domain.MaxLoginAttempts - failed
	*pending = append(*pending, events.NewEvent(events.EventLoginFailed, account.UserName, &account.ID,
		events.LoginFailedPayload{FailedAttempts: failed, RemainingAttempts: remaining}))
	return &domain.LoginResult{
		Outcome:           domain.LoginRejectedInvalidCredentials,
		RemainingAttempts: &remaining,
	}, nil
}

// Unlock clears the lock flag and attempt counter of a staff account.
func (s *AuthService) Unlock(ctx context.Context, actor *auth.Principal, staffID int64) (*domain.StaffAccount, error) {
	account, err := s.store.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Funcionário", map[string]any{"id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.unlock(ctx, actor, account)
}

// UnlockByUserName is the user-name keyed variant used by the admin CLI.
func (s *AuthService) UnlockByUserName(ctx context.Context, actor *auth.Principal, userName string) (*domain.StaffAccount, error) {
	account, err := s.store.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Funcionário", map[string]any{"userName": userName})
		}
		return nil, apperrors.MapError(err)
	}
	return s.unlock(ctx, actor, account)
}

func (s *AuthService) unlock(ctx context.Context, actor *auth.Principal, account *domain.StaffAccount) (*domain.StaffAccount, error) {
	release := s.locks.Lock(account.UserName)
	err := s.store.PersistAttemptState(ctx, account.UserName, 0, false)
	release()
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	account.FailedAttempts = 0
	account.Locked = false

	event := events.NewEvent(events.EventAccountUnlocked, account.UserName, &account.ID, nil)
	if actor != nil {
		event.Actor = &events.Actor{StaffID: actor.StaffID, UserName: actor.UserName}
	}
	s.publish(ctx, event)
	return account, nil
}

// TokenIssuer exposes the underlying issuer for middleware usage.
func (s *AuthService) TokenIssuer() *auth.TokenIssuer {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("auth event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
