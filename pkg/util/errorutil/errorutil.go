package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/gym-service/internal/repository"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s não encontrado", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

// NewInvalidCredentials covers both unknown user names and wrong passwords.
// remaining is only reported for a known, unlocked account.
func NewInvalidCredentials(remaining *int) error {
	var details map[string]any
	if remaining != nil {
		details = map[string]any{"tentativasRestantes": *remaining}
	}
	return NewDomainError("INVALID_CREDENTIALS", "Credenciais inválidas", http.StatusUnauthorized, details)
}

func NewAccountLocked(message string) error {
	return NewDomainError("ACCOUNT_LOCKED", message, http.StatusForbidden, nil)
}

func NewTokenInvalid(message string) error {
	return NewDomainError("TOKEN_INVALID", message, http.StatusUnauthorized, nil)
}

// NewPermissionDenied reports a valid token whose role lacks the required permission(s).
func NewPermissionDenied(role string, required ...string) error {
	details := map[string]any{"seuPerfil": role}
	if len(required) == 1 {
		details["permissaoRequerida"] = required[0]
	} else {
		details["permissoesRequeridas"] = required
	}
	return NewDomainError(
		"PERMISSION_DENIED",
		"Acesso negado. Você não tem permissão para realizar esta ação",
		http.StatusForbidden,
		details,
	)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Erro interno do servidor",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		if de, ok := NewNotFound("Registro", nil).(*DomainError); ok {
			return de
		}
	}
	if errors.Is(err, repository.ErrConflict) {
		if de, ok := NewConflict("Registro já existente", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Erro interno do servidor",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
