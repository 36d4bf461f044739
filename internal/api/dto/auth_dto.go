package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

// LoginRequest payload.
type LoginRequest struct {
	UserName string `json:"userName"`
	Senha    string `json:"senha"`
}

// Validate checks that both credentials were sent.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.UserName) == "" || r.Senha == "" {
		return apperrors.NewValidationError("UserName e senha são obrigatórios", nil)
	}
	return nil
}

// StaffSummary is the account view returned on login.
type StaffSummary struct {
	ID       int64       `json:"id"`
	FullName string      `json:"nomeCompleto"`
	UserName string      `json:"userName"`
	Email    string      `json:"email"`
	JobTitle string      `json:"cargo"`
	Role     domain.Role `json:"perfil"`
}

// LoginResponse is returned for an accepted login.
type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiraEm"`
	Staff     StaffSummary `json:"funcionario"`
}

// PermissionsResponse lists what the caller's role may do.
type PermissionsResponse struct {
	UserName    string      `json:"userName"`
	Role        domain.Role `json:"perfil"`
	Permissions []string    `json:"permissoes"`
}

// NewStaffSummary builds the login view of an account.
func NewStaffSummary(account *domain.StaffAccount) StaffSummary {
	return StaffSummary{
		ID:       account.ID,
		FullName: account.FullName,
		UserName: account.UserName,
		Email:    account.Email,
		JobTitle: account.JobTitle,
		Role:     account.Role,
	}
}
