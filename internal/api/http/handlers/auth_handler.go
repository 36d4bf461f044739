package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/service"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

const (
	msgJustLocked    = "Conta bloqueada. Você excedeu o número máximo de tentativas"
	msgAlreadyLocked = "Conta bloqueada devido a múltiplas tentativas de login inválidas"
)

// AuthHandler exposes login and caller introspection.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.authService.AttemptLogin(c.UserContext(), req.UserName, req.Senha)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	switch result.Outcome {
	case domain.LoginAccepted:
		return c.Status(http.StatusOK).JSON(dto.LoginResponse{
			Message:   "Login realizado com sucesso",
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
			Staff:     dto.NewStaffSummary(result.Account),
		})
	case domain.LoginRejectedLocked:
		if result.JustLocked {
			return apperrors.NewAccountLocked(msgJustLocked)
		}
		return apperrors.NewAccountLocked(msgAlreadyLocked)
	default:
		return apperrors.NewInvalidCredentials(result.RemainingAttempts)
	}
}

// Permissions handles GET /api/me/permissoes.
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Usuário não autenticado")
	}
	granted := auth.PermissionsFor(principal.Role)
	names := make([]string, 0, len(granted))
	for _, p := range granted {
		names = append(names, string(p))
	}
	return c.JSON(dto.PermissionsResponse{
		UserName:    principal.UserName,
		Role:        principal.Role,
		Permissions: names,
	})
}
