package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/domain"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller as asserted by its token.
type Principal struct {
	StaffID  int64
	UserName string
	Role     domain.Role
}

// AuthMiddleware validates bearer tokens and stores the principal on the request.
type AuthMiddleware struct {
	tokens *TokenIssuer
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewTokenInvalid("Token não fornecido")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return apperrors.NewTokenInvalid("Formato de token inválido")
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewTokenInvalid("Token mal formado")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewTokenInvalid("Token inválido ou expirado")
	}

	c.Locals(principalKey, &Principal{
		StaffID:  claims.SubjectID,
		UserName: claims.UserName,
		Role:     claims.Role,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequirePermission ensures the caller's role holds permission.
func RequirePermission(permission Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Usuário não autenticado")
		}
		if !Authorize(principal.Role, permission) {
			return apperrors.NewPermissionDenied(string(principal.Role), string(permission))
		}
		return c.Next()
	}
}

// RequireAnyPermission ensures the caller's role holds at least one of permissions.
func RequireAnyPermission(permissions ...Permission) fiber.Handler {
	required := make([]string, len(permissions))
	for i, p := range permissions {
		required[i] = string(p)
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Usuário não autenticado")
		}
		if !AuthorizeAny(principal.Role, permissions...) {
			return apperrors.NewPermissionDenied(string(principal.Role), required...)
		}
		return c.Next()
	}
}
