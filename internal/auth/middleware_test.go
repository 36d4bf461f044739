package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-service/internal/domain"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

func newMiddlewareApp(t *testing.T, issuer *TokenIssuer, guards ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var de *apperrors.DomainError
			if errors.As(err, &de) {
				body := fiber.Map{"message": de.Message, "code": de.Code}
				for k, v := range de.Details {
					body[k] = v
				}
				return c.Status(de.HTTPStatus).JSON(body)
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	handlers := append([]fiber.Handler{NewAuthMiddleware(issuer).Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": p.StaffID, "userName": p.UserName, "perfil": p.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthMiddleware_HeaderErrors(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	app := newMiddlewareApp(t, issuer)
	token, _, err := issuer.Issue(7, "carla", domain.RoleManager)
	require.NoError(t, err)

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing", "", "Token não fornecido"},
		{"one part", "Bearer", "Formato de token inválido"},
		{"three parts", "Bearer a b", "Formato de token inválido"},
		{"wrong scheme", "Basic " + token, "Token mal formado"},
		{"garbage", "Bearer garbage", "Token inválido ou expirado"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, app, tc.header)
			require.Equal(t, http.StatusUnauthorized, status)
			require.Equal(t, tc.message, body["message"])
		})
	}
}

func TestAuthMiddleware_Expired(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute)
	past := time.Now().Add(-time.Hour)
	issuer.now = func() time.Time { return past }
	token, _, err := issuer.Issue(7, "carla", domain.RoleManager)
	require.NoError(t, err)
	issuer.now = time.Now

	status, body := doRequest(t, newMiddlewareApp(t, issuer), "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Token inválido ou expirado", body["message"])
}

func TestAuthMiddleware_SetsPrincipal(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	token, _, err := issuer.Issue(7, "carla", domain.RoleManager)
	require.NoError(t, err)

	status, body := doRequest(t, newMiddlewareApp(t, issuer), "Bearer "+token)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 7, body["id"])
	require.Equal(t, "carla", body["userName"])
	require.Equal(t, "MANAGER", body["perfil"])
}

func TestRequirePermission(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	app := newMiddlewareApp(t, issuer, RequirePermission(PermDeleteStudent))

	token, _, err := issuer.Issue(3, "paulo", domain.RoleInstructor)
	require.NoError(t, err)
	status, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "DELETE_STUDENT", body["permissaoRequerida"])
	require.Equal(t, "INSTRUCTOR", body["seuPerfil"])
	require.Equal(t, "PERMISSION_DENIED", body["code"])

	adminToken, _, err := issuer.Issue(1, "admin", domain.RoleAdmin)
	require.NoError(t, err)
	status, _ = doRequest(t, app, "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, status)
}

func TestRequireAnyPermission(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	app := newMiddlewareApp(t, issuer, RequireAnyPermission(PermGenerateReports, PermViewFinancial))

	token, _, err := issuer.Issue(4, "rita", domain.RoleFrontDesk)
	require.NoError(t, err)
	status, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, status)
	require.ElementsMatch(t, []any{"GENERATE_REPORTS", "VIEW_FINANCIAL"}, body["permissoesRequeridas"])
	require.Equal(t, "FRONT_DESK", body["seuPerfil"])

	managerToken, _, err := issuer.Issue(5, "gil", domain.RoleManager)
	require.NoError(t, err)
	status, _ = doRequest(t, app, "Bearer "+managerToken)
	require.Equal(t, http.StatusOK, status)
}
