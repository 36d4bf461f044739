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

// StaffHandler exposes staff account endpoints.
type StaffHandler struct {
	authService  *service.AuthService
	staffService *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService, staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{authService: authService, staffService: staffService}
}

// CreateStaff handles POST /api/funcionarios.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	actor, _ := auth.PrincipalFromContext(c)
	staff, err := h.staffService.CreateStaffMember(c.UserContext(), actor, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":     "Funcionário cadastrado com sucesso",
		"funcionario": dto.NewStaffResponse(staff),
	})
}

// ListStaff handles GET /api/funcionarios.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	filters, err := parseStaffListFilters(c)
	if err != nil {
		return err
	}
	list, err := h.staffService.ListStaffMembers(c.UserContext(), filters)
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewStaffResponse(&list[i]))
	}
	return c.JSON(resp)
}

// GetStaff handles GET /api/funcionarios/:id.
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	staff, err := h.staffService.GetStaffMemberByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStaffResponse(staff))
}

// UpdateStaff handles PUT /api/funcionarios/:id.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.StaffUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	updated, err := h.staffService.UpdateStaffMember(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Funcionário atualizado com sucesso",
		"funcionario": dto.NewStaffResponse(updated),
	})
}

// DeleteStaff handles DELETE /api/funcionarios/:id.
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.PrincipalFromContext(c)
	if err := h.staffService.DeleteStaffMember(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Funcionário deletado com sucesso"})
}

// UnlockStaff handles POST /api/funcionarios/:id/desbloquear.
func (h *StaffHandler) UnlockStaff(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.PrincipalFromContext(c)
	staff, err := h.authService.Unlock(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":     "Funcionário desbloqueado com sucesso",
		"funcionario": dto.NewStaffResponse(staff),
	})
}

func parseStaffListFilters(c *fiber.Ctx) (service.StaffListFilters, error) {
	var filters service.StaffListFilters
	if raw := c.Query("perfil"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			return filters, apperrors.NewValidationError("Perfil inválido", map[string]any{"field": "perfil"})
		}
		filters.Role = &role
	}
	locked, err := parseBoolQuery(c, "bloqueado")
	if err != nil {
		return filters, err
	}
	filters.Locked = locked
	return filters, nil
}
