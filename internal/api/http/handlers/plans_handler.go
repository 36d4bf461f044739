package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/service"
)

// PlansHandler exposes membership plan endpoints.
type PlansHandler struct {
	plans *service.PlanService
}

// NewPlansHandler constructs handler.
func NewPlansHandler(plans *service.PlanService) *PlansHandler {
	return &PlansHandler{plans: plans}
}

// Create handles POST /api/planos.
func (h *PlansHandler) Create(c *fiber.Ctx) error {
	var req dto.PlanCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	plan, err := h.plans.CreatePlan(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Plano criado com sucesso",
		"plano":   dto.NewPlanResponse(plan),
	})
}

// List handles GET /api/planos.
func (h *PlansHandler) List(c *fiber.Ctx) error {
	list, err := h.plans.ListPlans(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.PlanResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewPlanResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"message": "Planos listados com sucesso", "planos": resp})
}

// Get handles GET /api/planos/:id.
func (h *PlansHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	plan, err := h.plans.GetPlan(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Plano encontrado com sucesso", "plano": dto.NewPlanResponse(plan)})
}

// Update handles PUT /api/planos/:id.
func (h *PlansHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.PlanUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	plan, err := h.plans.UpdatePlan(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Plano atualizado com sucesso", "plano": dto.NewPlanResponse(plan)})
}

// Delete handles DELETE /api/planos/:id.
func (h *PlansHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.plans.DeletePlan(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Plano excluído com sucesso"})
}
