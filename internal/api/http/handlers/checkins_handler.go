package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/auth"
	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/service"
)

// CheckInsHandler exposes check-in endpoints.
type CheckInsHandler struct {
	checkIns *service.CheckInService
}

// NewCheckInsHandler constructs handler.
func NewCheckInsHandler(checkIns *service.CheckInService) *CheckInsHandler {
	return &CheckInsHandler{checkIns: checkIns}
}

// Create handles POST /api/checkins.
func (h *CheckInsHandler) Create(c *fiber.Ctx) error {
	var req dto.CheckInCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	at, err := req.Validate()
	if err != nil {
		return err
	}
	actor, _ := auth.PrincipalFromContext(c)
	checkIn, err := h.checkIns.RegisterCheckIn(c.UserContext(), actor, *req.StudentID, at, req.Note)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Checkin registrado com sucesso",
		"checkin": dto.NewCheckInResponse(checkIn),
	})
}

// List handles GET /api/checkins.
func (h *CheckInsHandler) List(c *fiber.Ctx) error {
	list, err := h.checkIns.ListCheckIns(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Checkins listados com sucesso", "checkins": checkInResponses(list)})
}

// Get handles GET /api/checkins/:id.
func (h *CheckInsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	checkIn, err := h.checkIns.GetCheckIn(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Checkin encontrado com sucesso", "checkin": dto.NewCheckInResponse(checkIn)})
}

// ListByStudent handles GET /api/checkins/aluno/:alunoId.
func (h *CheckInsHandler) ListByStudent(c *fiber.Ctx) error {
	studentID, err := parseIDParam(c, "alunoId")
	if err != nil {
		return err
	}
	list, err := h.checkIns.ListStudentCheckIns(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Checkins do aluno listados com sucesso", "checkins": checkInResponses(list)})
}

// Delete handles DELETE /api/checkins/:id.
func (h *CheckInsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.checkIns.DeleteCheckIn(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Checkin excluído com sucesso", "id": id})
}

func checkInResponses(list []domain.CheckIn) []dto.CheckInResponse {
	resp := make([]dto.CheckInResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewCheckInResponse(&list[i]))
	}
	return resp
}
