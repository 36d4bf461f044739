package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gym-service/internal/api/dto"
	"github.com/spec-kit/gym-service/internal/service"
)

// StudentsHandler exposes student endpoints.
type StudentsHandler struct {
	students *service.StudentService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(students *service.StudentService) *StudentsHandler {
	return &StudentsHandler{students: students}
}

// Create handles POST /api/alunos.
func (h *StudentsHandler) Create(c *fiber.Ctx) error {
	var req dto.StudentCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	student, err := h.students.CreateStudent(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":      "Aluno cadastrado com sucesso",
		"id":           student.ID,
		"nomeCompleto": student.FullName,
		"email":        student.Email,
	})
}

// List handles GET /api/alunos.
func (h *StudentsHandler) List(c *fiber.Ctx) error {
	list, err := h.students.ListStudents(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.StudentSummary, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewStudentSummary(&list[i]))
	}
	return c.JSON(resp)
}

// Get handles GET /api/alunos/:id.
func (h *StudentsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	student, err := h.students.GetStudent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStudentResponse(student))
}

// Update handles PUT /api/alunos/:id.
func (h *StudentsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.StudentUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	student, err := h.students.UpdateStudent(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Aluno atualizado com sucesso",
		"aluno":   dto.NewStudentResponse(student),
	})
}

// Delete handles DELETE /api/alunos/:id.
func (h *StudentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.students.DeleteStudent(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Aluno deletado com sucesso"})
}
