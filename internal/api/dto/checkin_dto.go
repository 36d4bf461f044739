package dto

import (
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
)

// CheckInCreateRequest payload. The registering staff member comes from the token.
type CheckInCreateRequest struct {
	StudentID *int64  `json:"alunoId"`
	At        *string `json:"dataHora"`
	Note      *string `json:"observacao"`
}

// Validate applies field rules and returns the parsed timestamp, if any.
func (r CheckInCreateRequest) Validate() (*time.Time, error) {
	var v validator
	v.check(r.StudentID != nil, "alunoId", "O ID do aluno é obrigatório")
	if r.Note != nil {
		v.maxLen(*r.Note, 500, "observacao", "A observação deve ter no máximo 500 caracteres")
	}
	var at *time.Time
	if r.At != nil && *r.At != "" {
		parsed, err := time.Parse(time.RFC3339, *r.At)
		v.check(err == nil, "dataHora", "A data e hora devem estar no formato ISO8601")
		if err == nil {
			at = &parsed
		}
	}
	if v.err != nil {
		return nil, v.err
	}
	return at, nil
}

// CheckInResponse is the public view of a check-in.
type CheckInResponse struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"alunoId"`
	At           time.Time `json:"dataHora"`
	Note         *string   `json:"observacao"`
	RegisteredBy *int64    `json:"registradoPor"`
}

// NewCheckInResponse maps a domain check-in.
func NewCheckInResponse(c *domain.CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:           c.ID,
		StudentID:    c.StudentID,
		At:           c.At,
		Note:         c.Note,
		RegisteredBy: c.RegisteredBy,
	}
}
