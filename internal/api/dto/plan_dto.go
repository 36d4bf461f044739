package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/service"
)

// PlanCreateRequest payload.
type PlanCreateRequest struct {
	Name         string   `json:"nome"`
	Modalities   []string `json:"modalidades"`
	Price        *float64 `json:"valor"`
	DurationDays *int     `json:"duracao"`
	Benefits     []string `json:"beneficios"`
	Active       *bool    `json:"ativo"`
}

// Validate applies field rules.
func (r PlanCreateRequest) Validate() error {
	var v validator
	if v.required(r.Name, "nome", "O nome do plano é obrigatório") {
		n := len([]rune(strings.TrimSpace(r.Name)))
		v.check(n >= 3 && n <= 100, "nome", "O nome deve ter entre 3 e 100 caracteres")
	}
	v.check(len(r.Modalities) > 0, "modalidades", "É necessário especificar pelo menos uma modalidade")
	v.check(r.Price != nil, "valor", "O valor do plano é obrigatório")
	if r.Price != nil {
		v.check(*r.Price >= 0, "valor", "O valor deve ser um número positivo")
	}
	v.check(r.DurationDays != nil, "duracao", "A duração do plano é obrigatória")
	if r.DurationDays != nil {
		v.check(*r.DurationDays >= 1, "duracao", "A duração deve ser um número inteiro positivo")
	}
	v.check(len(r.Benefits) > 0, "beneficios", "É necessário especificar pelo menos um benefício")
	return v.err
}

// Input converts the payload for the plan service. Call only after Validate.
func (r PlanCreateRequest) Input() service.PlanInput {
	return service.PlanInput{
		Name:         strings.TrimSpace(r.Name),
		Modalities:   r.Modalities,
		Price:        *r.Price,
		DurationDays: *r.DurationDays,
		Benefits:     r.Benefits,
		Active:       r.Active,
	}
}

// PlanUpdateRequest payload; absent fields are left unchanged.
type PlanUpdateRequest struct {
	Name         *string  `json:"nome"`
	Modalities   []string `json:"modalidades"`
	Price        *float64 `json:"valor"`
	DurationDays *int     `json:"duracao"`
	Benefits     []string `json:"beneficios"`
	Active       *bool    `json:"ativo"`
}

// Validate applies field rules to the fields present.
func (r PlanUpdateRequest) Validate() error {
	var v validator
	if r.Name != nil {
		n := len([]rune(strings.TrimSpace(*r.Name)))
		v.check(n >= 3 && n <= 100, "nome", "O nome deve ter entre 3 e 100 caracteres")
	}
	if r.Modalities != nil {
		v.check(len(r.Modalities) > 0, "modalidades", "É necessário especificar pelo menos uma modalidade")
	}
	if r.Price != nil {
		v.check(*r.Price >= 0, "valor", "O valor deve ser um número positivo")
	}
	if r.DurationDays != nil {
		v.check(*r.DurationDays >= 1, "duracao", "A duração deve ser um número inteiro positivo")
	}
	if r.Benefits != nil {
		v.check(len(r.Benefits) > 0, "beneficios", "É necessário especificar pelo menos um benefício")
	}
	return v.err
}

// Input converts the payload for the plan service.
func (r PlanUpdateRequest) Input() service.PlanUpdate {
	return service.PlanUpdate{
		Name:         r.Name,
		Modalities:   r.Modalities,
		Price:        r.Price,
		DurationDays: r.DurationDays,
		Benefits:     r.Benefits,
		Active:       r.Active,
	}
}

// PlanResponse is the public view of a plan.
type PlanResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nome"`
	Modalities   []string  `json:"modalidades"`
	Price        float64   `json:"valor"`
	DurationDays int       `json:"duracao"`
	Benefits     []string  `json:"beneficios"`
	Active       bool      `json:"ativo"`
	CreatedAt    time.Time `json:"dataCriacao"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Modalities:   p.Modalities,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Benefits:     p.Benefits,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
