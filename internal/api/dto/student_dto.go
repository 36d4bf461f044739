package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/service"
)

// AddressPayload is the address block of a student.
type AddressPayload struct {
	Street     string  `json:"rua"`
	Number     string  `json:"numero"`
	Complement *string `json:"complemento"`
	District   *string `json:"bairro"`
	City       string  `json:"cidade"`
	State      string  `json:"estado"`
	ZipCode    string  `json:"cep"`
}

func (a AddressPayload) validate(v *validator) {
	if v.required(a.Street, "endereco.rua", "Rua é obrigatória") {
		v.maxLen(a.Street, 250, "endereco.rua", "Rua deve ter no máximo 250 caracteres")
	}
	if v.required(a.Number, "endereco.numero", "Número é obrigatório") {
		v.maxLen(a.Number, 10, "endereco.numero", "Número deve ter no máximo 10 caracteres")
		v.check(digitsPattern.MatchString(a.Number), "endereco.numero", "Número deve conter apenas números")
	}
	if a.Complement != nil {
		v.maxLen(*a.Complement, 250, "endereco.complemento", "Complemento deve ter no máximo 250 caracteres")
	}
	if a.District != nil {
		v.maxLen(*a.District, 100, "endereco.bairro", "Bairro deve ter no máximo 100 caracteres")
	}
	if v.required(a.City, "endereco.cidade", "Cidade é obrigatória") {
		v.maxLen(a.City, 80, "endereco.cidade", "Cidade deve ter no máximo 80 caracteres")
		v.check(lettersPattern.MatchString(a.City), "endereco.cidade", "Cidade deve conter apenas letras e espaços")
	}
	if v.required(a.State, "endereco.estado", "Estado é obrigatório") {
		_, ok := brazilianStates[a.State]
		v.check(ok, "endereco.estado", "Estado inválido")
	}
	if v.required(a.ZipCode, "endereco.cep", "CEP é obrigatório") {
		v.check(zipCodePattern.MatchString(a.ZipCode), "endereco.cep", "CEP deve ter 8 dígitos numéricos")
	}
}

func (a AddressPayload) toDomain() domain.Address {
	return domain.Address{
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		Complement: a.Complement,
		District:   a.District,
		City:       strings.TrimSpace(a.City),
		State:      a.State,
		ZipCode:    a.ZipCode,
	}
}

// StudentCreateRequest payload.
type StudentCreateRequest struct {
	FullName     string         `json:"nomeCompleto"`
	Email        string         `json:"email"`
	Phone        string         `json:"telefone"`
	BirthDate    string         `json:"dataNascimento"`
	CPF          *string        `json:"cpf"`
	PlanID       *int64         `json:"planoId"`
	StartDate    string         `json:"dataInicio"`
	Address      AddressPayload `json:"endereco"`
	MedicalNotes *string        `json:"informacoesMedicas"`
}

// Validate applies field rules.
func (r StudentCreateRequest) Validate() error {
	var v validator
	v.name(r.FullName, "nomeCompleto", "Nome completo", 250)
	v.email(r.Email, "email")
	v.phone(r.Phone, "telefone")
	v.birthDate(r.BirthDate, "dataNascimento")
	v.cpf(r.CPF, "cpf")
	v.optionalDate(r.StartDate, "dataInicio", "Data de início")
	r.Address.validate(&v)
	return v.err
}

// Input converts the payload for the student service.
func (r StudentCreateRequest) Input() service.StudentInput {
	return service.StudentInput{
		FullName:     strings.TrimSpace(r.FullName),
		Email:        strings.TrimSpace(r.Email),
		Phone:        r.Phone,
		BirthDate:    r.BirthDate,
		CPF:          r.CPF,
		PlanID:       r.PlanID,
		StartDate:    r.StartDate,
		Address:      r.Address.toDomain(),
		MedicalNotes: r.MedicalNotes,
	}
}

// AddressPatch updates individual address fields.
type AddressPatch struct {
	Street     *string `json:"rua"`
	Number     *string `json:"numero"`
	Complement *string `json:"complemento"`
	District   *string `json:"bairro"`
	City       *string `json:"cidade"`
	State      *string `json:"estado"`
	ZipCode    *string `json:"cep"`
}

// StudentUpdateRequest payload; absent fields are left unchanged.
type StudentUpdateRequest struct {
	FullName     *string       `json:"nomeCompleto"`
	Email        *string       `json:"email"`
	Phone        *string       `json:"telefone"`
	BirthDate    *string       `json:"dataNascimento"`
	CPF          *string       `json:"cpf"`
	PlanID       *int64        `json:"planoId"`
	StartDate    *string       `json:"dataInicio"`
	Address      *AddressPatch `json:"endereco"`
	MedicalNotes *string       `json:"informacoesMedicas"`
}

// Validate applies field rules to the fields present.
func (r StudentUpdateRequest) Validate() error {
	var v validator
	if r.FullName != nil {
		v.name(*r.FullName, "nomeCompleto", "Nome completo", 250)
	}
	if r.Email != nil {
		v.email(*r.Email, "email")
	}
	if r.Phone != nil {
		v.phone(*r.Phone, "telefone")
	}
	if r.BirthDate != nil {
		v.birthDate(*r.BirthDate, "dataNascimento")
	}
	v.cpf(r.CPF, "cpf")
	if r.StartDate != nil {
		v.optionalDate(*r.StartDate, "dataInicio", "Data de início")
	}
	if a := r.Address; a != nil {
		if a.State != nil {
			_, ok := brazilianStates[*a.State]
			v.check(ok, "endereco.estado", "Estado inválido")
		}
		if a.ZipCode != nil {
			v.check(zipCodePattern.MatchString(*a.ZipCode), "endereco.cep", "CEP deve ter 8 dígitos numéricos")
		}
		if a.Number != nil {
			v.check(digitsPattern.MatchString(*a.Number), "endereco.numero", "Número deve conter apenas números")
		}
	}
	return v.err
}

// Input converts the payload for the student service.
func (r StudentUpdateRequest) Input() service.StudentUpdate {
	in := service.StudentUpdate{
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        r.Phone,
		BirthDate:    r.BirthDate,
		CPF:          r.CPF,
		PlanID:       r.PlanID,
		StartDate:    r.StartDate,
		MedicalNotes: r.MedicalNotes,
	}
	if a := r.Address; a != nil {
		in.Address = &service.AddressUpdate{
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			District:   a.District,
			City:       a.City,
			State:      a.State,
			ZipCode:    a.ZipCode,
		}
	}
	return in
}

// StudentSummary is the list view of a student.
type StudentSummary struct {
	ID        int64  `json:"id"`
	FullName  string `json:"nomeCompleto"`
	Email     string `json:"email"`
	Phone     string `json:"telefone"`
	PlanID    *int64 `json:"planoId"`
	StartDate string `json:"dataInicio"`
}

// StudentResponse is the full view of a student.
type StudentResponse struct {
	ID           int64          `json:"id"`
	FullName     string         `json:"nomeCompleto"`
	Email        string         `json:"email"`
	Phone        string         `json:"telefone"`
	BirthDate    string         `json:"dataNascimento"`
	CPF          *string        `json:"cpf"`
	PlanID       *int64         `json:"planoId"`
	StartDate    string         `json:"dataInicio"`
	Address      AddressPayload `json:"endereco"`
	MedicalNotes *string        `json:"informacoesMedicas"`
	CreatedAt    time.Time      `json:"dataCadastro"`
}

// NewStudentSummary maps a domain student to its list view.
func NewStudentSummary(s *domain.Student) StudentSummary {
	return StudentSummary{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		PlanID:    s.PlanID,
		StartDate: s.StartDate,
	}
}

// NewStudentResponse maps a domain student to its full view.
func NewStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		BirthDate: s.BirthDate,
		CPF:       s.CPF,
		PlanID:    s.PlanID,
		StartDate: s.StartDate,
		Address: AddressPayload{
			Street:     s.Address.Street,
			Number:     s.Address.Number,
			Complement: s.Address.Complement,
			District:   s.Address.District,
			City:       s.Address.City,
			State:      s.Address.State,
			ZipCode:    s.Address.ZipCode,
		},
		MedicalNotes: s.MedicalNotes,
		CreatedAt:    s.CreatedAt,
	}
}
