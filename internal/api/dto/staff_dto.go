package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/service"
)

// StaffCreateRequest payload.
type StaffCreateRequest struct {
	FullName  string   `json:"nomeCompleto"`
	Email     string   `json:"email"`
	UserName  string   `json:"userName"`
	Senha     string   `json:"senha"`
	Phone     string   `json:"telefone"`
	BirthDate string   `json:"dataNascimento"`
	CPF       *string  `json:"cpf"`
	JobTitle  string   `json:"cargo"`
	Role      string   `json:"perfil"`
	HiredOn   string   `json:"dataAdmissao"`
	CREF      *string  `json:"cref"`
	Salary    *float64 `json:"salario"`
}

// Validate applies field rules. Role and password are checked by the service.
func (r StaffCreateRequest) Validate() error {
	var v validator
	v.name(r.FullName, "nomeCompleto", "Nome completo", 250)
	v.email(r.Email, "email")
	if v.required(r.UserName, "userName", "UserName é obrigatório") {
		v.maxLen(r.UserName, 100, "userName", "UserName deve ter no máximo 100 caracteres")
		v.check(userNamePattern.MatchString(r.UserName), "userName",
			"UserName deve conter apenas letras, números e underscore")
	}
	v.check(r.Senha != "", "senha", "Senha é obrigatória")
	v.phone(r.Phone, "telefone")
	v.birthDate(r.BirthDate, "dataNascimento")
	v.cpf(r.CPF, "cpf")
	v.name(r.JobTitle, "cargo", "Cargo", 100)
	v.optionalDate(r.HiredOn, "dataAdmissao", "Data de admissão")
	v.check(r.Salary != nil, "salario", "Salário é obrigatório")
	if r.Salary != nil {
		v.check(*r.Salary >= 0, "salario", "Salário deve ser um número positivo")
	}
	return v.err
}

// Input converts the payload for the staff service.
func (r StaffCreateRequest) Input() service.CreateStaffInput {
	in := service.CreateStaffInput{
		FullName:  strings.TrimSpace(r.FullName),
		Email:     strings.TrimSpace(r.Email),
		UserName:  strings.TrimSpace(r.UserName),
		Password:  r.Senha,
		Phone:     r.Phone,
		BirthDate: r.BirthDate,
		CPF:       r.CPF,
		JobTitle:  strings.TrimSpace(r.JobTitle),
		Role:      r.Role,
		HiredOn:   r.HiredOn,
		CREF:      r.CREF,
	}
	if r.Salary != nil {
		in.Salary = *r.Salary
	}
	return in
}

// StaffUpdateRequest payload; absent fields are left unchanged.
type StaffUpdateRequest struct {
	FullName  *string  `json:"nomeCompleto"`
	Email     *string  `json:"email"`
	Senha     *string  `json:"senha"`
	Phone     *string  `json:"telefone"`
	BirthDate *string  `json:"dataNascimento"`
	CPF       *string  `json:"cpf"`
	JobTitle  *string  `json:"cargo"`
	Role      *string  `json:"perfil"`
	HiredOn   *string  `json:"dataAdmissao"`
	CREF      *string  `json:"cref"`
	Salary    *float64 `json:"salario"`
}

// Validate applies field rules to the fields present.
func (r StaffUpdateRequest) Validate() error {
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
	if r.JobTitle != nil {
		v.name(*r.JobTitle, "cargo", "Cargo", 100)
	}
	if r.HiredOn != nil {
		v.optionalDate(*r.HiredOn, "dataAdmissao", "Data de admissão")
	}
	if r.Salary != nil {
		v.check(*r.Salary >= 0, "salario", "Salário deve ser um número positivo")
	}
	return v.err
}

// Input converts the payload for the staff service.
func (r StaffUpdateRequest) Input() service.UpdateStaffInput {
	return service.UpdateStaffInput{
		FullName:  r.FullName,
		Email:     r.Email,
		Password:  r.Senha,
		Phone:     r.Phone,
		BirthDate: r.BirthDate,
		CPF:       r.CPF,
		JobTitle:  r.JobTitle,
		Role:      r.Role,
		HiredOn:   r.HiredOn,
		CREF:      r.CREF,
		Salary:    r.Salary,
	}
}

// StaffResponse is the public view of a staff account. The password hash is never exposed.
type StaffResponse struct {
	ID             int64       `json:"id"`
	FullName       string      `json:"nomeCompleto"`
	Email          string      `json:"email"`
	UserName       string      `json:"userName"`
	Phone          string      `json:"telefone"`
	BirthDate      string      `json:"dataNascimento"`
	CPF            *string     `json:"cpf"`
	JobTitle       string      `json:"cargo"`
	Role           domain.Role `json:"perfil"`
	HiredOn        string      `json:"dataAdmissao"`
	CREF           *string     `json:"cref"`
	Salary         float64     `json:"salario"`
	FailedAttempts int         `json:"tentativasLogin"`
	Locked         bool        `json:"bloqueado"`
	CreatedAt      time.Time   `json:"dataCadastro"`
}

// NewStaffResponse maps a domain account.
func NewStaffResponse(account *domain.StaffAccount) StaffResponse {
	return StaffResponse{
		ID:             account.ID,
		FullName:       account.FullName,
		Email:          account.Email,
		UserName:       account.UserName,
		Phone:          account.Phone,
		BirthDate:      account.BirthDate,
		CPF:            account.CPF,
		JobTitle:       account.JobTitle,
		Role:           account.Role,
		HiredOn:        account.HiredOn,
		CREF:           account.CREF,
		Salary:         account.Salary,
		FailedAttempts: account.FailedAttempts,
		Locked:         account.Locked,
		CreatedAt:      account.CreatedAt,
	}
}
