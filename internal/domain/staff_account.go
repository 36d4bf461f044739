package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role enumerates the staff job functions that govern authorization.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleFrontDesk  Role = "FRONT_DESK"
)

var (
	ErrRoleRequired = errors.New("role is required")
	ErrInvalidRole  = errors.New("invalid role")
)

// Roles lists every known role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleInstructor, RoleFrontDesk}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleInstructor, RoleFrontDesk:
		return true
	}
	return false
}

// ParseRole converts raw input into a Role. Empty input is rejected rather than
// defaulted so that no account silently receives a role.
func ParseRole(raw string) (Role, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", ErrRoleRequired
	}
	role := Role(trimmed)
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return role, nil
}

// StaffAccount models a gym employee able to log in.
type StaffAccount struct {
	ID             int64
	UserName       string
	PasswordHash   string
	Role           Role
	FailedAttempts int
	Locked         bool

	FullName  string
	Email     string
	Phone     string
	BirthDate string
	CPF       *string
	JobTitle  string
	HiredOn   string
	CREF      *string
	Salary    float64
	CreatedAt time.Time
}

// StaffAccountParams carries the inputs required to build a StaffAccount.
type StaffAccountParams struct {
	UserName     string
	PasswordHash string
	Role         Role
	FullName     string
	Email        string
	Phone        string
	BirthDate    string
	CPF          *string
	JobTitle     string
	HiredOn      string
	CREF         *string
	Salary       float64
}

// NewStaffAccount validates params and returns an unlocked account with a
// zeroed attempt counter. The ID is assigned by the store on insertion.
func NewStaffAccount(p StaffAccountParams) (*StaffAccount, error) {
	if p.Role == "" {
		return nil, ErrRoleRequired
	}
	if !p.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, p.Role)
	}
	if strings.TrimSpace(p.UserName) == "" {
		return nil, errors.New("user name is required")
	}
	if p.PasswordHash == "" {
		return nil, errors.New("password hash is required")
	}

	hiredOn := p.HiredOn
	if hiredOn == "" {
		hiredOn = time.Now().Format(DateLayout)
	}

	return &StaffAccount{
		UserName:     p.UserName,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone,
		BirthDate:    p.BirthDate,
		CPF:          p.CPF,
		JobTitle:     p.JobTitle,
		HiredOn:      hiredOn,
		CREF:         p.CREF,
		Salary:       p.Salary,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
