package dto

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spec-kit/gym-service/internal/domain"
	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

var (
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	lettersPattern  = regexp.MustCompile(`^[\p{L}\s]+$`)
	userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	zipCodePattern  = regexp.MustCompile(`^\d{8}$`)
)

var brazilianStates = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// fieldError reports the first failing field, as {message, field}.
func fieldError(field, message string) error {
	return apperrors.NewValidationError(message, map[string]any{"field": field})
}

// validator accumulates the first failure; later checks become no-ops.
type validator struct {
	err error
}

func (v *validator) check(ok bool, field, message string) {
	if v.err == nil && !ok {
		v.err = fieldError(field, message)
	}
}

func (v *validator) required(value, field, message string) bool {
	ok := strings.TrimSpace(value) != ""
	v.check(ok, field, message)
	return ok
}

func (v *validator) maxLen(value string, max int, field, message string) {
	v.check(utf8.RuneCountInString(value) <= max, field, message)
}

func (v *validator) name(value, field, label string, max int) {
	if !v.required(value, field, label+" é obrigatório") {
		return
	}
	v.maxLen(value, max, field, label+" deve ter no máximo "+strconv.Itoa(max)+" caracteres")
	v.check(lettersPattern.MatchString(value), field, label+" deve conter apenas letras e espaços")
}

func (v *validator) email(value, field string) {
	if !v.required(value, field, "Email é obrigatório") {
		return
	}
	v.maxLen(value, 150, field, "Email deve ter no máximo 150 caracteres")
	_, err := mail.ParseAddress(value)
	v.check(err == nil, field, "Email inválido")
}

func (v *validator) phone(value, field string) {
	if !v.required(value, field, "Telefone é obrigatório") {
		return
	}
	v.maxLen(value, 11, field, "Telefone deve ter no máximo 11 dígitos")
	v.check(digitsPattern.MatchString(value), field, "Telefone deve conter apenas números")
}

func (v *validator) cpf(value *string, field string) {
	if value == nil || *value == "" {
		return
	}
	v.maxLen(*value, 11, field, "CPF deve ter no máximo 11 dígitos")
	v.check(digitsPattern.MatchString(*value), field, "CPF deve conter apenas números")
}

func (v *validator) birthDate(value, field string) {
	if !v.required(value, field, "Data de nascimento é obrigatória") {
		return
	}
	parsed, err := time.Parse(domain.DateLayout, value)
	v.check(err == nil, field, "Data de nascimento deve estar no formato AAAA-MM-DD")
	if err == nil {
		v.check(!parsed.After(time.Now()), field, "Data de nascimento não pode ser no futuro")
	}
}

func (v *validator) optionalDate(value, field, label string) {
	if value == "" {
		return
	}
	_, err := time.Parse(domain.DateLayout, value)
	v.check(err == nil, field, label+" deve estar no formato AAAA-MM-DD")
}
