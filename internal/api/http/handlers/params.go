package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/gym-service/pkg/util/errorutil"
)

func parseIDParam(c *fiber.Ctx, key string) (int64, error) {
	raw := c.Params(key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Erro de validação no parâmetro ID", map[string]any{"field": key})
	}
	return id, nil
}

func parseBoolQuery(c *fiber.Ctx, key string) (*bool, error) {
	val := c.Query(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil, apperrors.NewValidationError("Parâmetro inválido", map[string]any{"field": key})
	}
	return &parsed, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Corpo da requisição inválido", nil)
	}
	return nil
}
