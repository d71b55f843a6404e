package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeValidation   = "VALIDATION"
	CodeInvalidBody  = "INVALID_BODY"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DUPLICATE"
	CodeConflict     = "CONFLICT"
	CodeInconsistent = "INCONSISTENT"
	CodeInternal     = "INTERNAL"
)

// fail traduce un error de la capa de aplicación al sobre {"code","error"}.
// Los errores no reconocidos son 500 y se registran una sola vez aquí.
func fail(c *fiber.Ctx, err error) error {
	var ve *dto.ValidationError
	switch {
	case errors.As(err, &ve):
		return respond(c, fiber.StatusBadRequest, CodeValidation, ve.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, CodeUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다")
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, CodeForbidden, "권한이 없습니다")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, CodeNotFound, "데이터를 찾을 수 없습니다")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, CodeDuplicate, "이미 등록된 이메일입니다")
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, CodeDuplicate, "이미 존재하는 데이터입니다")
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, CodeConflict, "현재 상태와 충돌합니다")
	case errors.Is(err, domain.ErrInconsistent):
		return respond(c, fiber.StatusUnprocessableEntity, CodeInconsistent, "상담과 문서의 회사 정보가 일치하지 않습니다")
	}
	requestLog(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return respond(c, fiber.StatusInternalServerError, CodeInternal, err.Error())
}

func badBody(c *fiber.Ctx) error {
	return respond(c, fiber.StatusBadRequest, CodeInvalidBody, "요청 본문이 올바르지 않습니다")
}

func badQuery(c *fiber.Ctx, field string) error {
	return respond(c, fiber.StatusBadRequest, CodeValidation, "입력 값이 올바르지 않습니다: "+field)
}

func respond(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
