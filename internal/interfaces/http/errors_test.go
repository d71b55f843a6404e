package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
)

func TestFail_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", dto.NewRequiredError("name"), http.StatusBadRequest, CodeValidation},
		{"entrada inválida envuelta", fmt.Errorf("parse: %w", domain.ErrInvalidInput), http.StatusBadRequest, CodeValidation},
		{"no autorizado", domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"prohibido", domain.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{"no encontrado", fmt.Errorf("company: %w", domain.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"usuario no encontrado", domain.ErrUserNotFound, http.StatusNotFound, CodeNotFound},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, CodeDuplicate},
		{"email existente", domain.ErrEmailAlreadyExists, http.StatusConflict, CodeDuplicate},
		{"conflicto", domain.ErrConflict, http.StatusConflict, CodeConflict},
		{"inconsistente", domain.ErrInconsistent, http.StatusUnprocessableEntity, CodeInconsistent},
		{"interno", errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return fail(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestFail_ValidacionIncluyeCampos(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return fail(c, dto.NewRequiredError("company_id", "content")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "필수 값이 없습니다: company_id, content", body.Message)
}

func TestQueryIDs_RepetidoYSeparadoPorComas(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return c.JSON(queryIDs(c, "companyIds")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?companyIds=a&companyIds=b,c&companyIds=", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var ids []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestInvalidIDs_PrimerParametroConIDNoUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if bad := invalidIDs(c, "userId", "companyIds"); bad != "" {
			return badQuery(c, bad)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	const uid = "4f1d2c3b-8a9e-4b7c-9d6e-5f4a3b2c1d0e"
	cases := []struct {
		target string
		want   int
	}{
		{"/", fiber.StatusNoContent},
		{"/?userId=", fiber.StatusNoContent},
		{"/?userId=" + uid + "&companyIds=" + uid + "," + uid, fiber.StatusNoContent},
		{"/?userId=u-1", fiber.StatusBadRequest},
		{"/?companyIds=" + uid + ",x", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.target, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, tc.target)
	}
}

func TestDateRange_FechaInvalida(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		from, _, bad := dateRange(c)
		if bad != "" {
			return badQuery(c, bad)
		}
		return c.JSON(fiber.Map{"from": dto.FormatDatePtr(from)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?startDate=2025-03-01&endDate=ayer", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/?startDate=2025-03-01", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2025-03-01", body["from"])
}
