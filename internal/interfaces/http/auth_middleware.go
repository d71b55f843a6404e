package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// HeaderRefreshedToken lleva el token reemitido por la ventana deslizante.
const HeaderRefreshedToken = "X-Refreshed-Token"

// AuthConfig parámetros de la sesión firmada.
type AuthConfig struct {
	Secret        string
	Issuer        string
	ExpMinutes    int
	RefreshWindow time.Duration
	CookieName    string
	CookieSecure  bool
}

// AuthMiddleware valida el token (Bearer o cookie de sesión) y carga UserID, Email y Role en c.Locals.
// Si quedan menos de RefreshWindow para el vencimiento emite un token nuevo en cabecera y cookie.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := extractToken(c, cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		session, err := jwt.Parse(cfg.Secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "토큰이 유효하지 않거나 만료되었습니다"})
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalEmail, session.Email)
		c.Locals(LocalRole, session.Role)

		if cfg.RefreshWindow > 0 && jwt.NeedsRefresh(session, cfg.RefreshWindow) {
			fresh, err := jwt.Generate(cfg.Secret, session.UserID, session.Email, session.Role, cfg.Issuer, cfg.ExpMinutes)
			if err == nil {
				c.Set(HeaderRefreshedToken, fresh)
				setSessionCookie(c, cfg, fresh)
			}
		}
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieName string) (token, code, msg string) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", "INVALID_TOKEN", "형식: Bearer <token>"
		}
		if t := strings.TrimSpace(parts[1]); t != "" {
			return t, "", ""
		}
		return "", "MISSING_TOKEN", "토큰이 비어 있습니다"
	}
	if cookieName != "" {
		if t := c.Cookies(cookieName); t != "" {
			return t, "", ""
		}
	}
	return "", "MISSING_TOKEN", "로그인이 필요합니다"
}

// RequireRole permite el paso solo a los roles indicados. Usar después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "토큰에 역할 정보가 없습니다"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "권한이 없습니다"})
		}
		return c.Next()
	}
}

func setSessionCookie(c *fiber.Ctx, cfg AuthConfig, token string) {
	if cfg.CookieName == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(cfg.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx, cfg AuthConfig) {
	if cfg.CookieName == "" {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail email de la sesión.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole rol de la sesión.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
