package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger registra cada petición con método, ruta, estado, latencia, usuario y request id.
// Deja en Locals un sublogger con el request id para los handlers.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals("requestid").(string)
		reqLog := log.Named("http")
		if reqID != "" {
			reqLog = logger.From(reqLog.With().Str("request_id", reqID).Logger())
		}
		c.Locals(localLogger, reqLog)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber fije el estado antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

// requestLog logger de la petición; si no hay middleware descarta.
func requestLog(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
