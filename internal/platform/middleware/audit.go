package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cvdss/cvdss/internal/platform/auth"
)

// Audit logs every access to a patient's record: the physician routes under
// /api/v1/patients and the patient's own /api/v1/me routes. Entries carry who,
// which patient, what action and the outcome, never the record contents.
func Audit(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if !isAuditableRoute(route) {
				return next(c)
			}

			err := next(c)

			ctx := c.Request().Context()
			userID := auth.UserIDFromContext(ctx)
			patientID := c.Param("id")
			if patientID == "" && strings.HasPrefix(route, "/api/v1/me") {
				patientID = userID
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			rid, _ := c.Get("request_id").(string)

			logger.Info().
				Str("type", "record_access").
				Str("request_id", rid).
				Str("user_id", userID).
				Str("role", auth.RoleFromContext(ctx)).
				Str("patient_id", patientID).
				Str("action", auditAction(c.Request().Method, route)).
				Str("route", route).
				Str("remote_ip", c.RealIP()).
				Int("status", status).
				Msg("record_access")

			return err
		}
	}
}

func isAuditableRoute(route string) bool {
	return strings.HasPrefix(route, "/api/v1/patients") || strings.HasPrefix(route, "/api/v1/me")
}

func auditAction(method, route string) string {
	switch {
	case strings.HasSuffix(route, "/assessment"):
		return "assess"
	case method == "GET" && route == "/api/v1/patients":
		return "search"
	default:
		return "read"
	}
}
