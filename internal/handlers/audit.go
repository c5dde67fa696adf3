package handlers

import (
	"github.com/gin-gonic/gin"

	"tracer-web/internal/logger"
	"tracer-web/internal/middleware"
)

// auditLog records a successful mutation together with the acting user.
func auditLog(c *gin.Context, entity string, entityID uint, action, details string) {
	log := logger.Get()
	ev := log.Info().
		Bool("audit", true).
		Str("entity", entity).
		Uint("entity_id", entityID).
		Str("action", action)
	if rid := c.GetString(middleware.CtxRequestID); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	if s := middleware.Session(c); s != nil {
		if u := s.User(); u != nil {
			ev = ev.Uint("user_id", u.ID).Str("role", string(s.Role()))
		}
	}
	ev.Msg(details)
}
