package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"tracer-web/internal/api"
	"tracer-web/internal/logger"
	"tracer-web/internal/session"
)

const (
	ctxSession = "Session"
	ctxClient  = "APIClient"
	// CtxCurrentUser is read by the templates through handlers.render.
	CtxCurrentUser = "CurrentUser"
)

// InjectSession restores the browser session from its cookie and makes it,
// together with the backend client, available to later handlers.
func InjectSession(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session.New(sessions.Default(c))
		if err := s.Restore(); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("session restore failed")
		}

		c.Set(ctxSession, s)
		c.Set(ctxClient, client)
		if u := s.User(); u != nil {
			c.Set(CtxCurrentUser, *u)
		}

		c.Next()
	}
}

// Session returns the restored session, or nil outside InjectSession.
func Session(c *gin.Context) *session.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// Conn returns a backend connection carrying the session's current token.
// It is rebuilt on every call so login and logout take effect immediately.
func Conn(c *gin.Context) *api.Conn {
	v, _ := c.Get(ctxClient)
	client, _ := v.(*api.Client)
	if client == nil {
		panic("middleware: Conn called without InjectSession")
	}
	token := ""
	if s := Session(c); s != nil {
		token = s.Token()
	}
	return client.Conn(token)
}
