package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"tracer-web/internal/middleware"
	"tracer-web/internal/models"
)

// Flash is a one-shot alert carried across a redirect.
type Flash struct {
	Type    string
	Message string
}

const (
	flashSuccess = "success"
	flashError   = "error"
)

// render wraps c.HTML and passes the signed-in user and pending flashes to
// every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if s := middleware.Session(c); s != nil && s.Authenticated() {
		u := s.User()
		data["CurrentUser"] = *u
		data["CurrentUserRole"] = s.Role()
		data["Landing"] = s.Landing()
		data["IsSuperadmin"] = s.Role() == models.RoleSuperadmin
		data["IsTeknisi"] = s.Role() == models.RoleTeknisi
	}
	if _, ok := data["flashes"]; !ok {
		data["flashes"] = takeFlashes(c)
	}

	c.HTML(status, tmpl, data)
}

func addFlash(c *gin.Context, typ, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(typ + "|" + msg)
	_ = sess.Save()
}

func takeFlashes(c *gin.Context) []Flash {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save()

	out := make([]Flash, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}
		typ, msg, found := strings.Cut(s, "|")
		if !found {
			typ, msg = flashSuccess, s
		}
		out = append(out, Flash{Type: typ, Message: msg})
	}
	return out
}

// renderError shows the shared error page.
func renderError(c *gin.Context, status int, title, message, backLink string) {
	render(c, status, "error.html", gin.H{
		"title":     title,
		"message":   message,
		"backLink":  backLink,
		"backLabel": "Kembali ke Dasbor",
		"retryLink": retryLink(c),
	})
}

func retryLink(c *gin.Context) string {
	if c.Request.Method != http.MethodGet {
		return ""
	}
	return c.Request.URL.RequestURI()
}
