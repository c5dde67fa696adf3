package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/models"
)

const placeholderHTML = `<!doctype html><html lang="id"><head><meta charset="utf-8">` +
	`<meta http-equiv="refresh" content="1"><title>Memuat...</title></head>` +
	`<body><p>Memuat...</p></body></html>`

// RequireAuth lets a request through only once the session is restored and
// holds a user. While the session is still initializing nothing protected is
// rendered.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := Session(c)
		if s == nil || s.Initializing() {
			c.Header("Retry-After", "1")
			c.Data(http.StatusServiceUnavailable, "text/html; charset=utf-8", []byte(placeholderHTML))
			c.Abort()
			return
		}
		if !s.Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole hides pages from other roles. The backend still authorizes
// every call.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	roleSet := map[models.Role]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		s := Session(c)
		if s == nil || !s.Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if _, ok := roleSet[s.Role()]; !ok {
			data := gin.H{
				"title":        "Akses Ditolak",
				"message":      "Anda tidak memiliki izin untuk membuka halaman ini.",
				"backLink":     s.Landing(),
				"backLabel":    "Kembali ke Dasbor",
				"Landing":      s.Landing(),
				"IsSuperadmin": s.Role() == models.RoleSuperadmin,
				"IsTeknisi":    s.Role() == models.RoleTeknisi,
			}
			if u := s.User(); u != nil {
				data[CtxCurrentUser] = *u
			}
			c.HTML(http.StatusForbidden, "error.html", data)
			c.Abort()
			return
		}
		c.Next()
	}
}
