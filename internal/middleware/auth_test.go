package middleware

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracer-web/internal/api"
	"tracer-web/internal/models"
	"tracer-web/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`{{.title}}: {{.message}} -> {{.backLink}}`)))
	store := cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))
	r.Use(sessions.Sessions("test_session", store))
	return r
}

func withClient(r *gin.Engine) {
	r.Use(InjectSession(api.New(api.Options{BaseURL: "http://backend.invalid"})))
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login seeds a session for u and returns the resulting cookies.
func login(t *testing.T, r *gin.Engine, u models.User) []*http.Cookie {
	t.Helper()
	r.GET("/seed", func(c *gin.Context) {
		require.NoError(t, Session(c).Login("tok-1", u))
		c.Status(http.StatusNoContent)
	})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/seed", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func get(path string, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

func TestRequireAuthNeverRendersWhileInitializing(t *testing.T) {
	r := newEngine()
	r.Use(func(c *gin.Context) {
		// restored later, never within this request
		c.Set(ctxSession, session.New(sessions.Default(c)))
		c.Next()
	})

	rendered := false
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		rendered = true
		c.String(http.StatusOK, "secret")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.False(t, rendered)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestRequireAuthWithoutSessionShowsPlaceholder(t *testing.T) {
	r := newEngine()
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	r := newEngine()
	withClient(r)
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthLetsRestoredSessionThrough(t *testing.T) {
	r := newEngine()
	withClient(r)
	var token string
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		token = Conn(c).Token()
		c.String(http.StatusOK, "secret")
	})
	cookies := login(t, r, models.User{ID: 3, Name: "Sari", Roles: []models.RoleRef{{Name: "pegawai"}}})

	w := serve(r, get("/private", cookies))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
	assert.Equal(t, "tok-1", token)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	r := newEngine()
	withClient(r)
	r.GET("/admin", RequireAuth(), RequireRole(models.RoleSuperadmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})
	cookies := login(t, r, models.User{ID: 4, Name: "Budi", Roles: []models.RoleRef{{Name: "teknisi"}}})

	w := serve(r, get("/admin", cookies))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Akses Ditolak")
	assert.Contains(t, w.Body.String(), "/teknisidashboard")
	assert.NotContains(t, w.Body.String(), "admin area")
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	r := newEngine()
	withClient(r)
	r.GET("/admin", RequireAuth(), RequireRole(models.RoleSuperadmin, models.RoleTeknisi), func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})
	cookies := login(t, r, models.User{ID: 4, Name: "Budi", Roles: []models.RoleRef{{Name: "teknisi"}}})

	w := serve(r, get("/admin", cookies))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	id := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}
