package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tracer-web/internal/api"
	"tracer-web/internal/config"
	"tracer-web/internal/handlers"
	"tracer-web/internal/middleware"
	"tracer-web/internal/models"
	"tracer-web/web"
)

// SessionCookie is the name of the cookie holding the browser session.
const SessionCookie = "tracer_session"

func NewRouter(cfg *config.Config, client *api.Client, log zerolog.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	tmpl, err := web.Templates(handlers.FuncMap(cfg.Backend.ImageBaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	authKey, encKey, err := cfg.SessionKeys()
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(authKey, encKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		Secure:   cfg.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(SessionCookie, store))

	// HEALTH
	r.GET("/health", handlers.Health)
	r.GET("/health/ready", handlers.Ready(client))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.InjectSession(client))

	r.GET("/", handlers.IndexPage)

	// AUTH
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	superadmin := middleware.RequireRole(models.RoleSuperadmin)
	teknisi := middleware.RequireRole(models.RoleTeknisi)

	// DASBOR
	auth.GET("/pegawaidashboard",
		middleware.RequireRole(models.RolePegawai, models.RoleUnknown),
		handlers.PegawaiDashboard,
	)
	auth.GET("/teknisidashboard", teknisi, handlers.TeknisiDashboard)
	auth.GET("/superadmindashboard", superadmin, handlers.SuperadminDashboard)

	// LAPORAN
	auth.GET("/reports", superadmin, handlers.ListReports)
	auth.GET("/create-report", handlers.ShowNewReport)
	auth.POST("/create-report", handlers.CreateReport)
	auth.GET("/report/:reportId", handlers.ShowReport)
	auth.POST("/report/:reportId/status", teknisi, handlers.UpdateReportStatus)
	auth.POST("/report/:reportId/issues",
		middleware.RequireRole(models.RolePegawai),
		handlers.CreateIssue,
	)
	auth.POST("/report/:reportId/issues/:issueId/responses",
		middleware.RequireRole(models.RoleTeknisi, models.RoleSuperadmin),
		handlers.RespondIssue,
	)

	// ASET
	auth.GET("/assets",
		middleware.RequireRole(models.RoleSuperadmin, models.RoleTeknisi),
		handlers.ListAssets,
	)
	auth.GET("/assets/new", superadmin, handlers.ShowNewAsset)
	auth.POST("/assets/new", superadmin, handlers.CreateAsset)
	auth.GET("/assets/edit/:id", superadmin, handlers.ShowEditAsset)
	auth.POST("/assets/edit/:id", superadmin, handlers.UpdateAsset)
	auth.GET("/assets/:id",
		middleware.RequireRole(models.RoleSuperadmin, models.RoleTeknisi),
		handlers.ShowAsset,
	)
	auth.GET("/assets/:id/delete", superadmin, handlers.ShowDeleteAsset)
	auth.POST("/assets/:id/delete", superadmin, handlers.DeleteAsset)

	// TIPE ASET
	auth.GET("/asset-types", superadmin, handlers.ListAssetTypes)
	auth.POST("/asset-types", superadmin, handlers.CreateAssetType)
	auth.POST("/asset-types/:id", superadmin, handlers.UpdateAssetType)
	auth.GET("/asset-types/:id/delete", superadmin, handlers.ShowDeleteAssetType)
	auth.POST("/asset-types/:id/delete", superadmin, handlers.DeleteAssetType)

	// PENGGUNA
	auth.GET("/users", superadmin, handlers.ListUsers)
	auth.GET("/users/new", superadmin, handlers.ShowNewUser)
	auth.POST("/users/new", superadmin, handlers.CreateUser)
	auth.GET("/users/edit/:id", superadmin, handlers.ShowEditUser)
	auth.POST("/users/edit/:id", superadmin, handlers.UpdateUser)
	auth.GET("/users/:id/delete", superadmin, handlers.ShowDeleteUser)
	auth.POST("/users/:id/delete", superadmin, handlers.DeleteUser)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{
			"title":     "Tidak Ditemukan",
			"message":   "Halaman yang Anda cari tidak ada.",
			"backLink":  "/",
			"backLabel": "Kembali ke Beranda",
		})
	})

	return r, nil
}
