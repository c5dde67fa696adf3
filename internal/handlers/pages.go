package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"tracer-web/internal/api"
	"tracer-web/internal/middleware"
	"tracer-web/internal/models"
)

// now is replaced in tests.
var now = time.Now

func IndexPage(c *gin.Context) {
	if s := middleware.Session(c); s != nil && s.Authenticated() {
		c.Redirect(http.StatusFound, s.Landing())
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func PegawaiDashboard(c *gin.Context) {
	var q reportQuery
	_ = c.ShouldBindQuery(&q)

	reports, err := middleware.Conn(c).ListMyReports(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}

	render(c, http.StatusOK, "dashboard_pegawai.html", gin.H{
		"reports":       filterReports(reports, q, false),
		"total":         len(reports),
		"query":         q,
		"filtered":      q.active(),
		"statusOptions": models.ReportStatuses,
	})
}

func TeknisiDashboard(c *gin.Context) {
	var q reportQuery
	_ = c.ShouldBindQuery(&q)

	reports, err := middleware.Conn(c).ListReports(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}

	st := summarize(0, 0, reports, now())
	render(c, http.StatusOK, "dashboard_teknisi.html", gin.H{
		"reports":       filterReports(reports, q, true),
		"total":         len(reports),
		"stats":         st,
		"query":         q,
		"filtered":      q.active(),
		"statusOptions": models.ReportStatuses,
		"withReporter":  true,
	})
}

func SuperadminDashboard(c *gin.Context) {
	conn := middleware.Conn(c)

	var (
		users   []models.User
		assets  []models.Asset
		reports []models.Report
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) { users, err = conn.ListUsers(ctx); return })
	g.Go(func() (err error) { assets, err = conn.ListAssets(ctx); return })
	g.Go(func() (err error) { reports, err = conn.ListReports(ctx); return })
	if err := g.Wait(); err != nil {
		handleAPIError(c, err)
		return
	}

	render(c, http.StatusOK, "dashboard_superadmin.html", gin.H{
		"stats": summarize(len(users), len(assets), reports, now()),
	})
}

// ListReports is the superadmin report management page.
func ListReports(c *gin.Context) {
	var q reportQuery
	_ = c.ShouldBindQuery(&q)

	reports, err := middleware.Conn(c).ListReports(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}

	render(c, http.StatusOK, "reports_list.html", gin.H{
		"reports":       filterReports(reports, q, true),
		"total":         len(reports),
		"statusOptions": distinctStatuses(reports),
		"query":         q,
		"filtered":      q.active(),
		"withReporter":  true,
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the backend answers at all.
func Ready(client *api.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
