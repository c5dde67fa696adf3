package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/api"
	"tracer-web/internal/logger"
	"tracer-web/internal/metrics"
	"tracer-web/internal/middleware"
)

const (
	msgNetwork   = "Tidak dapat terhubung ke server. Periksa koneksi Anda lalu coba lagi."
	msgExpired   = "Sesi Anda telah berakhir. Silakan login kembali."
	msgForbidden = "Anda tidak memiliki izin untuk melakukan tindakan ini."
	msgNotFound  = "Data yang Anda cari tidak dapat ditemukan."
	msgServer    = "Terjadi kesalahan pada server. Silakan coba lagi nanti."
	msgInvalid   = "Periksa kembali isian formulir."
)

// landing is the dashboard of the current session, or the lowest one.
func landing(c *gin.Context) string {
	if s := middleware.Session(c); s != nil {
		return s.Landing()
	}
	return "/pegawaidashboard"
}

// expireSession handles a 401: clear the session and send the browser to
// the login page.
func expireSession(c *gin.Context) {
	if s := middleware.Session(c); s != nil {
		if err := s.Logout(); err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("clear expired session")
		}
	}
	metrics.SessionEventsTotal.WithLabelValues("expired").Inc()
	addFlash(c, flashError, msgExpired)
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// handleAPIError renders the page-level response for a failed read.
func handleAPIError(c *gin.Context, err error) {
	kind := api.KindOf(err)
	log := logger.Get()
	log.Warn().Err(err).Str("kind", kind.String()).Str("path", c.Request.URL.Path).Msg("backend call failed")

	switch kind {
	case api.KindUnauthorized:
		expireSession(c)
	case api.KindForbidden:
		renderError(c, http.StatusForbidden, "Akses Ditolak", msgForbidden, landing(c))
	case api.KindNotFound:
		renderError(c, http.StatusNotFound, "Tidak Ditemukan", msgNotFound, landing(c))
	case api.KindNetwork:
		renderError(c, http.StatusBadGateway, "Koneksi Gagal", msgNetwork, landing(c))
	default:
		renderError(c, http.StatusBadGateway, "Terjadi Kesalahan", msgServer, landing(c))
	}
}

// mutationFailure converts a failed write into an alert plus field errors.
// It returns ok=false when it already answered the request (expired session).
func mutationFailure(c *gin.Context, err error, fallback string) (alert string, fields map[string]string, ok bool) {
	kind := api.KindOf(err)
	log := logger.Get()
	log.Warn().Err(err).Str("kind", kind.String()).Str("path", c.Request.URL.Path).Msg("backend mutation failed")

	switch kind {
	case api.KindUnauthorized:
		expireSession(c)
		return "", nil, false
	case api.KindValidation:
		ae, _ := api.AsError(err)
		alert = msgInvalid
		if ae.Message != "" {
			alert = ae.Message
		}
		return alert, ae.FirstFieldErrors(), true
	case api.KindForbidden:
		return msgForbidden, nil, true
	case api.KindNotFound:
		return msgNotFound, nil, true
	case api.KindNetwork:
		return msgNetwork, nil, true
	default:
		if ae, isAPI := api.AsError(err); isAPI && ae.Message != "" && ae.Status >= 400 && ae.Status < 500 {
			return ae.Message, nil, true
		}
		return fallback, nil, true
	}
}

// statusFor maps a mutation failure to the status of the re-rendered form.
func statusFor(err error) int {
	switch api.KindOf(err) {
	case api.KindValidation:
		return http.StatusUnprocessableEntity
	case api.KindForbidden:
		return http.StatusForbidden
	case api.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// foldFieldErrors moves errors reported per array element ("media.0",
// "media.1") onto the field itself, keeping the first element's message.
func foldFieldErrors(fields map[string]string, names ...string) map[string]string {
	if len(fields) == 0 {
		return fields
	}
	for _, name := range names {
		var keys []string
		for k := range fields {
			if strings.HasPrefix(k, name+".") {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		if _, ok := fields[name]; !ok {
			fields[name] = fields[keys[0]]
		}
		for _, k := range keys {
			delete(fields, k)
		}
	}
	return fields
}
