package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/middleware"
	"tracer-web/internal/models"
	"tracer-web/internal/upload"
)

const msgNoFeedback = "Tidak ada umpan balik."

// paramID parses a numeric path parameter and renders the not-found page
// when it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		renderError(c, http.StatusNotFound, "Tidak Ditemukan", msgNotFound, landing(c))
		return 0, false
	}
	return uint(id), true
}

// LAPORAN: FORM

type reportForm struct {
	AssetID     uint   `form:"asset_id" binding:"required"`
	Description string `form:"description" binding:"required"`
}

func ShowNewReport(c *gin.Context) {
	renderReportForm(c, http.StatusOK, reportForm{}, "", nil)
}

func renderReportForm(c *gin.Context, status int, form reportForm, msg string, fields map[string]string) {
	data := gin.H{
		"form":      form,
		"error":     msg,
		"fields":    fields,
		"mediaHint": upload.ReportMedia.Hint,
		"maxFiles":  upload.MaxReportFiles,
	}
	assets, err := middleware.Conn(c).ListAssets(c.Request.Context())
	if err != nil {
		alert, _, ok := mutationFailure(c, err, "Gagal memuat daftar aset.")
		if !ok {
			return
		}
		data["assetsError"] = alert
	}
	data["assets"] = assets
	render(c, status, "report_new.html", data)
}

func reportMedia(c *gin.Context) []*multipart.FileHeader {
	mf, err := c.MultipartForm()
	if err != nil || mf == nil {
		return nil
	}
	return mf.File["media[]"]
}

func CreateReport(c *gin.Context) {
	var form reportForm
	fields := bindForm(c, &form)
	form.Description = strings.TrimSpace(form.Description)
	if form.Description == "" && fields["description"] == "" {
		fields["description"] = fieldLabels["description"] + " wajib diisi."
	}

	media := reportMedia(c)
	if len(media) > upload.MaxReportFiles {
		fields["media"] = fmt.Sprintf("Maksimal %d file.", upload.MaxReportFiles)
	} else if err := upload.ReportMedia.ValidateAll(media); err != nil {
		var fe *upload.FileError
		if errors.As(err, &fe) {
			fields["media"] = fe.Message(upload.ReportMedia)
		} else {
			fields["media"] = "File tidak dapat dibaca."
		}
	}

	if len(fields) > 0 {
		renderReportForm(c, http.StatusUnprocessableEntity, form, msgInvalid, fields)
		return
	}

	in := models.ReportInput{AssetID: form.AssetID, Description: form.Description}
	if err := middleware.Conn(c).CreateReport(c.Request.Context(), in, media); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal mengirim laporan. Silakan coba lagi nanti.")
		if !ok {
			return
		}
		renderReportForm(c, statusFor(err), form, msg, foldFieldErrors(fe, "media"))
		return
	}

	auditLog(c, "report", 0, "create", fmt.Sprintf("report for asset %d with %d media", form.AssetID, len(media)))
	addFlash(c, flashSuccess, "Laporan berhasil dikirim!")
	c.Redirect(http.StatusFound, landing(c))
}

// LAPORAN: DETAIL

func reportBackLink(role models.Role) string {
	if role == models.RoleSuperadmin {
		return "/reports"
	}
	return models.LandingPath(role)
}

func ShowReport(c *gin.Context) {
	id, ok := paramID(c, "reportId")
	if !ok {
		return
	}

	report, err := middleware.Conn(c).GetReport(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, err)
		return
	}

	role := middleware.Session(c).Role()
	analysis, hasAnalysis := report.Analysis()
	render(c, http.StatusOK, "report_detail.html", gin.H{
		"report":      report,
		"analysis":    analysis,
		"hasAnalysis": hasAnalysis,
		"backLink":    reportBackLink(role),
		"canUpdate":   role == models.RoleTeknisi,
		"canIssue":    role == models.RolePegawai,
		"canRespond":  role == models.RoleTeknisi || role == models.RoleSuperadmin,
	})
}

type statusForm struct {
	Status     string `form:"status" binding:"required,oneof=open in_progress closed"`
	Feedback   string `form:"feedback"`
	NoFeedback bool   `form:"no_feedback"`
}

// UpdateReportStatus changes the status and, when closing, records the
// technician feedback.
func UpdateReportStatus(c *gin.Context) {
	id, ok := paramID(c, "reportId")
	if !ok {
		return
	}
	back := fmt.Sprintf("/report/%d", id)

	var form statusForm
	if fields := bindForm(c, &form); len(fields) > 0 {
		addFlash(c, flashError, "Status laporan tidak valid.")
		c.Redirect(http.StatusFound, back)
		return
	}

	status := models.ReportStatus(form.Status)
	feedback := strings.TrimSpace(form.Feedback)
	if status == models.ReportClosed {
		if form.NoFeedback {
			feedback = msgNoFeedback
		}
		if feedback == "" {
			addFlash(c, flashError, "Umpan balik wajib diisi saat menutup laporan.")
			c.Redirect(http.StatusFound, back)
			return
		}
	}

	conn := middleware.Conn(c)
	err := conn.UpdateReportStatus(c.Request.Context(), id, status)
	if err == nil && status == models.ReportClosed {
		err = conn.SubmitFeedback(c.Request.Context(), id, feedback)
	}
	if err != nil {
		msg, _, ok := mutationFailure(c, err, "Gagal memperbarui laporan.")
		if !ok {
			return
		}
		addFlash(c, flashError, msg)
		c.Redirect(http.StatusFound, back)
		return
	}

	auditLog(c, "report", id, "status", "status set to "+form.Status)
	addFlash(c, flashSuccess, "Laporan berhasil diperbarui!")
	c.Redirect(http.StatusFound, back)
}

type issueForm struct {
	Issue string `form:"issue" binding:"required"`
}

func CreateIssue(c *gin.Context) {
	id, ok := paramID(c, "reportId")
	if !ok {
		return
	}
	back := fmt.Sprintf("/report/%d", id)

	var form issueForm
	fields := bindForm(c, &form)
	form.Issue = strings.TrimSpace(form.Issue)
	if len(fields) > 0 || form.Issue == "" {
		addFlash(c, flashError, "Kendala wajib diisi.")
		c.Redirect(http.StatusFound, back)
		return
	}

	if err := middleware.Conn(c).CreateIssue(c.Request.Context(), id, form.Issue); err != nil {
		msg, _, ok := mutationFailure(c, err, "Gagal mengirim kendala.")
		if !ok {
			return
		}
		addFlash(c, flashError, msg)
		c.Redirect(http.StatusFound, back)
		return
	}

	auditLog(c, "report", id, "issue", "issue raised")
	addFlash(c, flashSuccess, "Kendala berhasil dikirim.")
	c.Redirect(http.StatusFound, back)
}

type issueResponseForm struct {
	Response string `form:"response" binding:"required"`
}

func RespondIssue(c *gin.Context) {
	id, ok := paramID(c, "reportId")
	if !ok {
		return
	}
	issueID, ok := paramID(c, "issueId")
	if !ok {
		return
	}
	back := fmt.Sprintf("/report/%d", id)

	var form issueResponseForm
	fields := bindForm(c, &form)
	form.Response = strings.TrimSpace(form.Response)
	if len(fields) > 0 || form.Response == "" {
		addFlash(c, flashError, "Tanggapan wajib diisi.")
		c.Redirect(http.StatusFound, back)
		return
	}

	if err := middleware.Conn(c).RespondIssue(c.Request.Context(), id, issueID, form.Response); err != nil {
		msg, _, ok := mutationFailure(c, err, "Gagal mengirim tanggapan.")
		if !ok {
			return
		}
		addFlash(c, flashError, msg)
		c.Redirect(http.StatusFound, back)
		return
	}

	auditLog(c, "report_issue", issueID, "respond", "issue answered")
	addFlash(c, flashSuccess, "Tanggapan berhasil dikirim.")
	c.Redirect(http.StatusFound, back)
}
