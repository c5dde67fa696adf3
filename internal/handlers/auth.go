package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/api"
	"tracer-web/internal/logger"
	"tracer-web/internal/middleware"
)

const msgBadCredentials = "ID pekerja atau kata sandi salah."

type loginForm struct {
	EmployeeID string `form:"employee_id" binding:"required"`
	Password   string `form:"password" binding:"required,min=6"`
}

func ShowLogin(c *gin.Context) {
	if s := middleware.Session(c); s != nil && s.Authenticated() {
		c.Redirect(http.StatusFound, s.Landing())
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

func renderLoginError(c *gin.Context, status int, form loginForm, msg string, fields map[string]string) {
	render(c, status, "login.html", gin.H{
		"error":      msg,
		"fields":     fields,
		"employeeID": form.EmployeeID,
	})
}

func Login(c *gin.Context) {
	var form loginForm
	fields := bindForm(c, &form)
	form.EmployeeID = strings.TrimSpace(form.EmployeeID)
	if form.EmployeeID == "" && fields["employee_id"] == "" {
		fields["employee_id"] = fieldLabels["employee_id"] + " wajib diisi."
	}
	if len(fields) > 0 {
		renderLoginError(c, http.StatusUnprocessableEntity, form, msgInvalid, fields)
		return
	}

	res, err := middleware.Conn(c).Login(c.Request.Context(), form.EmployeeID, form.Password)
	if err != nil {
		log := logger.Get()
		log.Info().Err(err).Str("employee_id", form.EmployeeID).Msg("login rejected")
		switch api.KindOf(err) {
		case api.KindValidation:
			ae, _ := api.AsError(err)
			msg := msgInvalid
			if ae.Message != "" {
				msg = ae.Message
			}
			renderLoginError(c, http.StatusUnprocessableEntity, form, msg, ae.FirstFieldErrors())
		case api.KindUnauthorized, api.KindForbidden, api.KindNotFound:
			renderLoginError(c, http.StatusUnauthorized, form, msgBadCredentials, nil)
		case api.KindNetwork:
			renderLoginError(c, http.StatusBadGateway, form, msgNetwork, nil)
		default:
			renderLoginError(c, http.StatusBadGateway, form, msgServer, nil)
		}
		return
	}

	s := middleware.Session(c)
	if err := s.Login(res.Token, res.User); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("store login")
		renderLoginError(c, http.StatusInternalServerError, form, msgServer, nil)
		return
	}
	log := logger.Get()
	log.Info().Uint("user_id", res.User.ID).Str("role", string(s.Role())).Msg("login")

	render(c, http.StatusOK, "login.html", gin.H{
		"success":    "Login berhasil! Mengalihkan...",
		"redirectTo": s.Landing(),
	})
}

func Logout(c *gin.Context) {
	s := middleware.Session(c)
	if s != nil && s.Token() != "" {
		if err := middleware.Conn(c).Logout(c.Request.Context()); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("backend logout failed")
		}
	}
	if s != nil {
		if err := s.Logout(); err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("clear session")
		}
	}
	c.Redirect(http.StatusFound, "/login")
}
