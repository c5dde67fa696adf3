package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/middleware"
	"tracer-web/internal/models"
)

func ListUsers(c *gin.Context) {
	users, err := middleware.Conn(c).ListUsers(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}
	render(c, http.StatusOK, "users_list.html", gin.H{"users": users})
}

type userForm struct {
	Name       string `form:"name" binding:"required"`
	EmployeeID string `form:"employee_id" binding:"required"`
	Email      string `form:"email" binding:"required,email"`
	Password   string `form:"password"`
	Role       string `form:"role" binding:"required,oneof=superadmin teknisi pegawai"`
}

func formFromUser(u *models.User) userForm {
	return userForm{
		Name:       u.Name,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       string(u.EffectiveRole()),
	}
}

func (f userForm) input() models.UserInput {
	return models.UserInput{
		Name:       f.Name,
		EmployeeID: f.EmployeeID,
		Email:      f.Email,
		Password:   f.Password,
		Roles:      []string{f.Role},
	}
}

func renderUserForm(c *gin.Context, status int, id uint, form userForm, msg string, fields map[string]string) {
	form.Password = ""
	render(c, status, "user_form.html", gin.H{
		"id":     id,
		"isEdit": id != 0,
		"form":   form,
		"error":  msg,
		"fields": fields,
	})
}

// bindUser checks the form. The password is required on create and may be
// left blank on edit to keep the current one.
func bindUser(c *gin.Context, create bool) (userForm, map[string]string) {
	var form userForm
	fields := bindForm(c, &form)
	form.Name = strings.TrimSpace(form.Name)
	form.EmployeeID = strings.TrimSpace(form.EmployeeID)
	form.Email = strings.TrimSpace(form.Email)

	switch {
	case form.Password == "" && create:
		fields["password"] = "Kata sandi wajib diisi."
	case form.Password != "" && len(form.Password) < 6:
		fields["password"] = "Kata sandi minimal 6 karakter."
	}
	return form, fields
}

func ShowNewUser(c *gin.Context) {
	renderUserForm(c, http.StatusOK, 0, userForm{Role: string(models.RolePegawai)}, "", nil)
}

func CreateUser(c *gin.Context) {
	form, fields := bindUser(c, true)
	if len(fields) > 0 {
		renderUserForm(c, http.StatusUnprocessableEntity, 0, form, msgInvalid, fields)
		return
	}

	if err := middleware.Conn(c).CreateUser(c.Request.Context(), form.input()); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal menambahkan pengguna.")
		if !ok {
			return
		}
		renderUserForm(c, statusFor(err), 0, form, msg, fe)
		return
	}

	auditLog(c, "user", 0, "create", "user "+form.EmployeeID+" created as "+form.Role)
	addFlash(c, flashSuccess, "Pengguna berhasil ditambahkan.")
	c.Redirect(http.StatusFound, "/users")
}

func ShowEditUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := middleware.Conn(c).GetUser(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	renderUserForm(c, http.StatusOK, id, formFromUser(u), "", nil)
}

func UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	form, fields := bindUser(c, false)
	if len(fields) > 0 {
		renderUserForm(c, http.StatusUnprocessableEntity, id, form, msgInvalid, fields)
		return
	}

	if err := middleware.Conn(c).UpdateUser(c.Request.Context(), id, form.input()); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal memperbarui pengguna.")
		if !ok {
			return
		}
		renderUserForm(c, statusFor(err), id, form, msg, fe)
		return
	}

	auditLog(c, "user", id, "update", "user "+form.EmployeeID+" updated")
	addFlash(c, flashSuccess, "Pengguna berhasil diperbarui.")
	c.Redirect(http.StatusFound, "/users")
}

func ShowDeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := middleware.Conn(c).GetUser(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"title":   "Hapus Pengguna",
		"message": fmt.Sprintf("Apakah Anda yakin ingin menghapus pengguna %q (%s)?", u.Name, u.EmployeeID),
		"action":  fmt.Sprintf("/users/%d/delete", id),
		"cancel":  "/users",
	})
}

func DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if u := middleware.Session(c).User(); u != nil && u.ID == id {
		addFlash(c, flashError, "Anda tidak dapat menghapus akun Anda sendiri.")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	if err := middleware.Conn(c).DeleteUser(c.Request.Context(), id); err != nil {
		msg, _, ok := mutationFailure(c, err, "Gagal menghapus pengguna.")
		if !ok {
			return
		}
		addFlash(c, flashError, msg)
		c.Redirect(http.StatusFound, "/users")
		return
	}

	auditLog(c, "user", id, "delete", "user deleted")
	addFlash(c, flashSuccess, "Pengguna berhasil dihapus.")
	c.Redirect(http.StatusFound, "/users")
}
