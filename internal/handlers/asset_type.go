package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/middleware"
)

type assetTypeForm struct {
	Name string `form:"name" binding:"required"`
}

// renderAssetTypes lists the types. editID selects the row shown with an
// inline rename form.
func renderAssetTypes(c *gin.Context, status int, editID uint, msg string, fields map[string]string) {
	types, err := middleware.Conn(c).ListAssetTypes(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}
	render(c, status, "asset_types.html", gin.H{
		"types":  types,
		"editID": editID,
		"error":  msg,
		"fields": fields,
	})
}

func ListAssetTypes(c *gin.Context) {
	var editID uint
	if v, err := strconv.ParseUint(c.Query("edit"), 10, 64); err == nil {
		editID = uint(v)
	}
	renderAssetTypes(c, http.StatusOK, editID, "", nil)
}

func bindAssetType(c *gin.Context) (string, map[string]string) {
	var form assetTypeForm
	fields := bindForm(c, &form)
	name := strings.TrimSpace(form.Name)
	if name == "" && fields["name"] == "" {
		fields["name"] = "Nama tipe aset wajib diisi."
	}
	return name, fields
}

func CreateAssetType(c *gin.Context) {
	name, fields := bindAssetType(c)
	if len(fields) > 0 {
		renderAssetTypes(c, http.StatusUnprocessableEntity, 0, msgInvalid, fields)
		return
	}

	if err := middleware.Conn(c).CreateAssetType(c.Request.Context(), name); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal menambahkan tipe aset.")
		if !ok {
			return
		}
		renderAssetTypes(c, statusFor(err), 0, msg, fe)
		return
	}

	auditLog(c, "asset_type", 0, "create", "asset type "+name+" created")
	addFlash(c, flashSuccess, "Tipe aset berhasil ditambahkan.")
	c.Redirect(http.StatusFound, "/asset-types")
}

func UpdateAssetType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	name, fields := bindAssetType(c)
	if len(fields) > 0 {
		renderAssetTypes(c, http.StatusUnprocessableEntity, id, msgInvalid, fields)
		return
	}

	if err := middleware.Conn(c).UpdateAssetType(c.Request.Context(), id, name); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal memperbarui tipe aset.")
		if !ok {
			return
		}
		renderAssetTypes(c, statusFor(err), id, msg, fe)
		return
	}

	auditLog(c, "asset_type", id, "update", "asset type renamed to "+name)
	addFlash(c, flashSuccess, "Tipe aset berhasil diperbarui.")
	c.Redirect(http.StatusFound, "/asset-types")
}

func ShowDeleteAssetType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"title":   "Hapus Tipe Aset",
		"message": "Apakah Anda yakin ingin menghapus tipe aset ini? Tindakan ini tidak dapat dibatalkan.",
		"action":  fmt.Sprintf("/asset-types/%d/delete", id),
		"cancel":  "/asset-types",
	})
}

func DeleteAssetType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := middleware.Conn(c).DeleteAssetType(c.Request.Context(), id); err != nil {
		msg, _, ok := mutationFailure(c, err, "Gagal menghapus tipe aset.")
		if !ok {
			return
		}
		addFlash(c, flashError, msg)
		c.Redirect(http.StatusFound, "/asset-types")
		return
	}

	auditLog(c, "asset_type", id, "delete", "asset type deleted")
	addFlash(c, flashSuccess, "Tipe aset berhasil dihapus.")
	c.Redirect(http.StatusFound, "/asset-types")
}
