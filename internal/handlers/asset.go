package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tracer-web/internal/api"
	"tracer-web/internal/middleware"
	"tracer-web/internal/models"
	"tracer-web/internal/upload"
)

// DAFTAR ASET

func ListAssets(c *gin.Context) {
	var q assetQuery
	_ = c.ShouldBindQuery(&q)

	assets, err := middleware.Conn(c).ListAssets(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}

	render(c, http.StatusOK, "assets_list.html", gin.H{
		"assets":    filterAssets(assets, q),
		"total":     len(assets),
		"types":     distinctTypeNames(assets),
		"query":     q,
		"canManage": middleware.Session(c).Role() == models.RoleSuperadmin,
	})
}

func ShowAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	asset, err := middleware.Conn(c).GetAsset(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	render(c, http.StatusOK, "asset_detail.html", gin.H{
		"asset":     asset,
		"canManage": middleware.Session(c).Role() == models.RoleSuperadmin,
	})
}

// FORM ASET

type assetForm struct {
	Name        string `form:"name" binding:"required"`
	AssetCode   string `form:"asset_code" binding:"required"`
	Location    string `form:"location" binding:"required"`
	AssetTypeID uint   `form:"asset_type_id" binding:"required"`
	Status      string `form:"status" binding:"required,oneof=available broken in_repair removed"`
}

func (f *assetForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.AssetCode = strings.TrimSpace(f.AssetCode)
	f.Location = strings.TrimSpace(f.Location)
}

func (f assetForm) input() models.AssetInput {
	return models.AssetInput{
		Name:        f.Name,
		AssetCode:   f.AssetCode,
		Location:    f.Location,
		AssetTypeID: f.AssetTypeID,
		Status:      models.AssetStatus(f.Status),
	}
}

func formFromAsset(a *models.Asset) assetForm {
	return assetForm{
		Name:        a.Name,
		AssetCode:   a.AssetCode,
		Location:    a.Location,
		AssetTypeID: a.AssetTypeID,
		Status:      string(a.Status),
	}
}

// renderAssetForm shows the create form when id is zero and the edit form
// otherwise.
func renderAssetForm(c *gin.Context, status int, id uint, form assetForm, msg string, fields map[string]string) {
	data := gin.H{
		"id":          id,
		"isEdit":      id != 0,
		"form":        form,
		"error":       msg,
		"fields":      fields,
		"imageHint":   upload.AssetImage.Hint,
		"manualHint":  upload.AssetManual.Hint,
		"assetStatus": models.AssetStatuses,
	}
	types, err := middleware.Conn(c).ListAssetTypes(c.Request.Context())
	if err != nil {
		alert, _, ok := mutationFailure(c, err, "Gagal memuat tipe aset.")
		if !ok {
			return
		}
		data["typesError"] = alert
	}
	data["types"] = types
	render(c, status, "asset_form.html", data)
}

func ShowNewAsset(c *gin.Context) {
	renderAssetForm(c, http.StatusOK, 0, assetForm{Status: string(models.AssetAvailable)}, "", nil)
}

func ShowEditAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	asset, err := middleware.Conn(c).GetAsset(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	renderAssetForm(c, http.StatusOK, id, formFromAsset(asset), "", nil)
}

// assetFile returns the optional upload in field, checked against p.
func assetFile(c *gin.Context, field string, p upload.Policy, fields map[string]string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	if err := p.Validate(fh); err != nil {
		var fe *upload.FileError
		if errors.As(err, &fe) {
			fields[field] = fe.Message(p)
		} else {
			fields[field] = "File tidak dapat dibaca."
		}
		return nil
	}
	return fh
}

// bindAsset reads and checks the asset form plus its attachments.
func bindAsset(c *gin.Context) (assetForm, api.AssetFiles, map[string]string) {
	var form assetForm
	fields := bindForm(c, &form)
	form.trim()
	for name, v := range map[string]string{"name": form.Name, "asset_code": form.AssetCode, "location": form.Location} {
		if v == "" && fields[name] == "" {
			fields[name] = label(name) + " wajib diisi."
		}
	}
	files := api.AssetFiles{
		Image:  assetFile(c, "image", upload.AssetImage, fields),
		Manual: assetFile(c, "user_manual", upload.AssetManual, fields),
	}
	return form, files, fields
}

func CreateAsset(c *gin.Context) {
	form, files, fields := bindAsset(c)
	if len(fields) > 0 {
		renderAssetForm(c, http.StatusUnprocessableEntity, 0, form, msgInvalid, fields)
		return
	}

	if err := middleware.Conn(c).CreateAsset(c.Request.Context(), form.input(), files); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal menyimpan aset.")
		if !ok {
			return
		}
		renderAssetForm(c, statusFor(err), 0, form, msg, fe)
		return
	}

	auditLog(c, "asset", 0, "create", "asset "+form.AssetCode+" created")
	addFlash(c, flashSuccess, "Aset berhasil ditambahkan.")
	c.Redirect(http.StatusFound, "/assets")
}

func UpdateAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	form, files, fields := bindAsset(c)
	if len(fields) > 0 {
		renderAssetForm(c, http.StatusUnprocessableEntity, id, form, msgInvalid, fields)
		return
	}

	if err := middleware.Conn(c).UpdateAsset(c.Request.Context(), id, form.input(), files); err != nil {
		msg, fe, ok := mutationFailure(c, err, "Gagal memperbarui aset.")
		if !ok {
			return
		}
		renderAssetForm(c, statusFor(err), id, form, msg, fe)
		return
	}

	auditLog(c, "asset", id, "update", "asset "+form.AssetCode+" updated")
	addFlash(c, flashSuccess, "Aset berhasil diperbarui.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/assets/%d", id))
}

// HAPUS ASET

func ShowDeleteAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	asset, err := middleware.Conn(c).GetAsset(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, err)
		return
	}
	render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"title":   "Hapus Aset",
		"message": fmt.Sprintf("Apakah Anda yakin ingin menghapus aset %q (%s)? Tindakan ini tidak dapat dibatalkan.", asset.Name, asset.AssetCode),
		"action":  fmt.Sprintf("/assets/%d/delete", id),
		"cancel":  "/assets",
	})
}

func DeleteAsset(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := middleware.Conn(c).DeleteAsset(c.Request.Context(), id); err != nil {
		msg, _, ok := mutationFailure(c, err, "Gagal menghapus aset.")
		if !ok {
			return
		}
		addFlash(c, flashError, msg)
		c.Redirect(http.StatusFound, "/assets")
		return
	}

	auditLog(c, "asset", id, "delete", "asset deleted")
	addFlash(c, flashSuccess, "Aset berhasil dihapus.")
	c.Redirect(http.StatusFound, "/assets")
}
