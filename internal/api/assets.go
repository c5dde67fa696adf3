package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"tracer-web/internal/models"
)

func (cn *Conn) ListAssets(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	err := cn.do(ctx, call{op: "list_assets", method: http.MethodGet, path: "/assets", out: &out})
	return out, err
}

func (cn *Conn) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var out models.Asset
	if err := cn.do(ctx, call{op: "get_asset", method: http.MethodGet, path: fmt.Sprintf("/assets/%d", id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssetFiles are the optional attachments of the asset form.
type AssetFiles struct {
	Image  *multipart.FileHeader
	Manual *multipart.FileHeader
}

func (f AssetFiles) uploads() []Upload {
	var out []Upload
	if f.Image != nil {
		out = append(out, Upload{Field: "image", File: f.Image})
	}
	if f.Manual != nil {
		out = append(out, Upload{Field: "user_manual", File: f.Manual})
	}
	return out
}

func assetFields(in models.AssetInput) map[string]string {
	return map[string]string{
		"name":          in.Name,
		"asset_code":    in.AssetCode,
		"location":      in.Location,
		"asset_type_id": strconv.FormatUint(uint64(in.AssetTypeID), 10),
		"status":        string(in.Status),
	}
}

func (cn *Conn) CreateAsset(ctx context.Context, in models.AssetInput, files AssetFiles) error {
	return cn.do(ctx, call{
		op:      "create_asset",
		method:  http.MethodPost,
		path:    "/assets",
		fields:  assetFields(in),
		uploads: files.uploads(),
	})
}

// UpdateAsset posts the multipart form to /assets/{id}; the backend does not
// accept multipart bodies on PUT.
func (cn *Conn) UpdateAsset(ctx context.Context, id uint, in models.AssetInput, files AssetFiles) error {
	return cn.do(ctx, call{
		op:      "update_asset",
		method:  http.MethodPost,
		path:    fmt.Sprintf("/assets/%d", id),
		fields:  assetFields(in),
		uploads: files.uploads(),
	})
}

func (cn *Conn) DeleteAsset(ctx context.Context, id uint) error {
	return cn.do(ctx, call{op: "delete_asset", method: http.MethodDelete, path: fmt.Sprintf("/assets/%d", id)})
}

type assetTypeRequest struct {
	Name string `json:"name"`
}

func (cn *Conn) ListAssetTypes(ctx context.Context) ([]models.AssetType, error) {
	var out []models.AssetType
	err := cn.do(ctx, call{op: "list_asset_types", method: http.MethodGet, path: "/asset-types", out: &out})
	return out, err
}

func (cn *Conn) CreateAssetType(ctx context.Context, name string) error {
	return cn.do(ctx, call{op: "create_asset_type", method: http.MethodPost, path: "/asset-types", body: assetTypeRequest{Name: name}})
}

func (cn *Conn) UpdateAssetType(ctx context.Context, id uint, name string) error {
	return cn.do(ctx, call{
		op:     "update_asset_type",
		method: http.MethodPut,
		path:   fmt.Sprintf("/asset-types/%d", id),
		body:   assetTypeRequest{Name: name},
	})
}

func (cn *Conn) DeleteAssetType(ctx context.Context, id uint) error {
	return cn.do(ctx, call{op: "delete_asset_type", method: http.MethodDelete, path: fmt.Sprintf("/asset-types/%d", id)})
}
