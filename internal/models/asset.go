package models

type AssetStatus string

const (
	AssetAvailable AssetStatus = "available"
	AssetBroken    AssetStatus = "broken"
	AssetInRepair  AssetStatus = "in_repair"
	AssetRemoved   AssetStatus = "removed"
)

var AssetStatuses = []AssetStatus{AssetAvailable, AssetBroken, AssetInRepair, AssetRemoved}

func (s AssetStatus) Valid() bool {
	for _, v := range AssetStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s AssetStatus) Label() string {
	switch s {
	case AssetAvailable:
		return "Available"
	case AssetBroken:
		return "Broken"
	case AssetInRepair:
		return "In Repair"
	case AssetRemoved:
		return "Removed"
	default:
		return "Tidak Diketahui"
	}
}

type AssetType struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Asset struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	AssetCode     string      `json:"asset_code"`
	Location      string      `json:"location"`
	Status        AssetStatus `json:"status"`
	AssetTypeID   uint        `json:"asset_type_id"`
	AssetType     *AssetType  `json:"asset_type,omitempty"`
	Image         string      `json:"image,omitempty"`
	UserManualURL string      `json:"user_manual_url,omitempty"`
	Reports       []Report    `json:"reports,omitempty"`
}

// TypeName is the asset type name or "" when the backend omitted it.
func (a Asset) TypeName() string {
	if a.AssetType == nil {
		return ""
	}
	return a.AssetType.Name
}

// AssetInput carries the text fields of the asset form; files travel separately.
type AssetInput struct {
	Name        string
	AssetCode   string
	Location    string
	AssetTypeID uint
	Status      AssetStatus
}
