package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tracer-web/internal/models"
)

func sampleReports() []models.Report {
	return []models.Report{
		{ID: 1, ReportCode: "RPT-001", Status: models.ReportOpen, Asset: &models.Asset{Name: "AC Lobi"}, User: &models.User{Name: "Sari"}},
		{ID: 2, ReportCode: "RPT-002", Status: models.ReportClosed, Asset: &models.Asset{Name: "Printer Lt 2"}, User: &models.User{Name: "Andi"}},
		{ID: 3, ReportCode: "RPT-003", Status: models.ReportOpen, Asset: &models.Asset{Name: "Lift"}},
	}
}

func ids(rs []models.Report) []uint {
	out := []uint{}
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterReports(t *testing.T) {
	cases := []struct {
		name         string
		q            reportQuery
		withReporter bool
		want         []uint
	}{
		{"no filter", reportQuery{}, false, []uint{1, 2, 3}},
		{"all status", reportQuery{Status: "all"}, false, []uint{1, 2, 3}},
		{"open", reportQuery{Status: "open"}, false, []uint{1, 3}},
		{"code search", reportQuery{Q: "rpt-002"}, false, []uint{2}},
		{"asset search", reportQuery{Q: " lobi "}, false, []uint{1}},
		{"reporter ignored", reportQuery{Q: "andi"}, false, []uint{}},
		{"reporter searched", reportQuery{Q: "andi"}, true, []uint{2}},
		{"status and search", reportQuery{Status: "closed", Q: "lift"}, false, []uint{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(filterReports(sampleReports(), tc.q, tc.withReporter)))
		})
	}
}

func TestDistinctStatusesKeepsLifecycleOrder(t *testing.T) {
	got := distinctStatuses(sampleReports())
	assert.Equal(t, []models.ReportStatus{models.ReportOpen, models.ReportClosed}, got)
}

func TestFilterAssets(t *testing.T) {
	ac := &models.AssetType{Name: "Pendingin"}
	assets := []models.Asset{
		{ID: 1, Name: "AC Lobi", AssetCode: "AC-01", Location: "Lobi", AssetType: ac},
		{ID: 2, Name: "AC Ruang Rapat", AssetCode: "AC-02", Location: "Lantai 3", AssetType: ac},
		{ID: 3, Name: "Printer", AssetCode: "PR-01", Location: "Lantai 3", AssetType: &models.AssetType{Name: "Elektronik"}},
	}

	assert.Len(t, filterAssets(assets, assetQuery{Type: "Pendingin"}), 2)
	assert.Len(t, filterAssets(assets, assetQuery{Q: "lantai 3"}), 2)
	assert.Len(t, filterAssets(assets, assetQuery{Q: "pr-01", Type: "all"}), 1)
	assert.Equal(t, []string{"Elektronik", "Pendingin"}, distinctTypeNames(assets))
}
