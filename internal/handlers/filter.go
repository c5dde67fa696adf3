package handlers

import (
	"sort"
	"strings"

	"tracer-web/internal/models"
)

// reportQuery is the filter state of a report list, read from the query string.
type reportQuery struct {
	Status string `form:"status"`
	Q      string `form:"q"`
}

func (q reportQuery) active() bool {
	return (q.Status != "" && q.Status != "all") || strings.TrimSpace(q.Q) != ""
}

// filterReports keeps reports matching the status and the search term. The
// term matches report code and asset name, plus the reporter when
// withReporter is set.
func filterReports(reports []models.Report, q reportQuery, withReporter bool) []models.Report {
	term := strings.ToLower(strings.TrimSpace(q.Q))
	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if q.Status != "" && q.Status != "all" && string(r.Status) != q.Status {
			continue
		}
		if term != "" {
			hay := []string{r.ReportCode, r.AssetName()}
			if withReporter {
				hay = append(hay, r.ReporterName())
			}
			if !containsAny(hay, term) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// distinctStatuses lists the statuses present, in lifecycle order.
func distinctStatuses(reports []models.Report) []models.ReportStatus {
	seen := map[models.ReportStatus]bool{}
	for _, r := range reports {
		seen[r.Status] = true
	}
	var out []models.ReportStatus
	for _, s := range models.ReportStatuses {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

type assetQuery struct {
	Type string `form:"type"`
	Q    string `form:"q"`
}

func filterAssets(assets []models.Asset, q assetQuery) []models.Asset {
	term := strings.ToLower(strings.TrimSpace(q.Q))
	out := make([]models.Asset, 0, len(assets))
	for _, a := range assets {
		if q.Type != "" && q.Type != "all" && a.TypeName() != q.Type {
			continue
		}
		if term != "" && !containsAny([]string{a.Name, a.AssetCode, a.Location}, term) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func distinctTypeNames(assets []models.Asset) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range assets {
		n := a.TypeName()
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func containsAny(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
