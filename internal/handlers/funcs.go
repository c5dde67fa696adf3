package handlers

import (
	"html/template"
	"strings"
	"time"

	"tracer-web/internal/markdown"
	"tracer-web/internal/models"
)

var weekdays = [...]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

// FuncMap returns the helpers every page template can call. imageBaseURL
// prefixes relative media paths returned by the backend.
func FuncMap(imageBaseURL string) template.FuncMap {
	return template.FuncMap{
		"mediaURL":       func(p string) string { return mediaURL(imageBaseURL, p) },
		"markdown":       markdown.Render,
		"reportClass":    reportClass,
		"assetClass":     assetClass,
		"urgencyClass":   urgencyClass,
		"formatDate":     func(t time.Time) string { return formatDate(t, false) },
		"formatDateTime": func(t time.Time) string { return formatDate(t, true) },
		"fieldError":     fieldError,
		"reportStatuses": func() []models.ReportStatus { return models.ReportStatuses },
		"assetStatuses":  func() []models.AssetStatus { return models.AssetStatuses },
		"roles":          func() []models.Role { return models.Roles },
		"userRole":       func(u models.User) models.Role { return u.EffectiveRole() },
		"same":           func(a, b any) bool { return toString(a) == toString(b) },
	}
}

func mediaURL(base, p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if base == "" {
		return p
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

func reportClass(s models.ReportStatus) string {
	switch s {
	case models.ReportOpen:
		return "badge-open"
	case models.ReportInProgress:
		return "badge-progress"
	case models.ReportClosed:
		return "badge-closed"
	default:
		return "badge-muted"
	}
}

func assetClass(s models.AssetStatus) string {
	switch s {
	case models.AssetAvailable:
		return "badge-closed"
	case models.AssetBroken:
		return "badge-open"
	case models.AssetInRepair:
		return "badge-progress"
	default:
		return "badge-muted"
	}
}

func urgencyClass(u string) string {
	switch strings.ToLower(strings.TrimSpace(u)) {
	case "tinggi", "high", "kritis":
		return "badge-open"
	case "sedang", "medium":
		return "badge-progress"
	case "rendah", "low":
		return "badge-closed"
	default:
		return "badge-muted"
	}
}

func formatDate(t time.Time, withTime bool) string {
	if t.IsZero() {
		return "-"
	}
	if withTime {
		return t.Local().Format("02 Jan 2006 15:04")
	}
	return t.Local().Format("02 Jan 2006")
}

// fieldError accepts any so templates can pass a missing or nil map.
func fieldError(fields any, name string) string {
	m, _ := fields.(map[string]string)
	return m[name]
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case models.ReportStatus:
		return string(s)
	case models.AssetStatus:
		return string(s)
	case models.Role:
		return string(s)
	default:
		return ""
	}
}
