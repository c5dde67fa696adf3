package handlers

import (
	"math"
	"sort"
	"time"

	"tracer-web/internal/models"
)

type dayCount struct {
	Label   string
	Date    string
	Count   int
	Percent int
}

type assetCount struct {
	Name  string
	Code  string
	Count int
}

// dashboardStats is everything the superadmin dashboard shows.
type dashboardStats struct {
	Users        int
	Assets       int
	Open         int
	InProgress   int
	Closed       int
	Today        int
	Daily        []dayCount
	TopAssets    []assetCount
	TodayReports []models.Report
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// summarize computes the dashboard figures relative to now, in now's
// location.
func summarize(users, assets int, reports []models.Report, now time.Time) dashboardStats {
	st := dashboardStats{Users: users, Assets: assets}
	loc := now.Location()

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -6)
	st.Daily = make([]dayCount, 7)
	for i := range st.Daily {
		d := start.AddDate(0, 0, i)
		st.Daily[i] = dayCount{Label: weekdays[d.Weekday()], Date: d.Format("02/01")}
	}

	perAsset := map[uint]*assetCount{}
	for _, r := range reports {
		switch r.Status {
		case models.ReportOpen:
			st.Open++
		case models.ReportInProgress:
			st.InProgress++
		case models.ReportClosed:
			st.Closed++
		}

		created := r.CreatedAt.In(loc)
		if sameDay(created, now) {
			st.Today++
			st.TodayReports = append(st.TodayReports, r)
		}

		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, loc)
		if idx := int(math.Round(day.Sub(start).Hours() / 24)); !day.Before(start) && idx < 7 {
			st.Daily[idx].Count++
		}

		// reports without an asset id are left out of the ranking
		if created.Year() == now.Year() && created.Month() == now.Month() && r.Asset != nil && r.Asset.ID != 0 {
			ac, ok := perAsset[r.Asset.ID]
			if !ok {
				ac = &assetCount{Name: r.Asset.Name, Code: r.Asset.AssetCode}
				perAsset[r.Asset.ID] = ac
			}
			ac.Count++
		}
	}

	peak := 0
	for _, d := range st.Daily {
		peak = max(peak, d.Count)
	}
	if peak > 0 {
		for i := range st.Daily {
			st.Daily[i].Percent = st.Daily[i].Count * 100 / peak
		}
	}

	for _, ac := range perAsset {
		st.TopAssets = append(st.TopAssets, *ac)
	}
	sort.Slice(st.TopAssets, func(i, j int) bool {
		if st.TopAssets[i].Count != st.TopAssets[j].Count {
			return st.TopAssets[i].Count > st.TopAssets[j].Count
		}
		return st.TopAssets[i].Name < st.TopAssets[j].Name
	})
	if len(st.TopAssets) > 5 {
		st.TopAssets = st.TopAssets[:5]
	}
	return st
}
