package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLandingPath(t *testing.T) {
	cases := map[string]string{
		"teknisi":    "/teknisidashboard",
		"superadmin": "/superadmindashboard",
		"pegawai":    "/pegawaidashboard",
		"":           "/pegawaidashboard",
		"unknown":    "/pegawaidashboard",
		"SuperAdmin": "/superadmindashboard",
	}
	for in, want := range cases {
		assert.Equal(t, want, LandingPath(ParseRole(in)), "role %q", in)
	}
}

func TestEffectiveRoleUsesFirstRole(t *testing.T) {
	u := &User{Roles: []RoleRef{{Name: "teknisi"}, {Name: "superadmin"}}}
	assert.Equal(t, RoleTeknisi, u.EffectiveRole())
	assert.Equal(t, "/teknisidashboard", u.Landing())

	var none *User
	assert.Equal(t, RoleUnknown, none.EffectiveRole())
	assert.Equal(t, "/pegawaidashboard", none.Landing())
	assert.Equal(t, RoleUnknown, (&User{}).EffectiveRole())
}

func TestReportAnalysis(t *testing.T) {
	r := Report{Responses: []ReportResponse{{Response: `{"Ringkasan Masalah":"AC bocor","Tingkat Urgensi":"tinggi"}`}}}
	a, ok := r.Analysis()
	assert.True(t, ok)
	assert.Equal(t, "AC bocor", a.Summary)
	assert.Equal(t, "tinggi", a.Urgency)

	_, ok = Report{Responses: []ReportResponse{{Response: "processing..."}}}.Analysis()
	assert.False(t, ok)

	_, ok = Report{}.Analysis()
	assert.False(t, ok)
}
