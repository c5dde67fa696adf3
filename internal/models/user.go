package models

import "strings"

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleTeknisi    Role = "teknisi"
	RolePegawai    Role = "pegawai"
	RoleUnknown    Role = ""
)

// Roles lists the closed role set in the order the user form offers them.
var Roles = []Role{RoleSuperadmin, RoleTeknisi, RolePegawai}

// ParseRole maps a backend role tag onto the closed set. Anything outside it
// becomes RoleUnknown.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleSuperadmin:
		return RoleSuperadmin
	case RoleTeknisi:
		return RoleTeknisi
	case RolePegawai:
		return RolePegawai
	default:
		return RoleUnknown
	}
}

// Landing paths per role.
const (
	PathSuperadminDashboard = "/superadmindashboard"
	PathTeknisiDashboard    = "/teknisidashboard"
	PathPegawaiDashboard    = "/pegawaidashboard"
)

// LandingPath returns the default dashboard for a role. Unknown roles land on
// the lowest-privilege dashboard.
func LandingPath(r Role) string {
	switch r {
	case RoleSuperadmin:
		return PathSuperadminDashboard
	case RoleTeknisi:
		return PathTeknisiDashboard
	case RolePegawai:
		return PathPegawaiDashboard
	default:
		return PathPegawaiDashboard
	}
}

func (r Role) Label() string {
	switch r {
	case RoleSuperadmin:
		return "Superadmin"
	case RoleTeknisi:
		return "Teknisi"
	case RolePegawai:
		return "Pegawai"
	default:
		return "Tidak diketahui"
	}
}

type RoleRef struct {
	Name string `json:"name"`
}

// User is both the session profile and the managed user record.
type User struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email,omitempty"`
	Roles      []RoleRef `json:"roles"`
}

// EffectiveRole is the first role the backend lists.
func (u *User) EffectiveRole() Role {
	if u == nil || len(u.Roles) == 0 {
		return RoleUnknown
	}
	return ParseRole(u.Roles[0].Name)
}

func (u *User) Landing() string {
	return LandingPath(u.EffectiveRole())
}

// UserInput is the payload for creating or updating a user.
type UserInput struct {
	Name       string   `json:"name"`
	EmployeeID string   `json:"employee_id"`
	Email      string   `json:"email"`
	Password   string   `json:"password,omitempty"`
	Roles      []string `json:"roles"`
}
