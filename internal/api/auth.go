package api

import (
	"context"
	"net/http"

	"tracer-web/internal/models"
)

type loginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// LoginResult is the canonical login response: a token plus the profile
// whose first role is the effective role.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (cn *Conn) Login(ctx context.Context, employeeID, password string) (*LoginResult, error) {
	var out LoginResult
	err := cn.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/login",
		body:   loginRequest{EmployeeID: employeeID, Password: password},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &Error{Op: "login", Status: http.StatusOK, Message: "login response without token"}
	}
	return &out, nil
}

// Logout tells the backend to drop the token. Callers clear the session
// whatever the outcome.
func (cn *Conn) Logout(ctx context.Context) error {
	return cn.do(ctx, call{op: "logout", method: http.MethodPost, path: "/logout"})
}
