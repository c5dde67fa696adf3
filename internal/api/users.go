package api

import (
	"context"
	"fmt"
	"net/http"

	"tracer-web/internal/models"
)

func (cn *Conn) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := cn.do(ctx, call{op: "list_users", method: http.MethodGet, path: "/users", out: &out})
	return out, err
}

func (cn *Conn) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var out models.User
	if err := cn.do(ctx, call{op: "get_user", method: http.MethodGet, path: fmt.Sprintf("/users/%d", id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cn *Conn) CreateUser(ctx context.Context, in models.UserInput) error {
	return cn.do(ctx, call{op: "create_user", method: http.MethodPost, path: "/users", body: in})
}

// UpdateUser leaves the password unchanged when in.Password is empty.
func (cn *Conn) UpdateUser(ctx context.Context, id uint, in models.UserInput) error {
	return cn.do(ctx, call{op: "update_user", method: http.MethodPut, path: fmt.Sprintf("/users/%d", id), body: in})
}

func (cn *Conn) DeleteUser(ctx context.Context, id uint) error {
	return cn.do(ctx, call{op: "delete_user", method: http.MethodDelete, path: fmt.Sprintf("/users/%d", id)})
}
