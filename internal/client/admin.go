package client

import (
	"context"
	"net/http"

	"jobboard/internal/model"
)

type UserList struct {
	Users      []model.User     `json:"users"`
	Pagination model.Pagination `json:"pagination"`
}

type AdminStats struct {
	model.Stats
	ApplicationsByStatus map[model.ApplicationStatus]int `json:"applications_by_status"`
}

func (c *Client) Stats(ctx context.Context) (*AdminStats, error) {
	var out struct {
		Stats *AdminStats `json:"stats"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/stats"}, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

// Users lists accounts matching search (name or email) and role, both optional.
func (c *Client) Users(ctx context.Context, search string, role model.Role, p Page) (*UserList, error) {
	q := p.values()
	if search != "" {
		q.Set("search", search)
	}
	if role != "" {
		q.Set("role", string(role))
	}
	var out UserList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/users", query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/admin/users/" + escape(id)}, nil)
}

func (c *Client) Applications(ctx context.Context, status model.ApplicationStatus, p Page) (*ApplicationList, error) {
	q := p.values()
	if status != "" {
		q.Set("status", string(status))
	}
	var out ApplicationList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/applications", query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
