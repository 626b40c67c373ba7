// Package service implements the job board use cases on top of the repositories
// and object storage. Services enforce ownership and role rules; handlers only
// translate HTTP.
package service

import (
	"strings"

	"jobboard/internal/model"
	"jobboard/internal/repository"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID string
	Role   model.Role
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a requested listing page. Zero values select the defaults.
type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) query() repository.PageQuery {
	return repository.PageQuery{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit}
}

// JobList is one page of jobs.
type JobList struct {
	Jobs       []model.Job      `json:"jobs"`
	Pagination model.Pagination `json:"pagination"`
}

// ApplicationList is one page of applications.
type ApplicationList struct {
	Applications []model.Application `json:"applications"`
	Pagination   model.Pagination    `json:"pagination"`
}

// UserList is one page of users.
type UserList struct {
	Users      []model.User     `json:"users"`
	Pagination model.Pagination `json:"pagination"`
}

// cleanList trims entries and drops empty ones. The result is never nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
