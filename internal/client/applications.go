package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"jobboard/internal/model"
)

type ApplicationList struct {
	Applications []model.Application `json:"applications"`
	Pagination   model.Pagination    `json:"pagination"`
}

// Application is a job application. Without Resume the profile resume is used.
type Application struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Resume      *File  `json:"-"`
}

// StatusChange moves an application; nil Notes keeps the existing notes.
type StatusChange struct {
	Status model.ApplicationStatus `json:"status"`
	Notes  *string                 `json:"notes,omitempty"`
}

type applicationEnvelope struct {
	Application *model.Application `json:"application"`
}

// Apply sends JSON, or a multipart form when a resume file is attached.
func (c *Client) Apply(ctx context.Context, a Application) (*model.Application, error) {
	r := request{method: http.MethodPost, path: "/applications", body: a}
	if a.Resume != nil {
		body, contentType, err := multipartBody([][2]string{
			{"jobId", a.JobID},
			{"coverLetter", a.CoverLetter},
			{"notes", a.Notes},
		}, "resume", a.Resume)
		if err != nil {
			return nil, err
		}
		r = request{method: http.MethodPost, path: "/applications", raw: body, contentType: contentType}
	}
	return c.application(ctx, r)
}

func (c *Client) UserApplications(ctx context.Context, userID string, p Page) (*ApplicationList, error) {
	var out ApplicationList
	r := request{method: http.MethodGet, path: "/applications/user/" + escape(userID), query: p.values()}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JobApplications lists a job's applications; an empty status means all.
func (c *Client) JobApplications(ctx context.Context, jobID string, status model.ApplicationStatus, p Page) (*ApplicationList, error) {
	q := p.values()
	if status != "" {
		q.Set("status", string(status))
	}
	var out ApplicationList
	r := request{method: http.MethodGet, path: "/applications/job/" + escape(jobID), query: q}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	return c.application(ctx, request{method: http.MethodGet, path: "/applications/" + escape(id)})
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, ch StatusChange) (*model.Application, error) {
	return c.application(ctx, request{method: http.MethodPut, path: "/applications/" + escape(id) + "/status", body: ch})
}

func (c *Client) application(ctx context.Context, r request) (*model.Application, error) {
	var out applicationEnvelope
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}

// DownloadResume copies the resume stored under key (e.g. resumes/<id>.pdf) to w
// and returns the filename the server suggests.
func (c *Client) DownloadResume(ctx context.Context, key string, w io.Writer) (string, error) {
	segs := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i := range segs {
		segs[i] = escape(segs[i])
	}
	resp, err := c.send(ctx, request{method: http.MethodGet, path: "/files/" + strings.Join(segs, "/")})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("download resume: %w", err)
	}
	name := segs[len(segs)-1]
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	return name, nil
}
