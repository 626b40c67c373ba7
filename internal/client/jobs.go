package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"jobboard/internal/model"
)

type JobList struct {
	Jobs       []model.Job      `json:"jobs"`
	Pagination model.Pagination `json:"pagination"`
}

// JobDraft is a new job listing.
type JobDraft struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Company      string          `json:"company"`
	Location     string          `json:"location"`
	JobType      model.JobType   `json:"job_type,omitempty"`
	Salary       model.Salary    `json:"salary"`
	Skills       []string        `json:"skills,omitempty"`
	Requirements []string        `json:"requirements,omitempty"`
	Benefits     []string        `json:"benefits,omitempty"`
	Status       model.JobStatus `json:"status,omitempty"`
}

// JobChanges updates a job partially; nil fields are not sent.
type JobChanges struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Company      *string          `json:"company,omitempty"`
	Location     *string          `json:"location,omitempty"`
	JobType      *model.JobType   `json:"job_type,omitempty"`
	Salary       *model.Salary    `json:"salary,omitempty"`
	Skills       *[]string        `json:"skills,omitempty"`
	Requirements *[]string        `json:"requirements,omitempty"`
	Benefits     *[]string        `json:"benefits,omitempty"`
	Status       *model.JobStatus `json:"status,omitempty"`
}

type jobEnvelope struct {
	Job *model.Job `json:"job"`
}

// filterValues encodes f with the query names the API expects.
func filterValues(f model.JobFilter) url.Values {
	q := Page{Page: f.Page, Limit: f.Limit}.values()
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("location", f.Location)
	set("jobType", string(f.JobType))
	set("company", f.Company)
	if len(f.Skills) > 0 {
		q.Set("skills", strings.Join(f.Skills, ","))
	}
	if f.SalaryMin != nil {
		q.Set("salaryMin", strconv.FormatInt(*f.SalaryMin, 10))
	}
	if f.SalaryMax != nil {
		q.Set("salaryMax", strconv.FormatInt(*f.SalaryMax, 10))
	}
	if f.DatePosted > 0 {
		q.Set("datePosted", strconv.Itoa(f.DatePosted))
	}
	return q
}

func (c *Client) ListJobs(ctx context.Context, f model.JobFilter) (*JobList, error) {
	var out JobList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/jobs", query: filterValues(f)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return c.job(ctx, request{method: http.MethodGet, path: "/jobs/" + escape(id)})
}

func (c *Client) CreateJob(ctx context.Context, d JobDraft) (*model.Job, error) {
	return c.job(ctx, request{method: http.MethodPost, path: "/jobs", body: d})
}

func (c *Client) UpdateJob(ctx context.Context, id string, ch JobChanges) (*model.Job, error) {
	return c.job(ctx, request{method: http.MethodPut, path: "/jobs/" + escape(id), body: ch})
}

func (c *Client) job(ctx context.Context, r request) (*model.Job, error) {
	var out jobEnvelope
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/jobs/" + escape(id)}, nil)
}

// EmployerJobs lists the caller's own jobs in every status.
func (c *Client) EmployerJobs(ctx context.Context, p Page) (*JobList, error) {
	var out JobList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/jobs/employer/my-jobs", query: p.values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
