// Package model contains the domain types shared by the API server and its clients.
// The types carry JSON tags only; persistence concerns live in the repository layer.
package model

// Pagination describes one page of a listing.
type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

// NewPagination derives the page count from total and limit. Pages is at least 1.
func NewPagination(page, limit, total int) Pagination {
	if page < 1 {
		page = 1
	}
	pages := 1
	if limit > 0 && total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Current: page, Pages: pages, Total: total}
}

// Stats are the platform totals shown on the admin dashboard.
type Stats struct {
	TotalUsers        int `json:"total_users"`
	TotalJobs         int `json:"total_jobs"`
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`
}
