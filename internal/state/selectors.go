package state

import (
	"cmp"
	"slices"
	"strings"

	"jobboard/internal/model"
)

// HasApplied reports whether the loaded user applications include jobID.
func (s State) HasApplied(jobID string) bool {
	return slices.ContainsFunc(s.Applications.UserApplications, func(a model.Application) bool {
		return a.JobID == jobID
	})
}

// StatusCounts is the number of applications per status plus the total.
type StatusCounts struct {
	Total    int
	ByStatus map[model.ApplicationStatus]int
}

// SuccessRate is the share of shortlisted and hired applications, rounded to a percent.
func (c StatusCounts) SuccessRate() int {
	if c.Total == 0 {
		return 0
	}
	good := c.ByStatus[model.StatusShortlisted] + c.ByStatus[model.StatusHired]
	return (good*100 + c.Total/2) / c.Total
}

func countStatuses(apps []model.Application) StatusCounts {
	c := StatusCounts{Total: len(apps), ByStatus: make(map[model.ApplicationStatus]int, len(model.ApplicationStatuses))}
	for _, st := range model.ApplicationStatuses {
		c.ByStatus[st] = 0
	}
	for _, a := range apps {
		c.ByStatus[a.Status]++
	}
	return c
}

// ApplicationStats counts the user's own applications.
func (s State) ApplicationStats() StatusCounts {
	return countStatuses(s.Applications.UserApplications)
}

// JobApplicationStats counts the applications loaded for one job.
func (s State) JobApplicationStats() StatusCounts {
	return countStatuses(s.Applications.JobApplications)
}

type EmployerStats struct {
	TotalJobs         int
	ActiveJobs        int
	TotalApplications int
	// AvgApplicationsPerJob is rounded to the nearest integer.
	AvgApplicationsPerJob int
}

func (s State) EmployerStats() EmployerStats {
	var st EmployerStats
	for _, j := range s.Jobs.EmployerJobs {
		st.TotalJobs++
		if j.Status == model.JobStatusActive {
			st.ActiveJobs++
		}
		st.TotalApplications += j.ApplicationCount
	}
	if st.TotalJobs > 0 {
		st.AvgApplicationsPerJob = (st.TotalApplications*2 + st.TotalJobs) / (st.TotalJobs * 2)
	}
	return st
}

// SortOrder orders FilterApplications and FilterUserApplications results.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	// SortName and SortStatus order an employer's view of a job.
	SortName   SortOrder = "name"
	SortStatus SortOrder = "status"
	// SortCompany and SortPosition order an applicant's own applications.
	SortCompany  SortOrder = "company"
	SortPosition SortOrder = "position"
)

// FilterApplications selects job applications by status ("" or "all" for any)
// and by a case-insensitive match on applicant name or email, then sorts them.
// Unknown orders keep the loaded order.
func (s State) FilterApplications(status model.ApplicationStatus, search string, order SortOrder) []model.Application {
	return filterApplications(s.Applications.JobApplications, status, search, applicantMatches, order)
}

// FilterUserApplications is FilterApplications over the caller's own
// applications, searching job title and company instead.
func (s State) FilterUserApplications(status model.ApplicationStatus, search string, order SortOrder) []model.Application {
	return filterApplications(s.Applications.UserApplications, status, search, jobMatches, order)
}

func filterApplications(
	apps []model.Application,
	status model.ApplicationStatus,
	search string,
	matches func(model.Application, string) bool,
	order SortOrder,
) []model.Application {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Application, 0, len(apps))
	for _, a := range apps {
		if status != "" && status != "all" && a.Status != status {
			continue
		}
		if search != "" && !matches(a, search) {
			continue
		}
		out = append(out, a)
	}

	switch order {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b model.Application) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortOldest:
		slices.SortStableFunc(out, func(a, b model.Application) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortName:
		slices.SortStableFunc(out, func(a, b model.Application) int {
			return cmp.Compare(strings.ToLower(applicantName(a)), strings.ToLower(applicantName(b)))
		})
	case SortStatus:
		slices.SortStableFunc(out, func(a, b model.Application) int { return cmp.Compare(a.Status, b.Status) })
	case SortCompany, SortPosition:
		key := jobTitle
		if order == SortCompany {
			key = jobCompany
		}
		slices.SortStableFunc(out, func(a, b model.Application) int {
			return cmp.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
		})
	}
	return out
}

func jobTitle(a model.Application) string {
	if a.Job == nil {
		return ""
	}
	return a.Job.Title
}

func jobCompany(a model.Application) string {
	if a.Job == nil {
		return ""
	}
	return a.Job.Company
}

func jobMatches(a model.Application, lowerSearch string) bool {
	if a.Job == nil {
		return false
	}
	return strings.Contains(strings.ToLower(a.Job.Title), lowerSearch) ||
		strings.Contains(strings.ToLower(a.Job.Company), lowerSearch)
}

func applicantName(a model.Application) string {
	if a.Applicant == nil {
		return ""
	}
	return a.Applicant.Name
}

func applicantMatches(a model.Application, lowerSearch string) bool {
	if a.Applicant == nil {
		return false
	}
	return strings.Contains(strings.ToLower(a.Applicant.Name), lowerSearch) ||
		strings.Contains(strings.ToLower(a.Applicant.Email), lowerSearch)
}

// ParseSkills splits comma-separated input, trimming blanks and dropping empties.
func ParseSkills(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseFilterInput turns raw search form input into a filter patch that sets
// every field.
func ParseFilterInput(search, location, jobType, skills string) FilterPatch {
	search = strings.TrimSpace(search)
	location = strings.TrimSpace(location)
	jt := model.JobType(strings.TrimSpace(jobType))
	sk := ParseSkills(skills)
	return FilterPatch{Search: &search, Location: &location, JobType: &jt, Skills: &sk}
}

// JobFilter combines the stored filters with a page for FetchJobs.
func (f Filters) JobFilter(page, limit int) model.JobFilter {
	return model.JobFilter{
		Search:   f.Search,
		Location: f.Location,
		JobType:  f.JobType,
		Skills:   slices.Clone(f.Skills),
		Page:     page,
		Limit:    limit,
	}
}
