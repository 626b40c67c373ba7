package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

func TestApplyForJob(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{apps: &client.ApplicationList{Applications: []model.Application{{ID: "a-1", JobID: "j-1"}}}}
	s := New(api, &client.MemoryTokenStore{})
	_, err := s.FetchUserApplications(ctx, "u-1", client.Page{})
	require.NoError(t, err)

	api.app = &model.Application{ID: "a-2", JobID: "j-2", Status: model.StatusApplied}
	_, err = s.ApplyForJob(ctx, client.Application{JobID: "j-2"})
	require.NoError(t, err)

	st := s.State()
	require.Len(t, st.Applications.UserApplications, 2)
	assert.Equal(t, "a-2", st.Applications.UserApplications[0].ID)
	assert.True(t, st.HasApplied("j-2"))
	assert.False(t, st.HasApplied("j-3"))

	api.err = apiError("You have already applied for this job")
	_, err = s.ApplyForJob(ctx, client.Application{JobID: "j-2"})
	require.Error(t, err)
	assert.Equal(t, "You have already applied for this job", s.State().Applications.Error)
	s.ClearApplicationsError()
	assert.Empty(t, s.State().Applications.Error)
}

func TestFetchJobApplications_Rejected(t *testing.T) {
	s := New(&fakeAPI{err: errBoom}, &client.MemoryTokenStore{})
	_, err := s.FetchJobApplications(context.Background(), "j-1", "", client.Page{})
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch job applications", s.State().Applications.Error)
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		apps: &client.ApplicationList{Applications: []model.Application{
			{ID: "a-1", Status: model.StatusApplied},
			{ID: "a-2", Status: model.StatusApplied},
		}},
		app: &model.Application{ID: "a-2", Status: model.StatusApplied},
	}
	s := New(api, &client.MemoryTokenStore{})
	_, err := s.FetchJobApplications(ctx, "j-1", "", client.Page{})
	require.NoError(t, err)
	_, err = s.FetchApplicationByID(ctx, "a-2")
	require.NoError(t, err)

	api.app = &model.Application{ID: "a-2", Status: model.StatusHired}
	_, err = s.UpdateApplicationStatus(ctx, "a-2", client.StatusChange{Status: model.StatusHired})
	require.NoError(t, err)

	st := s.State().Applications
	assert.Equal(t, model.StatusApplied, st.JobApplications[0].Status)
	assert.Equal(t, model.StatusHired, st.JobApplications[1].Status)
	assert.Equal(t, model.StatusHired, st.CurrentApplication.Status)

	api.err = errBoom
	_, err = s.UpdateApplicationStatus(ctx, "a-1", client.StatusChange{Status: model.StatusRejected})
	require.Error(t, err)
	assert.Empty(t, s.State().Applications.Error)

	s.ClearCurrentApplication()
	s.ClearJobApplications()
	st = s.State().Applications
	assert.Nil(t, st.CurrentApplication)
	assert.Empty(t, st.JobApplications)
}

func TestFilterApplications(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	st := State{Applications: ApplicationsState{JobApplications: []model.Application{
		{ID: "a-1", Status: model.StatusApplied, CreatedAt: base, Applicant: &model.UserSummary{Name: "Charlie", Email: "c@x.io"}},
		{ID: "a-2", Status: model.StatusHired, CreatedAt: base.Add(time.Hour), Applicant: &model.UserSummary{Name: "alice", Email: "alice@x.io"}},
		{ID: "a-3", Status: model.StatusApplied, CreatedAt: base.Add(2 * time.Hour), Applicant: &model.UserSummary{Name: "Bob", Email: "bob@corp.io"}},
	}}}

	appIDs := func(apps []model.Application) []string {
		out := []string{}
		for _, a := range apps {
			out = append(out, a.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		status model.ApplicationStatus
		search string
		order  SortOrder
		want   []string
	}{
		{"all newest", "all", "", SortNewest, []string{"a-3", "a-2", "a-1"}},
		{"oldest", "", "", SortOldest, []string{"a-1", "a-2", "a-3"}},
		{"by name ignores case", "", "", SortName, []string{"a-2", "a-3", "a-1"}},
		{"by status", "", "", SortStatus, []string{"a-1", "a-3", "a-2"}},
		{"status filter", model.StatusApplied, "", SortNewest, []string{"a-3", "a-1"}},
		{"search email", "", "CORP", SortNewest, []string{"a-3"}},
		{"search name", "", "ali", SortNewest, []string{"a-2"}},
		{"no match", model.StatusRejected, "", SortNewest, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appIDs(st.FilterApplications(tt.status, tt.search, tt.order)))
		})
	}
}

func TestFilterUserApplications(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	st := State{Applications: ApplicationsState{UserApplications: []model.Application{
		{ID: "a-1", Status: model.StatusApplied, CreatedAt: base, Job: &model.JobSummary{Title: "Go Developer", Company: "zeta"}},
		{ID: "a-2", Status: model.StatusRejected, CreatedAt: base.Add(time.Hour), Job: &model.JobSummary{Title: "Backend Engineer", Company: "Acme"}},
		{ID: "a-3", Status: model.StatusApplied, CreatedAt: base.Add(2 * time.Hour), Job: &model.JobSummary{Title: "Analyst", Company: "Globex"}},
		{ID: "a-4", Status: model.StatusApplied, CreatedAt: base.Add(3 * time.Hour)},
	}}}

	ids := func(apps []model.Application) []string {
		out := []string{}
		for _, a := range apps {
			out = append(out, a.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		status model.ApplicationStatus
		search string
		order  SortOrder
		want   []string
	}{
		{"newest", "all", "", SortNewest, []string{"a-4", "a-3", "a-2", "a-1"}},
		{"by company", "", "", SortCompany, []string{"a-4", "a-2", "a-3", "a-1"}},
		{"by position", "", "", SortPosition, []string{"a-4", "a-3", "a-2", "a-1"}},
		{"search title", "", "developer", SortNewest, []string{"a-1"}},
		{"search company", "", "ACME", SortNewest, []string{"a-2"}},
		{"status and search", model.StatusApplied, "e", SortOldest, []string{"a-1", "a-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(st.FilterUserApplications(tt.status, tt.search, tt.order)))
		})
	}
}

func TestStats(t *testing.T) {
	st := State{
		Applications: ApplicationsState{UserApplications: []model.Application{
			{Status: model.StatusApplied}, {Status: model.StatusShortlisted}, {Status: model.StatusHired},
		}},
		Jobs: JobsState{EmployerJobs: []model.Job{
			{Status: model.JobStatusActive, ApplicationCount: 3},
			{Status: model.JobStatusClosed, ApplicationCount: 0},
			{Status: model.JobStatusActive, ApplicationCount: 2},
		}},
	}

	c := st.ApplicationStats()
	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 1, c.ByStatus[model.StatusHired])
	assert.Equal(t, 0, c.ByStatus[model.StatusRejected])
	assert.Equal(t, 67, c.SuccessRate())
	assert.Equal(t, 0, StatusCounts{}.SuccessRate())

	assert.Equal(t, EmployerStats{TotalJobs: 3, ActiveJobs: 2, TotalApplications: 5, AvgApplicationsPerJob: 2}, st.EmployerStats())
	assert.Equal(t, EmployerStats{}, State{}.EmployerStats())
}

func TestAuthorize(t *testing.T) {
	employer := &model.User{Role: model.RoleEmployer}
	tests := []struct {
		name     string
		auth     AuthState
		required model.Role
		want     Access
	}{
		{"loading", AuthState{IsLoading: true}, "", Wait},
		{"anonymous", AuthState{}, "", RedirectLogin},
		{"any role", AuthState{IsAuthenticated: true, User: employer}, "", Allow},
		{"matching role", AuthState{IsAuthenticated: true, User: employer}, model.RoleEmployer, Allow},
		{"wrong role", AuthState{IsAuthenticated: true, User: employer}, model.RoleAdmin, RedirectDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.auth.Authorize(tt.required))
		})
	}
}
