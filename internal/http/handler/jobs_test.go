package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobboard/internal/http/middleware"
	"jobboard/internal/model"
	"jobboard/internal/service"
	serviceMocks "jobboard/internal/service/mocks"
)

func TestListJobs(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	app := newApp()
	app.Get("/jobs", ListJobs(mockSvc))

	t.Run("parses filters", func(t *testing.T) {
		min, max := int64(50000), int64(90000)
		want := model.JobFilter{
			Search:     "golang",
			Location:   "Remote",
			JobType:    model.JobTypeContract,
			Skills:     []string{"go", "sql"},
			SalaryMin:  &min,
			SalaryMax:  &max,
			DatePosted: 7,
			Company:    "Acme",
			Page:       2,
			Limit:      5,
		}
		res := &service.JobList{
			Jobs:       []model.Job{{ID: "j-1", Title: "Go Dev"}},
			Pagination: model.NewPagination(2, 5, 6),
		}
		mockSvc.On("List", mock.Anything, service.Actor{}, want).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodGet,
			"/jobs?search=golang&location=Remote&jobType=contract&skills=go,sql&salaryMin=50000&salaryMax=90000&datePosted=7&company=Acme&page=2&limit=5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got service.JobList
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Len(t, got.Jobs, 1)
		assert.Equal(t, model.Pagination{Current: 2, Pages: 2, Total: 6}, got.Pagination)
		mockSvc.AssertExpectations(t)
	})

	badQueries := map[string]string{
		"jobType=remote":   "INVALID_JOB_TYPE",
		"salaryMin=lots":   "INVALID_SALARY",
		"salaryMax=1e9x":   "INVALID_SALARY",
		"datePosted=today": "INVALID_DATE_POSTED",
		"page=first":       "INVALID_PAGE",
		"limit=abc":        "INVALID_LIMIT",
	}
	for q, code := range badQueries {
		t.Run(q, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/jobs?"+q, nil))

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, code, decodeError(t, resp).Error.Code)
		})
	}

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.Actor{}, model.JobFilter{}).Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/jobs", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListJobs_Caller(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	app := newApp()
	app.Get("/jobs", middleware.OptionalAuth(stubVerifier{
		"emp-token": {UserID: "emp-1", Role: model.RoleEmployer},
	}), ListJobs(mockSvc))

	tests := []struct {
		name   string
		header string
		actor  service.Actor
	}{
		{"anonymous", "", service.Actor{}},
		{"employer token", "Bearer emp-token", service.Actor{UserID: "emp-1", Role: model.RoleEmployer}},
		{"bad token stays anonymous", "Bearer forged", service.Actor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := model.Job{ID: "j-9", Status: model.JobStatusClosed, EmployerID: "emp-1"}
			mockSvc.On("List", mock.Anything, tt.actor, model.JobFilter{}).
				Return(&service.JobList{Jobs: []model.Job{closed}}, nil).Once()

			req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGetJob(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	app := newApp()
	app.Get("/jobs/:id", GetJob(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "j-1").Return(&model.Job{ID: "j-1", Title: "Go Dev"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/jobs/j-1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got struct {
			Job model.Job `json:"job"`
		}
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, "Go Dev", got.Job.Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "missing").Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/jobs/missing", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateJob(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	emp := service.Actor{UserID: "e-1", Role: model.RoleEmployer}
	app := newApp()
	app.Post("/jobs", as(emp.UserID, emp.Role), CreateJob(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, emp, mock.MatchedBy(func(in service.JobInput) bool {
			return in.Title == "Go Dev" && in.Salary.Min != nil && *in.Salary.Min == 1000 && len(in.Skills) == 1
		})).Return(&model.Job{ID: "j-1", Title: "Go Dev", EmployerID: "e-1"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/jobs",
			`{"title":"Go Dev","description":"Build services","company":"Acme","location":"Remote","salary":{"min":1000},"skills":["go"]}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, emp, mock.Anything).Return(nil, service.ErrForbidden).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/jobs", `{"title":"Go Dev"}`))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateJob(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	emp := service.Actor{UserID: "e-1", Role: model.RoleEmployer}
	app := newApp()
	app.Put("/jobs/:id", as(emp.UserID, emp.Role), UpdateJob(mockSvc))

	closed := model.JobStatusClosed
	mockSvc.On("Update", mock.Anything, emp, "j-1", mock.MatchedBy(func(p service.JobPatch) bool {
		return p.Title == nil && p.Status != nil && *p.Status == closed
	})).Return(&model.Job{ID: "j-1", Status: closed}, nil).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPut, "/jobs/j-1", `{"status":"closed"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteJob(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	emp := service.Actor{UserID: "e-1", Role: model.RoleEmployer}
	app := newApp()
	app.Delete("/jobs/:id", as(emp.UserID, emp.Role), DeleteJob(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, emp, "j-1").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/jobs/j-1", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not owner", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, emp, "j-2").Return(service.ErrForbidden).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/jobs/j-2", nil))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestEmployerJobs(t *testing.T) {
	mockSvc := new(serviceMocks.MockJobService)
	emp := service.Actor{UserID: "e-1", Role: model.RoleEmployer}
	app := newApp()
	app.Get("/mine", as(emp.UserID, emp.Role), EmployerJobs(mockSvc))

	mockSvc.On("ListByEmployer", mock.Anything, emp, service.Page{Page: 3, Limit: 20}).
		Return(&service.JobList{Jobs: []model.Job{}, Pagination: model.NewPagination(3, 20, 0)}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/mine?page=3&limit=20", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}
