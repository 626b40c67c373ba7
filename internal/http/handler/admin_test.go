package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/service"
	serviceMocks "jobboard/internal/service/mocks"
)

func TestAdminHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAdminService)
	admin := service.Actor{UserID: "root", Role: model.RoleAdmin}
	app := newApp()
	app.Use(as(admin.UserID, admin.Role))
	app.Get("/stats", AdminStats(mockSvc))
	app.Get("/users", AdminUsers(mockSvc))
	app.Delete("/users/:id", AdminDeleteUser(mockSvc))
	app.Get("/applications", AdminApplications(mockSvc))

	t.Run("stats", func(t *testing.T) {
		st := &service.AdminStats{
			Stats:                model.Stats{TotalUsers: 3, TotalJobs: 2, ActiveJobs: 1, TotalApplications: 4},
			ApplicationsByStatus: map[model.ApplicationStatus]int{model.StatusApplied: 4},
		}
		mockSvc.On("Stats", mock.Anything, admin).Return(st, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got struct {
			Stats map[string]any `json:"stats"`
		}
		json.NewDecoder(resp.Body).Decode(&got)
		assert.EqualValues(t, 3, got.Stats["total_users"])
		assert.Contains(t, got.Stats, "applications_by_status")
		mockSvc.AssertExpectations(t)
	})

	t.Run("users filtered", func(t *testing.T) {
		mockSvc.On("ListUsers", mock.Anything, admin, "ada", model.RoleEmployer, service.Page{Page: 1, Limit: 50}).
			Return(&service.UserList{Users: []model.User{{ID: "u-1"}}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/users?search=ada&role=employer&page=1&limit=50", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("users bad role", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/users?role=root", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ROLE", decodeError(t, resp).Error.Code)
	})

	t.Run("delete self", func(t *testing.T) {
		mockSvc.On("DeleteUser", mock.Anything, admin, "root").Return(service.ErrSelfDelete).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/users/root", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "SELF_DELETE", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("delete user", func(t *testing.T) {
		mockSvc.On("DeleteUser", mock.Anything, admin, "u-1").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/users/u-1", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("applications bad status", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications?status=pending", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_STATUS", decodeError(t, resp).Error.Code)
	})

	t.Run("applications", func(t *testing.T) {
		mockSvc.On("ListApplications", mock.Anything, admin, model.StatusHired, service.Page{}).
			Return(&service.ApplicationList{Applications: []model.Application{}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/applications?status=hired", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
