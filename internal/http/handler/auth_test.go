package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobboard/internal/model"
	"jobboard/internal/service"
	serviceMocks "jobboard/internal/service/mocks"
	"jobboard/internal/storage"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := newApp()
	app.Post("/register", Register(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: model.RoleEmployer, CompanyName: "Acme"}
		res := &service.AuthResult{Token: "tok", User: &model.User{ID: "u-1", Email: in.Email, Role: in.Role}}
		mockSvc.On("Register", mock.Anything, in).Return(res, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register",
			`{"name":"Ada","email":"ada@example.com","password":"secret1","role":"employer","company_name":"Acme"}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got service.AuthResult
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, "tok", got.Token)
		assert.Equal(t, "u-1", got.User.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", `{"name":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("email taken", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrEmailTaken).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "EMAIL_TAKEN", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := newApp()
	app.Post("/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.LoginInput{Email: "ada@example.com", Password: "secret1"}
		mockSvc.On("Login", mock.Anything, in).Return(&service.AuthResult{Token: "tok", User: &model.User{ID: "u-1"}}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", `{"email":"ada@example.com","password":"secret1"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", `{"email":"ada@example.com","password":"nope"}`))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestProfile(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	me := service.Actor{UserID: "u-1", Role: model.RoleApplicant}
	app := newApp()
	app.Get("/profile", as(me.UserID, me.Role), GetProfile(mockSvc))
	app.Put("/profile", as(me.UserID, me.Role), UpdateProfile(mockSvc))

	t.Run("get", func(t *testing.T) {
		mockSvc.On("Profile", mock.Anything, me).Return(&model.User{ID: "u-1", Name: "Ada"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got struct {
			User model.User `json:"user"`
		}
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, "Ada", got.User.Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("update", func(t *testing.T) {
		in := service.ProfileInput{Name: "Ada L", Profile: model.Profile{Bio: "hi", Skills: []string{"go"}}}
		mockSvc.On("UpdateProfile", mock.Anything, me, in).Return(&model.User{ID: "u-1", Name: "Ada L"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/profile", `{"name":"Ada L","profile":{"bio":"hi","skills":["go"]}}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadResume(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	me := service.Actor{UserID: "u-1", Role: model.RoleApplicant}
	app := newApp()
	app.Put("/profile/resume", as(me.UserID, me.Role), UploadResume(mockSvc))

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("resume", "cv.pdf")
		part.Write([]byte("%PDF-1.4"))
		writer.Close()

		mockSvc.On("UploadResume", mock.Anything, me, mock.MatchedBy(func(up storage.ResumeUpload) bool {
			return up.Filename == "cv.pdf" && up.Size == int64(len("%PDF-1.4"))
		})).Return(&model.User{ID: "u-1", Profile: model.Profile{Resume: "resumes/x.pdf"}}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/profile/resume", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/profile/resume", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("resume", "cv.exe")
		part.Write([]byte("MZ"))
		writer.Close()

		mockSvc.On("UploadResume", mock.Anything, me, mock.Anything).
			Return(nil, service.NewValidationError(&service.FieldError{Field: "resume", Message: storage.ErrUnsupportedType.Error()})).Once()

		req := httptest.NewRequest(http.MethodPut, "/profile/resume", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		got := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", got.Error.Code)
		assert.Equal(t, storage.ErrUnsupportedType.Error(), got.Error.Fields["resume"])
		mockSvc.AssertExpectations(t)
	})
}
