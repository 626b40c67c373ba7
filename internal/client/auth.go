package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"jobboard/internal/model"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Role        model.Role `json:"role,omitempty"`
	CompanyName string     `json:"company_name,omitempty"`
}

// AuthResponse is returned by Login and Register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// ProfileUpdate replaces the editable profile. An empty Name keeps the current one.
type ProfileUpdate struct {
	Name    string        `json:"name,omitempty"`
	Profile model.Profile `json:"profile"`
}

// File is an upload read from Body.
type File struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type userEnvelope struct {
	User *model.User `json:"user"`
}

// Login stores the returned token on success.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register stores the returned token on success.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: body}, &out); err != nil {
		return nil, err
	}
	if err := c.Tokens.SetToken(out.Token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &out, nil
}

// Logout forgets the stored token. The API keeps no session to end.
func (c *Client) Logout() error {
	return c.Tokens.Clear()
}

func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var out userEnvelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/profile"}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*model.User, error) {
	var out userEnvelope
	if err := c.do(ctx, request{method: http.MethodPut, path: "/auth/profile", body: upd}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// UploadResume replaces the caller's profile resume.
func (c *Client) UploadResume(ctx context.Context, f File) (*model.User, error) {
	body, contentType, err := multipartBody(nil, "resume", &f)
	if err != nil {
		return nil, err
	}
	var out userEnvelope
	r := request{method: http.MethodPut, path: "/auth/profile/resume", raw: body, contentType: contentType}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// multipartBody encodes fields in order followed by an optional file part.
func multipartBody(fields [][2]string, fileField string, f *File) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, kv := range fields {
		if kv[1] == "" {
			continue
		}
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	if f != nil {
		part, err := createFilePart(w, fileField, f)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return nil, "", fmt.Errorf("read %s: %w", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func createFilePart(w *multipart.Writer, field string, f *File) (io.Writer, error) {
	if f.ContentType == "" {
		return w.CreateFormFile(field, f.Filename)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Filename))
	h.Set("Content-Type", f.ContentType)
	return w.CreatePart(h)
}
