package handler

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/http/middleware"
	"jobboard/internal/service"
	"jobboard/internal/storage"
)

// actor builds the service caller from the claims RequireAuth stored.
func actor(c *fiber.Ctx) service.Actor {
	cl := middleware.ClaimsFrom(c)
	if cl == nil {
		return service.Actor{}
	}
	return service.Actor{UserID: cl.UserID, Role: cl.Role}
}

// queryInt parses an optional integer query parameter; absent yields def.
func queryInt(c *fiber.Ctx, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// queryInt64 parses an optional int64 query parameter; absent yields nil.
func queryInt64(c *fiber.Ctx, key string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// badRequest is a malformed request detected before reaching a service.
type badRequest struct {
	code    string
	message string
}

func (e *badRequest) Error() string { return e.message }

// pageFrom reads page and limit. Out-of-range values are normalized by the services.
func pageFrom(c *fiber.Ctx) (service.Page, error) {
	page, ok := queryInt(c, "page", 0)
	if !ok {
		return service.Page{}, &badRequest{"INVALID_PAGE", "invalid page"}
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return service.Page{}, &badRequest{"INVALID_LIMIT", "invalid limit"}
	}
	return service.Page{Page: page, Limit: limit}, nil
}

// parseBody decodes the JSON or form body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return &badRequest{"INVALID_BODY", "invalid request body"}
	}
	return nil
}

// openUpload turns a multipart file into a resume upload. The caller closes the file.
func openUpload(fh *multipart.FileHeader) (storage.ResumeUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.ResumeUpload{}, nil, err
	}
	return storage.ResumeUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEMultipartForm)
}
