// Package storage contains object storage abstractions for S3-compatible backends.
// Implementations stream content and never touch local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResumePrefix is the key prefix every uploaded resume lives under.
const ResumePrefix = "resumes/"

var (
	ErrUnsupportedType = errors.New("only PDF, DOC and DOCX files are allowed")
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
	ErrInvalidKey      = errors.New("invalid object key")
)

// resumeTypes maps allowed resume extensions to their content types.
var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// ResumeUpload describes an incoming resume file.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CheckResume validates the extension and size of u against maxBytes and returns
// the content type to store it with. A maxBytes of zero disables the size check.
func CheckResume(u ResumeUpload, maxBytes int64) (string, error) {
	ct, ok := resumeTypes[strings.ToLower(path.Ext(u.Filename))]
	if !ok {
		return "", ErrUnsupportedType
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return "", ErrTooLarge
	}
	return ct, nil
}

// NewResumeKey returns a fresh object key for a resume with the extension of filename.
func NewResumeKey(filename string) string {
	return ResumePrefix + uuid.New().String() + strings.ToLower(path.Ext(filename))
}

// ValidResumeKey reports whether key names an object under ResumePrefix without
// escaping it.
func ValidResumeKey(key string) bool {
	if !strings.HasPrefix(key, ResumePrefix) || strings.Contains(key, "..") {
		return false
	}
	name := strings.TrimPrefix(key, ResumePrefix)
	return name != "" && !strings.Contains(name, "/")
}

// PutResume checks u and uploads it under a new resume key, returning the stored info.
func PutResume(ctx context.Context, s Storage, u ResumeUpload, maxBytes int64) (ObjectInfo, error) {
	ct, err := CheckResume(u, maxBytes)
	if err != nil {
		return ObjectInfo{}, err
	}
	return s.Put(ctx, NewResumeKey(u.Filename), u.Body, PutObjectOptions{
		Size:        u.Size,
		ContentType: ct,
		Metadata:    map[string]string{"original-filename": path.Base(u.Filename)},
	})
}
