package service

import (
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/logging"
)

func quietLog() *logging.Logger { return logging.New(io.Discard, time.UTC) }

func TestValidation(t *testing.T) {
	var v validation
	v.check(RegisterInput{Name: "J", Email: "not-an-email", Password: "123", Role: "admin"})
	err := v.err()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{
		"name":     "must be at least 2 characters",
		"email":    "must be a valid email address",
		"password": "must be at least 6 characters",
		"role":     "must be one of: applicant, employer",
	}, ve.Fields())
	assert.Contains(t, err.Error(), "password must be at least 6 characters")
}

func TestValidation_NestedAndPointer(t *testing.T) {
	neg := int64(-1)
	title := "ab"
	var v validation
	v.check(JobPatch{Title: &title, Salary: &SalaryInput{Min: &neg}})
	var ve *ValidationError
	require.ErrorAs(t, v.err(), &ve)
	assert.Equal(t, "must be at least 3 characters", ve.Fields()["title"])
	assert.Equal(t, "must be at least 0", ve.Fields()["salary.min"])
}

func TestValidation_Empty(t *testing.T) {
	var v validation
	v.check(LoginInput{Email: "a@b.io", Password: "x"})
	assert.NoError(t, v.err())
}

func TestNotFound(t *testing.T) {
	err := notFound(sql.ErrNoRows, "job")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "job not found")

	other := errors.New("boom")
	assert.Equal(t, other, notFound(other, "job"))
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: 10}, Page{}.normalize())
	assert.Equal(t, Page{Page: 3, Limit: 100}, Page{Page: 3, Limit: 500}.normalize())
	q := Page{Page: 3, Limit: 20}.query()
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 40, q.Offset)
}

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, cleanList([]string{" go ", "", "  ", "sql"}))
	assert.NotNil(t, cleanList(nil))
}

func TestValidationError_IsError(t *testing.T) {
	var err error = NewValidationError(
		&FieldError{Field: "title", Message: "is required"},
		&FieldError{Field: "location", Message: "is required"},
		&FieldError{Field: "title", Message: "must be at least 3 characters"},
	)
	assert.EqualError(t, err, "location is required; title is required; title must be at least 3 characters")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[string]string{"title": "is required", "location": "is required"}, ve.Fields())

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "title", fe.Field)
}
