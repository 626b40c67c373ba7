package service

import (
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not authorized to perform this action")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrAlreadyApplied     = errors.New("you have already applied for this job")
	ErrJobClosed          = errors.New("this job is no longer accepting applications")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
	ErrResumeMissing      = errors.New("resume not found")
)

// notFound maps a missing repository row onto ErrNotFound, prefixed with what.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

// FieldError is a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// ValidationError aggregates every problem found in one input.
type ValidationError struct {
	errs *multierror.Error
}

// NewValidationError reports fields as a single ValidationError.
func NewValidationError(fields ...*FieldError) *ValidationError {
	var v validation
	for _, fe := range fields {
		v.add(fe.Field, fe.Message)
	}
	if v.errs == nil {
		v.errs = &multierror.Error{}
	}
	v.errs.ErrorFormat = formatFieldErrors
	return &ValidationError{errs: v.errs}
}

func (e *ValidationError) Error() string { return e.errs.Error() }

func (e *ValidationError) Unwrap() error { return e.errs }

// Fields returns the first message reported for each field.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		var fe *FieldError
		if errors.As(err, &fe) {
			if _, ok := out[fe.Field]; !ok {
				out[fe.Field] = fe.Message
			}
		}
	}
	return out
}

func formatFieldErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// validation collects field errors for one input.
type validation struct {
	errs *multierror.Error
}

func (v *validation) add(field, msg string) {
	v.errs = multierror.Append(v.errs, &FieldError{Field: field, Message: msg})
}

// check runs the struct tags of s.
func (v *validation) check(s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		v.add("", err.Error())
		return
	}
	for _, fe := range ves {
		v.add(fieldPath(fe), fieldMessage(fe))
	}
}

func (v *validation) err() error {
	if v.errs == nil {
		return nil
	}
	v.errs.ErrorFormat = formatFieldErrors
	return &ValidationError{errs: v.errs}
}

// fieldPath drops the root struct name from the namespace, e.g. "salary.min".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("cannot exceed %s characters", fe.Param())
		}
		return "cannot exceed " + fe.Param()
	case "url":
		return "must be a valid URL"
	}
	return "is invalid"
}
