package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/auth"
	"jobboard/internal/logging"
	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/storage"
)

// RegisterInput is a new account. Role defaults to applicant; admins cannot
// register themselves.
type RegisterInput struct {
	Name        string     `json:"name" validate:"required,min=2,max=50"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=6"`
	Role        model.Role `json:"role" validate:"omitempty,oneof=applicant employer"`
	CompanyName string     `json:"company_name" validate:"omitempty,min=2,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput replaces the editable parts of an account. An empty Name keeps
// the current one. Resume fields in Profile are ignored; use UploadResume.
type ProfileInput struct {
	Name    string        `json:"name" validate:"omitempty,min=2,max=50"`
	Profile model.Profile `json:"profile"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService covers accounts and the caller's own profile.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, actor Actor) (*model.User, error)
	UpdateProfile(ctx context.Context, actor Actor, in ProfileInput) (*model.User, error)
	// UploadResume stores a resume on the applicant's profile. The previous one
	// is deleted unless an application still points at it.
	UploadResume(ctx context.Context, actor Actor, up storage.ResumeUpload) (*model.User, error)
}

// AuthOptions tune password hashing and uploads.
type AuthOptions struct {
	BcryptCost     int
	ResumeMaxBytes int64
}

type authService struct {
	users  repository.UserRepository
	apps   repository.ApplicationRepository
	store  storage.Storage
	tokens *auth.TokenManager
	opts   AuthOptions
	log    *logging.Logger
}

func NewAuthService(
	users repository.UserRepository,
	apps repository.ApplicationRepository,
	store storage.Storage,
	tokens *auth.TokenManager,
	opts AuthOptions,
	log *logging.Logger,
) AuthService {
	if log == nil {
		log = logging.Default()
	}
	return &authService{users: users, apps: apps, store: store, tokens: tokens, opts: opts, log: log}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.Role == "" {
		in.Role = model.RoleApplicant
	}

	var v validation
	v.check(in)
	if in.Role == model.RoleEmployer && in.CompanyName == "" {
		v.add("company_name", "is required")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Role == model.RoleEmployer {
		u.Profile.CompanyName = in.CompanyName
	}

	stored, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", logging.Fields{"event": "user_registered", "user_id": stored.ID, "role": stored.Role})
	return s.issue(stored)
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	var v validation
	v.check(in)
	if err := v.err(); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = auth.CheckPassword("", in.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *authService) issue(u *model.User) (*AuthResult, error) {
	tok, err := s.tokens.Generate(u)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: tok, User: u}, nil
}

func (s *authService) Profile(ctx context.Context, actor Actor) (*model.User, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, actor Actor, in ProfileInput) (*model.User, error) {
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	in.Name = strings.TrimSpace(in.Name)
	p := in.Profile
	p.Skills = cleanList(p.Skills)
	p.Benefits = cleanList(p.Benefits)
	p.CompanyName = strings.TrimSpace(p.CompanyName)

	var v validation
	v.check(in)
	if len(p.Bio) > 500 {
		v.add("profile.bio", "cannot exceed 500 characters")
	}
	if u.Role == model.RoleEmployer {
		if n := len(p.CompanyName); n < 2 || n > 50 {
			v.add("profile.company_name", "must be between 2 and 50 characters")
		}
	}
	if p.FoundedYear < 0 {
		v.add("profile.founded_year", "must be at least 0")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	p.Resume, p.ResumeFilename = u.Profile.Resume, u.Profile.ResumeFilename
	u.Profile = p
	u.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return updated, nil
}

func (s *authService) UploadResume(ctx context.Context, actor Actor, up storage.ResumeUpload) (*model.User, error) {
	if actor.Role != model.RoleApplicant {
		return nil, ErrForbidden
	}
	u, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	info, err := storage.PutResume(ctx, s.store, up, s.opts.ResumeMaxBytes)
	if err != nil {
		return nil, uploadErr(err)
	}

	old := u.Profile.Resume
	u.Profile.Resume = info.Key
	u.Profile.ResumeFilename = path.Base(up.Filename)
	u.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	if old != "" && old != info.Key {
		s.releaseResume(ctx, old)
	}
	return updated, nil
}

// releaseResume deletes a replaced profile resume once no application
// references it. Applications submitted without a file share the profile key.
func (s *authService) releaseResume(ctx context.Context, key string) {
	refs, err := s.apps.FindByResume(ctx, key)
	if err != nil {
		s.log.Error("resume reference check failed", err, logging.Fields{"event": "storage_delete_skipped", "key": key})
		return
	}
	if len(refs) > 0 {
		s.log.Info("replaced resume kept", logging.Fields{
			"event":        "resume_kept",
			"key":          key,
			"applications": len(refs),
		})
		return
	}
	s.removeObjects(ctx, key)
}

// removeObjects deletes stored files best effort; failures are logged only.
func (s *authService) removeObjects(ctx context.Context, keys ...string) {
	removeObjects(ctx, s.store, s.log, keys)
}

func removeObjects(ctx context.Context, store storage.Storage, log *logging.Logger, keys []string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := store.Delete(ctx, k); err != nil {
			log.Error("object delete failed", err, logging.Fields{"event": "storage_delete_failed", "key": k})
		}
	}
}

// uploadErr turns resume checks into validation errors and wraps storage failures.
func uploadErr(err error) error {
	if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
		var v validation
		v.add("resume", err.Error())
		return v.err()
	}
	return fmt.Errorf("upload to storage: %w", err)
}
