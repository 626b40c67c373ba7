// Package state is the client-side store behind jobctl: three slices (auth,
// jobs, applications) changed only by dispatched actions, with async thunks that
// call the API and record the request lifecycle.
package state

import (
	"context"
	"slices"
	"sync"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

// API is the subset of *client.Client the thunks call.
type API interface {
	Login(ctx context.Context, creds client.Credentials) (*client.AuthResponse, error)
	Register(ctx context.Context, reg client.Registration) (*client.AuthResponse, error)
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*model.User, error)

	ListJobs(ctx context.Context, f model.JobFilter) (*client.JobList, error)
	GetJob(ctx context.Context, id string) (*model.Job, error)
	CreateJob(ctx context.Context, d client.JobDraft) (*model.Job, error)
	UpdateJob(ctx context.Context, id string, ch client.JobChanges) (*model.Job, error)
	DeleteJob(ctx context.Context, id string) error
	EmployerJobs(ctx context.Context, p client.Page) (*client.JobList, error)

	Apply(ctx context.Context, a client.Application) (*model.Application, error)
	UserApplications(ctx context.Context, userID string, p client.Page) (*client.ApplicationList, error)
	JobApplications(ctx context.Context, jobID string, status model.ApplicationStatus, p client.Page) (*client.ApplicationList, error)
	GetApplication(ctx context.Context, id string) (*model.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, ch client.StatusChange) (*model.Application, error)
}

var _ API = (*client.Client)(nil)

// Phase is the point of an async thunk an action reports. Plain reducers use Sync.
type Phase int

const (
	Sync Phase = iota
	Pending
	Fulfilled
	Rejected
)

// Action is a state change. Type is "<slice>/<name>", e.g. "jobs/fetchJobs".
// Payload carries the fulfilled result or the reducer argument; Error the
// rejection message.
type Action struct {
	Type    string
	Phase   Phase
	Payload any
	Error   string
}

// State is a snapshot of the whole store.
type State struct {
	Auth         AuthState
	Jobs         JobsState
	Applications ApplicationsState
}

func (s State) clone() State {
	s.Auth = s.Auth.clone()
	s.Jobs = s.Jobs.clone()
	s.Applications = s.Applications.clone()
	return s
}

// Store holds the state and notifies subscribers after every dispatch.
// It is safe for concurrent use.
type Store struct {
	api    API
	tokens client.TokenStore

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// New builds a store whose auth token starts from tokens.
func New(api API, tokens client.TokenStore) *Store {
	s := &Store{
		api:       api,
		tokens:    tokens,
		listeners: make(map[int]func(State)),
		state: State{
			Jobs:         initialJobs(),
			Applications: initialApplications(),
		},
	}
	if tok, err := tokens.Token(); err == nil {
		s.state.Auth.Token = tok
	}
	return s
}

// State returns a copy of the current state. The slices are copied; nested
// values such as a job's skills are shared and must be treated as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after each dispatch.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch runs a through every slice reducer and notifies subscribers.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state.Auth = reduceAuth(s.state.Auth, a)
	s.state.Jobs = reduceJobs(s.state.Jobs, a)
	s.state.Applications = reduceApplications(s.state.Applications, a)
	snapshot := s.state.clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.clone())
	}
}

// thunk dispatches the pending, fulfilled and rejected actions around call.
// Rejections carry the server's message or fallback.
func thunk[T any](s *Store, typ, fallback string, call func() (T, error)) (T, error) {
	s.Dispatch(Action{Type: typ, Phase: Pending})
	v, err := call()
	if err != nil {
		s.Dispatch(Action{Type: typ, Phase: Rejected, Error: client.Message(err, fallback)})
		return v, err
	}
	s.Dispatch(Action{Type: typ, Phase: Fulfilled, Payload: v})
	return v, nil
}

// replaceByID returns a copy of list with the element matching v's id replaced.
func replaceByID[T any](list []T, v T, id func(T) string) []T {
	i := slices.IndexFunc(list, func(x T) bool { return id(x) == id(v) })
	if i < 0 {
		return list
	}
	out := slices.Clone(list)
	out[i] = v
	return out
}

func prepend[T any](list []T, v T) []T {
	return append([]T{v}, list...)
}

func removeByID[T any](list []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, x := range list {
		if id(x) != target {
			out = append(out, x)
		}
	}
	return out
}

func jobID(j model.Job) string                 { return j.ID }
func applicationID(a model.Application) string { return a.ID }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
