// Package cmd implements the jobctl subcommands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/mitchellh/cli"

	"jobboard/internal/client"
	"jobboard/internal/config"
	"jobboard/internal/model"
	"jobboard/internal/state"
)

var (
	errNotLoggedIn    = errors.New("not logged in, run 'jobctl login' first")
	errSessionExpired = errors.New("session expired, run 'jobctl login' again")
)

// Meta is shared by every command: the UI, the client configuration and the
// lazily built API client and store.
type Meta struct {
	Ui     cli.Ui
	Config *config.ClientConfig
	Tokens client.TokenStore

	once   sync.Once
	client *client.Client
	store  *state.Store
}

func (m *Meta) init() {
	m.once.Do(func() {
		m.client = client.New(m.Config.APIURL, m.Config.Timeout, m.Tokens)
		m.store = state.New(m.client, m.Tokens)
	})
}

func (m *Meta) Client() *client.Client {
	m.init()
	return m.client
}

func (m *Meta) Store() *state.Store {
	m.init()
	return m.store
}

// session restores the logged-in user and checks it holds one of roles. No
// roles accepts any authenticated user.
func (m *Meta) session(ctx context.Context, roles ...model.Role) (*model.User, error) {
	st := m.Store()
	tok := st.State().Auth.Token
	if tok == "" {
		return nil, errNotLoggedIn
	}
	if client.IsTokenExpired(tok) {
		_ = st.Logout()
		return nil, errSessionExpired
	}
	if _, err := st.LoadUser(ctx); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, errSessionExpired
		}
		return nil, err
	}

	for _, role := range roles {
		if st.Authorize(role) == state.Allow {
			return st.State().Auth.User, nil
		}
	}
	switch st.Authorize("") {
	case state.Allow:
		if len(roles) == 0 {
			return st.State().Auth.User, nil
		}
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		return nil, fmt.Errorf("this command requires the %s role", strings.Join(names, " or "))
	default:
		return nil, errNotLoggedIn
	}
}

// fail reports err, including per-field validation reasons, and returns the exit code.
func (m *Meta) fail(err error) int {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		m.Ui.Error("Error: " + err.Error())
		return 1
	}
	m.Ui.Error("Error: " + apiErr.Message)
	for _, field := range slices.Sorted(maps.Keys(apiErr.Fields)) {
		m.Ui.Error(fmt.Sprintf("  %s: %s", field, apiErr.Fields[field]))
	}
	return 1
}

// parse parses args and requires exactly nargs positional arguments.
func (m *Meta) parse(f *flag.FlagSet, args []string, nargs int) bool {
	if err := f.Parse(args); err != nil {
		m.Ui.Error(fmt.Sprintf("Error parsing command-line flags: %s", err))
		return false
	}
	if f.NArg() != nargs {
		m.Ui.Error(fmt.Sprintf("expected exactly %d argument(s) (%d given): %q", nargs, f.NArg(), f.Args()))
		return false
	}
	return true
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func defaultFlagSet(cmdName string) *flag.FlagSet {
	f := flag.NewFlagSet(cmdName, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	f.Usage = func() {}
	return f
}

func helpForFlags(fs *flag.FlagSet) string {
	buf := &strings.Builder{}
	buf.WriteString("Options:\n\n")

	w := fs.Output()
	defer fs.SetOutput(w)
	fs.SetOutput(buf)
	fs.PrintDefaults()

	return buf.String()
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	out := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { out[f.Name] = true })
	return out
}

// table renders rows as aligned columns under header.
func table(header []string, rows [][]string) string {
	buf := &strings.Builder{}
	w := tabwriter.NewWriter(buf, 2, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

func usage(synopsis, usageLine string, fs *flag.FlagSet) string {
	helpText := "\nUsage: jobctl " + usageLine + "\n\n" + synopsis + "\n\n"
	if fs != nil {
		helpText += helpForFlags(fs)
	}
	return strings.TrimSpace(helpText)
}

// Commands returns the command table for cli.CLI.
func Commands(m *Meta) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"login":              func() (cli.Command, error) { return &LoginCommand{Meta: m}, nil },
		"register":           func() (cli.Command, error) { return &RegisterCommand{Meta: m}, nil },
		"logout":             func() (cli.Command, error) { return &LogoutCommand{Meta: m}, nil },
		"whoami":             func() (cli.Command, error) { return &WhoamiCommand{Meta: m}, nil },
		"profile":            func() (cli.Command, error) { return &ProfileCommand{Meta: m}, nil },
		"resume upload":      func() (cli.Command, error) { return &ResumeUploadCommand{Meta: m}, nil },
		"resume download":    func() (cli.Command, error) { return &ResumeDownloadCommand{Meta: m}, nil },
		"jobs":               func() (cli.Command, error) { return &JobsCommand{Meta: m}, nil },
		"job":                func() (cli.Command, error) { return &JobCommand{Meta: m}, nil },
		"post-job":           func() (cli.Command, error) { return &PostJobCommand{Meta: m}, nil },
		"update-job":         func() (cli.Command, error) { return &UpdateJobCommand{Meta: m}, nil },
		"delete-job":         func() (cli.Command, error) { return &DeleteJobCommand{Meta: m}, nil },
		"apply":              func() (cli.Command, error) { return &ApplyCommand{Meta: m}, nil },
		"applications":       func() (cli.Command, error) { return &ApplicationsCommand{Meta: m}, nil },
		"manage":             func() (cli.Command, error) { return &ManageCommand{Meta: m}, nil },
		"set-status":         func() (cli.Command, error) { return &SetStatusCommand{Meta: m}, nil },
		"dashboard":          func() (cli.Command, error) { return &DashboardCommand{Meta: m}, nil },
		"admin users":        func() (cli.Command, error) { return &AdminUsersCommand{Meta: m}, nil },
		"admin delete-user":  func() (cli.Command, error) { return &AdminDeleteUserCommand{Meta: m}, nil },
		"admin applications": func() (cli.Command, error) { return &AdminApplicationsCommand{Meta: m}, nil },
	}
}
