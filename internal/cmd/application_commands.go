package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"jobboard/internal/client"
	"jobboard/internal/model"
	"jobboard/internal/state"
)

type ApplyCommand struct {
	Meta *Meta

	coverLetter string
	notes       string
	resume      string
}

func (c *ApplyCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("apply")
	fs.StringVar(&c.coverLetter, "cover-letter", "", "cover letter text")
	fs.StringVar(&c.notes, "notes", "", "additional notes for the employer")
	fs.StringVar(&c.resume, "resume", "", "resume file to attach (PDF, DOC or DOCX)")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *ApplyCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleApplicant); err != nil {
		return c.Meta.fail(err)
	}
	app := client.Application{JobID: f.Arg(0), CoverLetter: c.coverLetter, Notes: c.notes}
	if c.resume != "" {
		file, fh, err := openFile(c.resume)
		if err != nil {
			return c.Meta.fail(err)
		}
		defer fh.Close()
		app.Resume = file
	}

	a, err := c.Meta.Store().ApplyForJob(ctx, app)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Application submitted") + " " + statusBadge(a.Status))
	return 0
}

func (c *ApplyCommand) Help() string {
	return usage(c.Synopsis(), "apply [-cover-letter=<text>] [-resume=<file>] <job-id>", c.flags())
}

func (c *ApplyCommand) Synopsis() string { return "Apply for a job (applicants)" }

type ApplicationsCommand struct {
	Meta *Meta

	page, limit    int
	status, search string
	sort           string
}

func (c *ApplicationsCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("applications")
	fs.IntVar(&c.page, "page", 1, "page number")
	fs.IntVar(&c.limit, "limit", 10, "applications per page")
	fs.StringVar(&c.status, "status", "all", "show only applications in this status")
	fs.StringVar(&c.search, "search", "", "match job title or company")
	fs.StringVar(&c.sort, "sort", string(state.SortNewest), "newest, oldest, company or position")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *ApplicationsCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	u, err := c.Meta.session(ctx, model.RoleApplicant)
	if err != nil {
		return c.Meta.fail(err)
	}
	st := c.Meta.Store()
	res, err := st.FetchUserApplications(ctx, u.ID, client.Page{Page: c.page, Limit: c.limit})
	if err != nil {
		return c.Meta.fail(err)
	}
	if len(res.Applications) == 0 {
		c.Meta.Ui.Output("You have not applied for any jobs yet")
		return 0
	}
	snap := st.State()
	apps := snap.FilterUserApplications(model.ApplicationStatus(c.status), c.search, state.SortOrder(c.sort))
	if len(apps) == 0 {
		c.Meta.Ui.Output("No applications match your filters")
	} else {
		c.Meta.Ui.Output(applicationTable(apps, false))
	}
	c.Meta.Ui.Output("\n" + formatCounts(snap.ApplicationStats()))
	return 0
}

func (c *ApplicationsCommand) Help() string {
	return usage(c.Synopsis(), "applications [-status=<status>] [-search=<text>] [-sort=<order>] [-page=<n>]", c.flags())
}

func (c *ApplicationsCommand) Synopsis() string { return "List your applications (applicants)" }

// applicationTable lists applications from the applicant's side, or with
// applicant details when forEmployer is set.
func applicationTable(apps []model.Application, forEmployer bool) string {
	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		if forEmployer {
			name, email := "-", "-"
			if a.Applicant != nil {
				name, email = a.Applicant.Name, a.Applicant.Email
			}
			rows = append(rows, []string{a.ID, name, email, statusBadge(a.Status), formatAge(a.CreatedAt), orDash(a.Resume)})
			continue
		}
		title, company := a.JobID, "-"
		if a.Job != nil {
			title, company = a.Job.Title, a.Job.Company
		}
		rows = append(rows, []string{a.ID, title, company, statusBadge(a.Status), formatAge(a.CreatedAt)})
	}
	if forEmployer {
		return table([]string{"ID", "APPLICANT", "EMAIL", "STATUS", "APPLIED", "RESUME"}, rows)
	}
	return table([]string{"ID", "JOB", "COMPANY", "STATUS", "APPLIED"}, rows)
}

func formatCounts(c state.StatusCounts) string {
	parts := []string{fmt.Sprintf("Total: %d", c.Total)}
	for _, s := range model.ApplicationStatuses {
		parts = append(parts, fmt.Sprintf("%s: %d", statusBadge(s), c.ByStatus[s]))
	}
	return strings.Join(parts, "  ")
}

type ManageCommand struct {
	Meta *Meta

	status string
	search string
	sort   string
}

func (c *ManageCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("manage")
	fs.StringVar(&c.status, "status", "all", "all, applied, shortlisted, rejected or hired")
	fs.StringVar(&c.search, "search", "", "match applicant name or email")
	fs.StringVar(&c.sort, "sort", string(state.SortNewest), "newest, oldest, name or status")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *ManageCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	status := model.ApplicationStatus(c.status)
	if status != "all" && !status.Valid() {
		c.Meta.Ui.Error(fmt.Sprintf("invalid status %q", c.status))
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleEmployer, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	st := c.Meta.Store()
	jobID := f.Arg(0)
	if j, err := st.FetchJobByID(ctx, jobID); err == nil {
		c.Meta.Ui.Output(fmt.Sprintf("%s · %s\n", j.Title, j.Company))
	}
	if _, err := st.FetchJobApplications(ctx, jobID, "", client.Page{Limit: 100}); err != nil {
		return c.Meta.fail(err)
	}

	snap := st.State()
	c.Meta.Ui.Output(formatCounts(snap.JobApplicationStats()) + "\n")
	apps := snap.FilterApplications(status, c.search, state.SortOrder(c.sort))
	if len(apps) == 0 {
		c.Meta.Ui.Output("No applications match")
		return 0
	}
	c.Meta.Ui.Output(applicationTable(apps, true))
	return 0
}

func (c *ManageCommand) Help() string {
	return usage(c.Synopsis(), "manage [-status=<status>] [-search=<text>] [-sort=<order>] <job-id>", c.flags())
}

func (c *ManageCommand) Synopsis() string {
	return "Review the applications to one of your jobs (employers)"
}

type SetStatusCommand struct {
	Meta *Meta

	notes string
}

func (c *SetStatusCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("set-status")
	fs.StringVar(&c.notes, "notes", "", "replace the application notes")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *SetStatusCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 2) {
		return 1
	}
	status := model.ApplicationStatus(f.Arg(1))
	if !status.Valid() {
		c.Meta.Ui.Error(fmt.Sprintf("invalid status %q", f.Arg(1)))
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleEmployer, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	ch := client.StatusChange{Status: status}
	if setFlags(f)["notes"] {
		ch.Notes = &c.notes
	}
	a, err := c.Meta.Store().UpdateApplicationStatus(ctx, f.Arg(0), ch)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(fmt.Sprintf("Application %s is now %s", a.ID, statusBadge(a.Status)))
	return 0
}

func (c *SetStatusCommand) Help() string {
	return usage(c.Synopsis(), "set-status [-notes=<text>] <application-id> <status>", c.flags())
}

func (c *SetStatusCommand) Synopsis() string {
	return "Move an application to a new status (employers)"
}
