package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

// DashboardCommand prints the overview for the user's role.
type DashboardCommand struct {
	Meta *Meta
}

const (
	recentLimit = 5
	latestJobs  = 6
)

func (c *DashboardCommand) Run(args []string) int {
	if !c.Meta.parse(defaultFlagSet("dashboard"), args, 0) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	u, err := c.Meta.session(ctx)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.New(color.Bold).Sprintf("Welcome back, %s", u.Name) + "\n")

	switch u.Role {
	case model.RoleEmployer:
		err = c.employer(ctx)
	case model.RoleAdmin:
		err = c.admin(ctx)
	default:
		err = c.applicant(ctx, u)
	}
	if err != nil {
		return c.Meta.fail(err)
	}
	return 0
}

func (c *DashboardCommand) applicant(ctx context.Context, u *model.User) error {
	st := c.Meta.Store()
	if _, err := st.FetchUserApplications(ctx, u.ID, client.Page{Limit: 100}); err != nil {
		return err
	}
	snap := st.State()
	stats := snap.ApplicationStats()
	c.Meta.Ui.Output(formatCounts(stats))
	c.Meta.Ui.Output(fmt.Sprintf("Success rate: %d%%\n", stats.SuccessRate()))

	apps := snap.Applications.UserApplications
	if len(apps) == 0 {
		c.Meta.Ui.Output("No applications yet. Try 'jobctl jobs' to find openings.")
	} else {
		c.Meta.Ui.Output("Recent applications:")
		c.Meta.Ui.Output(applicationTable(apps[:min(len(apps), recentLimit)], false))
	}

	jobs, err := st.FetchJobs(ctx, model.JobFilter{Limit: latestJobs})
	if err != nil {
		return err
	}
	if len(jobs.Jobs) > 0 {
		c.Meta.Ui.Output("\nLatest jobs:")
		c.Meta.Ui.Output(jobTable(jobs.Jobs))
	}
	return nil
}

func (c *DashboardCommand) employer(ctx context.Context) error {
	st := c.Meta.Store()
	if _, err := st.FetchEmployerJobs(ctx, client.Page{Limit: 100}); err != nil {
		return err
	}
	snap := st.State()
	es := snap.EmployerStats()
	c.Meta.Ui.Output(fmt.Sprintf("Jobs: %d (%d active)  Applications: %d  Avg per job: %d\n",
		es.TotalJobs, es.ActiveJobs, es.TotalApplications, es.AvgApplicationsPerJob))

	jobs := snap.Jobs.EmployerJobs
	if len(jobs) == 0 {
		c.Meta.Ui.Output("No jobs posted yet. Try 'jobctl post-job'.")
		return nil
	}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{j.ID, j.Title, string(j.Status), formatSalary(j.Salary), fmt.Sprint(j.ApplicationCount), formatAge(j.CreatedAt)})
	}
	c.Meta.Ui.Output(table([]string{"ID", "TITLE", "STATUS", "SALARY", "APPLICANTS", "POSTED"}, rows))
	return nil
}

func (c *DashboardCommand) admin(ctx context.Context) error {
	s, err := c.Meta.Client().Stats(ctx)
	if err != nil {
		return err
	}
	c.Meta.Ui.Output(fmt.Sprintf("Users: %d  Jobs: %d (%d active)  Applications: %d",
		s.TotalUsers, s.TotalJobs, s.ActiveJobs, s.TotalApplications))
	parts := make([]string, 0, len(model.ApplicationStatuses))
	for _, st := range model.ApplicationStatuses {
		parts = append(parts, fmt.Sprintf("%s: %d", statusBadge(st), s.ApplicationsByStatus[st]))
	}
	c.Meta.Ui.Output(strings.Join(parts, "  "))
	return nil
}

func (c *DashboardCommand) Help() string { return usage(c.Synopsis(), "dashboard", nil) }

func (c *DashboardCommand) Synopsis() string { return "Show the overview for your role" }
