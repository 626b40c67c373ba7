package cmd

import (
	"flag"
	"fmt"

	"github.com/fatih/color"

	"jobboard/internal/client"
	"jobboard/internal/model"
)

type AdminUsersCommand struct {
	Meta *Meta

	search string
	role   string
	page   int
	limit  int
}

func (c *AdminUsersCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("admin users")
	fs.StringVar(&c.search, "search", "", "match name or email")
	fs.StringVar(&c.role, "role", "", "applicant, employer or admin")
	fs.IntVar(&c.page, "page", 1, "page number")
	fs.IntVar(&c.limit, "limit", 20, "users per page")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *AdminUsersCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	role := model.Role(c.role)
	if role != "" && !role.Valid() {
		c.Meta.Ui.Error(fmt.Sprintf("invalid role %q", c.role))
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	res, err := c.Meta.Client().Users(ctx, c.search, role, client.Page{Page: c.page, Limit: c.limit})
	if err != nil {
		return c.Meta.fail(err)
	}
	rows := make([][]string, 0, len(res.Users))
	for _, u := range res.Users {
		rows = append(rows, []string{u.ID, u.Name, u.Email, string(u.Role), formatAge(u.CreatedAt)})
	}
	c.Meta.Ui.Output(table([]string{"ID", "NAME", "EMAIL", "ROLE", "JOINED"}, rows))
	p := res.Pagination
	c.Meta.Ui.Output(fmt.Sprintf("\nPage %d of %d (%d users)", p.Current, p.Pages, p.Total))
	return 0
}

func (c *AdminUsersCommand) Help() string {
	return usage(c.Synopsis(), "admin users [-search=<text>] [-role=<role>]", c.flags())
}

func (c *AdminUsersCommand) Synopsis() string { return "List accounts (admins)" }

type AdminDeleteUserCommand struct {
	Meta *Meta

	force bool
}

func (c *AdminDeleteUserCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("admin delete-user")
	fs.BoolVar(&c.force, "force", false, "do not ask for confirmation")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *AdminDeleteUserCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	id := f.Arg(0)
	if !c.force && !confirm(c.Meta, "Delete user "+id+" with their jobs and applications?") {
		c.Meta.Ui.Output("Cancelled")
		return 0
	}
	if err := c.Meta.Client().DeleteUser(ctx, id); err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Deleted user %s", id))
	return 0
}

func (c *AdminDeleteUserCommand) Help() string {
	return usage(c.Synopsis(), "admin delete-user [-force] <id>", c.flags())
}

func (c *AdminDeleteUserCommand) Synopsis() string { return "Delete an account (admins)" }

type AdminApplicationsCommand struct {
	Meta *Meta

	status string
	page   int
	limit  int
}

func (c *AdminApplicationsCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("admin applications")
	fs.StringVar(&c.status, "status", "", "applied, shortlisted, rejected or hired")
	fs.IntVar(&c.page, "page", 1, "page number")
	fs.IntVar(&c.limit, "limit", 20, "applications per page")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *AdminApplicationsCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	status := model.ApplicationStatus(c.status)
	if status != "" && !status.Valid() {
		c.Meta.Ui.Error(fmt.Sprintf("invalid status %q", c.status))
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	res, err := c.Meta.Client().Applications(ctx, status, client.Page{Page: c.page, Limit: c.limit})
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(applicationTable(res.Applications, true))
	p := res.Pagination
	c.Meta.Ui.Output(fmt.Sprintf("\nPage %d of %d (%d applications)", p.Current, p.Pages, p.Total))
	return 0
}

func (c *AdminApplicationsCommand) Help() string {
	return usage(c.Synopsis(), "admin applications [-status=<status>]", c.flags())
}

func (c *AdminApplicationsCommand) Synopsis() string { return "List all applications (admins)" }
