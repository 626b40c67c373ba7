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

type JobsCommand struct {
	Meta *Meta

	search, location, jobType, skills, company string
	salaryMin, salaryMax                       int64
	posted, page, limit                        int
}

func (c *JobsCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("jobs")
	fs.StringVar(&c.search, "search", "", "match title, description or company")
	fs.StringVar(&c.location, "location", "", "location substring")
	fs.StringVar(&c.jobType, "type", "", "full-time, part-time, contract, internship or freelance")
	fs.StringVar(&c.skills, "skills", "", "comma-separated skills, any of which must match")
	fs.StringVar(&c.company, "company", "", "company substring")
	fs.Int64Var(&c.salaryMin, "salary-min", 0, "minimum salary")
	fs.Int64Var(&c.salaryMax, "salary-max", 0, "maximum salary")
	fs.IntVar(&c.posted, "posted", 0, "only jobs posted within this many days")
	fs.IntVar(&c.page, "page", 1, "page number")
	fs.IntVar(&c.limit, "limit", 10, "jobs per page")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *JobsCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	if c.jobType != "" && !model.JobType(c.jobType).Valid() {
		c.Meta.Ui.Error(fmt.Sprintf("invalid job type %q", c.jobType))
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	st := c.Meta.Store()
	st.SetFilters(state.ParseFilterInput(c.search, c.location, c.jobType, c.skills))
	filter := st.State().Jobs.Filters.JobFilter(c.page, c.limit)
	filter.Company = c.company
	filter.DatePosted = c.posted
	if c.salaryMin > 0 {
		filter.SalaryMin = &c.salaryMin
	}
	if c.salaryMax > 0 {
		filter.SalaryMax = &c.salaryMax
	}

	res, err := st.FetchJobs(ctx, filter)
	if err != nil {
		return c.Meta.fail(err)
	}
	if len(res.Jobs) == 0 {
		c.Meta.Ui.Output("No jobs found")
		return 0
	}

	c.Meta.Ui.Output(jobTable(res.Jobs))
	p := res.Pagination
	c.Meta.Ui.Output(fmt.Sprintf("\nPage %d of %d (%d jobs)", p.Current, p.Pages, p.Total))
	return 0
}

func jobTable(jobs []model.Job) string {
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{j.ID, j.Title, j.Company, j.Location, formatJobType(j.JobType), formatSalary(j.Salary), formatAge(j.CreatedAt)})
	}
	return table([]string{"ID", "TITLE", "COMPANY", "LOCATION", "TYPE", "SALARY", "POSTED"}, rows)
}

func (c *JobsCommand) Help() string {
	return usage(c.Synopsis(), "jobs [-search=<text>] [-skills=go,sql] ...", c.flags())
}

func (c *JobsCommand) Synopsis() string { return "Search active job postings" }

type JobCommand struct {
	Meta *Meta
}

func (c *JobCommand) Run(args []string) int {
	f := defaultFlagSet("job")
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	st := c.Meta.Store()
	j, err := st.FetchJobByID(ctx, f.Arg(0))
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(formatJob(j))

	// Applicants also see whether they already applied.
	if st.State().Auth.Token != "" {
		if u, err := c.Meta.session(ctx, model.RoleApplicant); err == nil {
			if _, err := st.FetchUserApplications(ctx, u.ID, client.Page{Limit: 100}); err == nil && st.State().HasApplied(j.ID) {
				c.Meta.Ui.Output(color.GreenString("\nYou have applied for this job"))
			}
		}
	}
	return 0
}

func formatJob(j *model.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s · %s · %s\n", color.New(color.Bold).Sprint(j.Title), j.Company, j.Location, formatJobType(j.JobType))
	fmt.Fprintf(&b, "Salary: %s\n", formatSalary(j.Salary))
	fmt.Fprintf(&b, "Status: %s · %d applicants · posted %s\n", j.Status, j.ApplicationCount, formatAge(j.CreatedAt))
	fmt.Fprintf(&b, "\n%s\n", j.Description)
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, it := range items {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	}
	if len(j.Skills) > 0 {
		fmt.Fprintf(&b, "\nSkills: %s\n", strings.Join(j.Skills, ", "))
	}
	section("Requirements", j.Requirements)
	section("Benefits", j.Benefits)
	return strings.TrimRight(b.String(), "\n")
}

func (c *JobCommand) Help() string { return usage(c.Synopsis(), "job <id>", nil) }

func (c *JobCommand) Synopsis() string { return "Show a job posting" }

// jobFields are the flags shared by post-job and update-job.
type jobFields struct {
	title, description, company, location, jobType, currency, status string
	skills, requirements, benefits                                   string
	salaryMin, salaryMax                                             int64
}

func (f *jobFields) register(fs *flag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "job title")
	fs.StringVar(&f.description, "description", "", "job description")
	fs.StringVar(&f.company, "company", "", "company name")
	fs.StringVar(&f.location, "location", "", "location")
	fs.StringVar(&f.jobType, "type", string(model.JobTypeFullTime), "full-time, part-time, contract, internship or freelance")
	fs.Int64Var(&f.salaryMin, "salary-min", 0, "lower salary bound")
	fs.Int64Var(&f.salaryMax, "salary-max", 0, "upper salary bound")
	fs.StringVar(&f.currency, "currency", model.DefaultCurrency, "salary currency")
	fs.StringVar(&f.skills, "skills", "", "comma-separated skills")
	fs.StringVar(&f.requirements, "requirements", "", "comma-separated requirements")
	fs.StringVar(&f.benefits, "benefits", "", "comma-separated benefits")
	fs.StringVar(&f.status, "status", "", "active or closed")
}

func (f *jobFields) salary() model.Salary {
	s := model.Salary{Currency: f.currency}
	if f.salaryMin > 0 {
		s.Min = &f.salaryMin
	}
	if f.salaryMax > 0 {
		s.Max = &f.salaryMax
	}
	return s
}

func (f *jobFields) check() error {
	if !model.JobType(f.jobType).Valid() {
		return fmt.Errorf("invalid job type %q", f.jobType)
	}
	if f.status != "" && !model.JobStatus(f.status).Valid() {
		return fmt.Errorf("invalid status %q: expected active or closed", f.status)
	}
	return nil
}

type PostJobCommand struct {
	Meta *Meta
	jobFields
}

func (c *PostJobCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("post-job")
	c.register(fs)
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *PostJobCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	if err := c.check(); err != nil {
		return c.Meta.fail(err)
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleEmployer, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	j, err := c.Meta.Store().CreateJob(ctx, client.JobDraft{
		Title:        c.title,
		Description:  c.description,
		Company:      c.company,
		Location:     c.location,
		JobType:      model.JobType(c.jobType),
		Salary:       c.salary(),
		Skills:       state.ParseSkills(c.skills),
		Requirements: state.ParseSkills(c.requirements),
		Benefits:     state.ParseSkills(c.benefits),
		Status:       model.JobStatus(c.status),
	})
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Posted job %s", j.ID))
	return 0
}

func (c *PostJobCommand) Help() string {
	return usage(c.Synopsis(), "post-job -title=<title> -description=<text> -company=<name> -location=<place> [options]", c.flags())
}

func (c *PostJobCommand) Synopsis() string { return "Post a new job (employers)" }

type UpdateJobCommand struct {
	Meta *Meta
	jobFields
}

func (c *UpdateJobCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("update-job")
	c.register(fs)
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *UpdateJobCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	if err := c.check(); err != nil {
		return c.Meta.fail(err)
	}
	set := setFlags(f)
	if len(set) == 0 {
		c.Meta.Ui.Error("nothing to update")
		return 1
	}
	str := func(name, v string) *string {
		if !set[name] {
			return nil
		}
		return &v
	}
	list := func(name, v string) *[]string {
		if !set[name] {
			return nil
		}
		l := state.ParseSkills(v)
		return &l
	}
	ch := client.JobChanges{
		Title:        str("title", c.title),
		Description:  str("description", c.description),
		Company:      str("company", c.company),
		Location:     str("location", c.location),
		Skills:       list("skills", c.skills),
		Requirements: list("requirements", c.requirements),
		Benefits:     list("benefits", c.benefits),
	}
	if set["type"] {
		t := model.JobType(c.jobType)
		ch.JobType = &t
	}
	if set["status"] {
		s := model.JobStatus(c.status)
		ch.Status = &s
	}
	if set["salary-min"] || set["salary-max"] || set["currency"] {
		s := c.salary()
		ch.Salary = &s
	}

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleEmployer, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	j, err := c.Meta.Store().UpdateJob(ctx, f.Arg(0), ch)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Updated job %s", j.ID))
	c.Meta.Ui.Output(formatJob(j))
	return 0
}

func (c *UpdateJobCommand) Help() string {
	return usage(c.Synopsis()+". Only the given flags change", "update-job [options] <id>", c.flags())
}

func (c *UpdateJobCommand) Synopsis() string { return "Edit one of your jobs (employers)" }

type DeleteJobCommand struct {
	Meta *Meta

	force bool
}

func (c *DeleteJobCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("delete-job")
	fs.BoolVar(&c.force, "force", false, "do not ask for confirmation")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *DeleteJobCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 1) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	if _, err := c.Meta.session(ctx, model.RoleEmployer, model.RoleAdmin); err != nil {
		return c.Meta.fail(err)
	}
	id := f.Arg(0)
	if !c.force && !confirm(c.Meta, "Delete job "+id+" and all its applications?") {
		c.Meta.Ui.Output("Cancelled")
		return 0
	}
	if err := c.Meta.Store().DeleteJob(ctx, id); err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Deleted job %s", id))
	return 0
}

func confirm(m *Meta, question string) bool {
	answer, err := m.Ui.Ask(question + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (c *DeleteJobCommand) Help() string {
	return usage(c.Synopsis(), "delete-job [-force] <id>", c.flags())
}

func (c *DeleteJobCommand) Synopsis() string { return "Delete one of your jobs (employers)" }
