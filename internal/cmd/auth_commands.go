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

type LoginCommand struct {
	Meta *Meta

	email    string
	password string
}

func (c *LoginCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("login")
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", "", "account password, prompted for when empty")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *LoginCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	if c.email == "" {
		c.Meta.Ui.Error("-email is required")
		return 1
	}
	if c.password == "" {
		pw, err := c.Meta.Ui.AskSecret("Password:")
		if err != nil {
			return c.Meta.fail(err)
		}
		c.password = pw
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := c.Meta.Store().Login(ctx, client.Credentials{Email: c.email, Password: c.password})
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Logged in as %s (%s)", res.User.Name, res.User.Role))
	return 0
}

func (c *LoginCommand) Help() string {
	return usage(c.Synopsis(), "login -email=<email> [-password=<password>]", c.flags())
}

func (c *LoginCommand) Synopsis() string { return "Log in and store the session token" }

type RegisterCommand struct {
	Meta *Meta

	name     string
	email    string
	password string
	role     string
	company  string
}

func (c *RegisterCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("register")
	fs.StringVar(&c.name, "name", "", "full name")
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", "", "password (at least 6 characters), prompted for when empty")
	fs.StringVar(&c.role, "role", string(model.RoleApplicant), "applicant or employer")
	fs.StringVar(&c.company, "company", "", "company name for employers")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *RegisterCommand) Run(args []string) int {
	if !c.Meta.parse(c.flags(), args, 0) {
		return 1
	}
	role := model.Role(c.role)
	if role != model.RoleApplicant && role != model.RoleEmployer {
		c.Meta.Ui.Error(fmt.Sprintf("invalid role %q: expected applicant or employer", c.role))
		return 1
	}
	if c.password == "" {
		pw, err := c.Meta.Ui.AskSecret("Password:")
		if err != nil {
			return c.Meta.fail(err)
		}
		c.password = pw
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := c.Meta.Store().Register(ctx, client.Registration{
		Name:        c.name,
		Email:       c.email,
		Password:    c.password,
		Role:        role,
		CompanyName: c.company,
	})
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Welcome, %s! Your %s account is ready.", res.User.Name, res.User.Role))
	return 0
}

func (c *RegisterCommand) Help() string {
	return usage(c.Synopsis(), "register -name=<name> -email=<email> [-role=employer]", c.flags())
}

func (c *RegisterCommand) Synopsis() string { return "Create an account" }

type LogoutCommand struct {
	Meta *Meta
}

func (c *LogoutCommand) Run(args []string) int {
	if !c.Meta.parse(defaultFlagSet("logout"), args, 0) {
		return 1
	}
	if err := c.Meta.Store().Logout(); err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output("Logged out")
	return 0
}

func (c *LogoutCommand) Help() string { return usage(c.Synopsis(), "logout", nil) }

func (c *LogoutCommand) Synopsis() string { return "Forget the stored session token" }

type WhoamiCommand struct {
	Meta *Meta
}

func (c *WhoamiCommand) Run(args []string) int {
	if !c.Meta.parse(defaultFlagSet("whoami"), args, 0) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	u, err := c.Meta.session(ctx)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(fmt.Sprintf("%s <%s>\nRole: %s", u.Name, u.Email, u.Role))
	if claims, err := client.ClaimsFromToken(c.Meta.Store().State().Auth.Token); err == nil && !claims.ExpiresAt.IsZero() {
		c.Meta.Ui.Output("Session expires " + formatAge(claims.ExpiresAt))
	}
	return 0
}

func (c *WhoamiCommand) Help() string { return usage(c.Synopsis(), "whoami", nil) }

func (c *WhoamiCommand) Synopsis() string { return "Show the logged-in user" }

// ProfileCommand shows the profile, or updates the fields given as flags.
type ProfileCommand struct {
	Meta *Meta

	name    string
	profile model.Profile
	skills  string
}

func (c *ProfileCommand) flags() *flag.FlagSet {
	fs := defaultFlagSet("profile")
	p := &c.profile
	fs.StringVar(&c.name, "name", "", "display name")
	fs.StringVar(&p.Bio, "bio", "", "short bio")
	fs.StringVar(&c.skills, "skills", "", "comma-separated skills")
	fs.StringVar(&p.Experience, "experience", "", "experience summary")
	fs.StringVar(&p.Phone, "phone", "", "phone number")
	fs.StringVar(&p.CompanyName, "company-name", "", "company name")
	fs.StringVar(&p.Website, "website", "", "company website")
	fs.StringVar(&p.Location, "location", "", "location")
	fs.StringVar(&p.Industry, "industry", "", "industry")
	fs.StringVar(&p.CompanySize, "company-size", "", "company size, e.g. 11-50")
	fs.StringVar(&p.Description, "description", "", "company description")
	fs.Usage = func() { c.Meta.Ui.Error(c.Help()) }
	return fs
}

func (c *ProfileCommand) Run(args []string) int {
	f := c.flags()
	if !c.Meta.parse(f, args, 0) {
		return 1
	}
	ctx, cancel := signalContext()
	defer cancel()

	u, err := c.Meta.session(ctx)
	if err != nil {
		return c.Meta.fail(err)
	}

	set := setFlags(f)
	if len(set) == 0 {
		c.Meta.Ui.Output(formatProfile(u))
		return 0
	}

	upd := client.ProfileUpdate{Profile: mergeProfile(u.Profile, c.profile, set)}
	if set["skills"] {
		upd.Profile.Skills = state.ParseSkills(c.skills)
	}
	if set["name"] {
		upd.Name = c.name
	}
	u, err = c.Meta.Store().UpdateProfile(ctx, upd)
	if err != nil {
		return c.Meta.fail(err)
	}
	c.Meta.Ui.Output(color.GreenString("Profile updated"))
	c.Meta.Ui.Output(formatProfile(u))
	return 0
}

// mergeProfile copies the flagged fields of upd over cur.
func mergeProfile(cur, upd model.Profile, set map[string]bool) model.Profile {
	fields := map[string]struct{ dst, src *string }{
		"bio":          {&cur.Bio, &upd.Bio},
		"experience":   {&cur.Experience, &upd.Experience},
		"phone":        {&cur.Phone, &upd.Phone},
		"company-name": {&cur.CompanyName, &upd.CompanyName},
		"website":      {&cur.Website, &upd.Website},
		"location":     {&cur.Location, &upd.Location},
		"industry":     {&cur.Industry, &upd.Industry},
		"company-size": {&cur.CompanySize, &upd.CompanySize},
		"description":  {&cur.Description, &upd.Description},
	}
	for name, f := range fields {
		if set[name] {
			*f.dst = *f.src
		}
	}
	return cur
}

func formatProfile(u *model.User) string {
	p := u.Profile
	lines := []string{
		fmt.Sprintf("%s <%s> (%s)", u.Name, u.Email, u.Role),
	}
	add := func(label, v string) {
		if v != "" {
			lines = append(lines, fmt.Sprintf("%-13s %s", label+":", v))
		}
	}
	switch u.Role {
	case model.RoleEmployer:
		add("Company", p.CompanyName)
		add("Website", p.Website)
		add("Industry", p.Industry)
		add("Company size", p.CompanySize)
		add("Description", p.Description)
	default:
		add("Bio", p.Bio)
		add("Skills", strings.Join(p.Skills, ", "))
		add("Experience", p.Experience)
		if p.Resume != "" {
			add("Resume", fmt.Sprintf("%s (%s)", orDash(p.ResumeFilename), p.Resume))
		}
	}
	add("Phone", p.Phone)
	add("Location", p.Location)
	return strings.Join(lines, "\n")
}

func (c *ProfileCommand) Help() string {
	return usage(c.Synopsis(), "profile [-bio=<text>] [-skills=go,sql] ...", c.flags())
}

func (c *ProfileCommand) Synopsis() string { return "Show or update your profile" }
