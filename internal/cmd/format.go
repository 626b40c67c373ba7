package cmd

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"jobboard/internal/model"
)

var statusColors = map[model.ApplicationStatus]*color.Color{
	model.StatusApplied:     color.New(color.FgBlue),
	model.StatusShortlisted: color.New(color.FgYellow),
	model.StatusRejected:    color.New(color.FgRed),
	model.StatusHired:       color.New(color.FgGreen),
}

// statusBadge renders a status label; unknown statuses are printed uncoloured.
func statusBadge(s model.ApplicationStatus) string {
	label := capitalize(string(s))
	if c, ok := statusColors[s]; ok {
		return c.Sprint(label)
	}
	return label
}

func formatSalary(s model.Salary) string {
	lo, hi := s.Min != nil && *s.Min > 0, s.Max != nil && *s.Max > 0
	switch {
	case lo && hi:
		return "$" + humanize.Comma(*s.Min) + " - $" + humanize.Comma(*s.Max)
	case lo:
		return "From $" + humanize.Comma(*s.Min)
	case hi:
		return "Up to $" + humanize.Comma(*s.Max)
	}
	return "Salary not specified"
}

// formatJobType turns "full-time" into "Full Time".
func formatJobType(t model.JobType) string {
	words := strings.Split(string(t), "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func formatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
