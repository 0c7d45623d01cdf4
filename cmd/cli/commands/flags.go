package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/connect-care/pkg/core/query"
)

// criteriaFlags binds the list page filters to command flags
type criteriaFlags struct {
	search   string
	category string
	severity string
	status   string
	location string
}

func (f *criteriaFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Free-text search")
	cmd.Flags().StringVar(&f.category, "category", query.All, "Category, specialization or skill")
	cmd.Flags().StringVar(&f.severity, "severity", query.All, "Severity (emergencies only)")
	cmd.Flags().StringVar(&f.status, "status", query.All, "Status tab, e.g. active, verified, available")
	cmd.Flags().StringVar(&f.location, "location", "", "Location substring")
}

func (f *criteriaFlags) criteria() query.Criteria {
	return query.Criteria{
		Text:     f.search,
		Category: f.category,
		Severity: f.severity,
		Status:   f.status,
		Location: f.location,
	}
}

// flagName turns a form field name into its flag name, e.g. contact_phone -> contact-phone
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// stringFlag binds a form field to a flag named after it
func stringFlag(cmd *cobra.Command, p *string, field, usage string) {
	cmd.Flags().StringVar(p, flagName(field), "", usage)
}
