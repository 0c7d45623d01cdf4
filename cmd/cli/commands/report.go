package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jakechorley/connect-care/pkg/core/forms"
	"github.com/jakechorley/connect-care/pkg/core/model"
)

// ReportEmergencyCmd creates the reportEmergency command
func ReportEmergencyCmd(app *AppContext) *cobra.Command {
	var (
		form   forms.EmergencyForm
		assist bool
	)

	cmd := &cobra.Command{
		Use:   "reportEmergency",
		Short: "Report a new emergency",
		Long: `Report a new emergency. With --assist the title, category, severity and
priority needs left blank are filled in from the description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := form
			if assist {
				if err := forms.Assist(app.Ctx, app.Analyzer, &f); err != nil {
					return err
				}
			}

			created, err := forms.Submit[model.Emergency](app.Ctx, app.Stores.Emergencies, f, app.Logger)
			if err != nil {
				return submitFailure(cmd.OutOrStdout(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Emergency reported!\n\n")
			printEmergencies(out, []model.Emergency{created})
			fmt.Fprintln(out)
			return nil
		},
	}

	stringFlag(cmd, &form.Title, "title", "Short title")
	stringFlag(cmd, &form.Description, "description", "What is happening")
	stringFlag(cmd, &form.Category, "category", "natural_disaster, medical_emergency, fire, accident, violence, infrastructure or other")
	stringFlag(cmd, &form.Severity, "severity", "low, medium, high or critical")
	stringFlag(cmd, &form.Status, "status", "Defaults to active")
	stringFlag(cmd, &form.Location, "location", "Where it is happening")
	stringFlag(cmd, &form.Coordinates, "coordinates", `"lat, lng"`)
	stringFlag(cmd, &form.AffectedPeople, "affected_people", "Estimated number of people affected")
	stringFlag(cmd, &form.PriorityNeeds, "priority_needs", "Comma separated needs")
	stringFlag(cmd, &form.ContactPerson, "contact_person", "Who to contact on site")
	stringFlag(cmd, &form.ContactPhone, "contact_phone", "Contact phone number")
	cmd.Flags().BoolVar(&assist, "assist", false, "Fill blank fields from the description")

	return cmd
}

// ReportNGOCmd creates the reportNGO command
func ReportNGOCmd(app *AppContext) *cobra.Command {
	var (
		form            forms.NGOForm
		specializations string
	)

	cmd := &cobra.Command{
		Use:   "reportNGO",
		Short: "Register an NGO (starts unverified)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := form
			f.Specializations = forms.NewSelection(forms.SplitList(specializations)...)

			created, err := forms.Submit[model.NGO](app.Ctx, app.Stores.NGOs, f, app.Logger)
			if err != nil {
				return submitFailure(cmd.OutOrStdout(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ NGO registered! It will be listed once verified.\n\n")
			printNGOs(out, []model.NGO{created})
			fmt.Fprintln(out)
			return nil
		},
	}

	stringFlag(cmd, &form.Name, "name", "Organization name")
	stringFlag(cmd, &form.Description, "description", "What the organization does")
	cmd.Flags().StringVar(&specializations, "specializations", "", "Comma separated specializations, at least one")
	stringFlag(cmd, &form.Location, "location", "Headquarters")
	stringFlag(cmd, &form.Coordinates, "coordinates", `"lat, lng"`)
	stringFlag(cmd, &form.ContactEmail, "contact_email", "Contact email")
	stringFlag(cmd, &form.ContactPhone, "contact_phone", "Contact phone number")
	stringFlag(cmd, &form.Website, "website", "Website URL")
	stringFlag(cmd, &form.VolunteerCount, "volunteer_count", "Number of volunteers")
	stringFlag(cmd, &form.ServiceAreas, "service_areas", "Comma separated areas served")
	stringFlag(cmd, &form.Resources, "resources", "Comma separated resources offered")

	return cmd
}

// ReportVolunteerCmd creates the reportVolunteer command
func ReportVolunteerCmd(app *AppContext) *cobra.Command {
	var (
		form   forms.VolunteerForm
		skills string
	)

	cmd := &cobra.Command{
		Use:   "reportVolunteer",
		Short: "Sign up a volunteer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := form
			f.Skills = forms.NewSelection(forms.SplitList(skills)...)

			created, err := forms.Submit[model.Volunteer](app.Ctx, app.Stores.Volunteers, f, app.Logger)
			if err != nil {
				return submitFailure(cmd.OutOrStdout(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Volunteer signed up!\n\n")
			printVolunteers(out, []model.Volunteer{created})
			fmt.Fprintln(out)
			return nil
		},
	}

	stringFlag(cmd, &form.FullName, "full_name", "Full name")
	stringFlag(cmd, &form.Email, "email", "Email address")
	stringFlag(cmd, &form.Phone, "phone", "Phone number")
	stringFlag(cmd, &form.Location, "location", "Home location")
	stringFlag(cmd, &form.Coordinates, "coordinates", `"lat, lng"`)
	cmd.Flags().StringVar(&skills, "skills", "", "Comma separated skills, at least one")
	stringFlag(cmd, &form.ExperienceLevel, "experience_level", "beginner, intermediate, advanced or expert")
	stringFlag(cmd, &form.Availability, "availability", "Defaults to available")
	stringFlag(cmd, &form.Languages, "languages", "Comma separated languages")
	stringFlag(cmd, &form.Transportation, "transportation", "true if the volunteer has transport")

	return cmd
}

// ReportResourceCmd creates the reportResource command
func ReportResourceCmd(app *AppContext) *cobra.Command {
	var form forms.ResourceForm

	cmd := &cobra.Command{
		Use:   "reportResource",
		Short: "Offer a resource",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := forms.Submit[model.Resource](app.Ctx, app.Stores.Resources, form, app.Logger)
			if err != nil {
				return submitFailure(cmd.OutOrStdout(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Resource added!\n\n")
			printResources(out, []model.Resource{created})
			fmt.Fprintln(out)
			return nil
		},
	}

	stringFlag(cmd, &form.Name, "name", "Resource name")
	stringFlag(cmd, &form.Description, "description", "Description")
	stringFlag(cmd, &form.Category, "category", "Resource category")
	stringFlag(cmd, &form.Quantity, "quantity", "How many units")
	stringFlag(cmd, &form.Unit, "unit", "Unit, e.g. kits")
	stringFlag(cmd, &form.Location, "location", "Where the stock is")
	stringFlag(cmd, &form.Coordinates, "coordinates", `"lat, lng"`)
	stringFlag(cmd, &form.ProviderNGO, "provider_ngo", "Providing organization")
	stringFlag(cmd, &form.Availability, "availability", "Defaults to available")
	stringFlag(cmd, &form.EmergencyIDs, "emergency_ids", "Comma separated emergency ids it is assigned to")

	return cmd
}

// submitFailure lists each rejected field on its own line. Nothing was stored.
func submitFailure(out io.Writer, err error) error {
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(out, "\n✗ The %s form has errors:\n", verr.Kind)
		for _, fe := range verr.Fields {
			fmt.Fprintf(out, "  --%-18s %s\n", flagName(fe.Field), fe.Message)
		}
		fmt.Fprintln(out)
	}
	return err
}
