package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/core/services"
	"github.com/jakechorley/connect-care/pkg/db"
)

// ListCmd creates the list command
func ListCmd(app *AppContext) *cobra.Command {
	var (
		filters criteriaFlags
		sort    string
		limit   int
		groupBy string
	)

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List emergencies, ngos, volunteers or resources with optional filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			n := limit
			if n == 0 {
				n = app.Cfg.Limit()
			}

			opts := services.BrowseOptions{
				Kind:     kind,
				Sort:     sort,
				Limit:    n,
				Criteria: filters.criteria(),
				GroupBy:  groupBy,
			}
			app.Logger.Debug("list command", zap.String("kind", string(kind)), zap.Stringer("criteria", opts.Criteria))

			out := cmd.OutOrStdout()
			switch kind {
			case model.KindEmergency:
				return runBrowse(app, out, app.Stores.Emergencies, opts, printEmergencies)
			case model.KindNGO:
				return runBrowse(app, out, app.Stores.NGOs, opts, printNGOs)
			case model.KindVolunteer:
				return runBrowse(app, out, app.Stores.Volunteers, opts, printVolunteers)
			default:
				return runBrowse(app, out, app.Stores.Resources, opts, printResources)
			}
		},
	}

	filters.bind(cmd)
	cmd.Flags().StringVar(&sort, "sort", db.DefaultSort, "Sort field, prefix with - for descending")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum records to load (0 uses listLimit from config, negative loads all)")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Also count the matching records by this field")

	return cmd
}

func runBrowse[T model.Filterable](
	app *AppContext,
	out io.Writer,
	store db.Lister[T],
	opts services.BrowseOptions,
	printRecords func(io.Writer, []T),
) error {
	result, err := services.Browse(app.Ctx, store, app.Logger, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d of %d %s records match %s\n", len(result.Records), result.Total, opts.Kind, result.Criteria)
	printTabs(out, result.Tabs)

	if len(result.Records) == 0 {
		fmt.Fprintln(out, "No records match the current filters.")
	} else {
		printRecords(out, result.Records)
	}

	if opts.GroupBy != "" {
		fmt.Fprintln(out)
		printBuckets(out, "By "+opts.GroupBy, result.Groups)
	}
	fmt.Fprintln(out)
	return nil
}
