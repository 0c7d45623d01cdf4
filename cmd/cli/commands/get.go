package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/db"
)

// GetCmd creates the get command
func GetCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Show a single record as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]
			out := cmd.OutOrStdout()

			switch kind {
			case model.KindEmergency:
				return printRecord(app.Ctx, out, app.Stores.Emergencies, id)
			case model.KindNGO:
				return printRecord(app.Ctx, out, app.Stores.NGOs, id)
			case model.KindVolunteer:
				return printRecord(app.Ctx, out, app.Stores.Volunteers, id)
			default:
				return printRecord(app.Ctx, out, app.Stores.Resources, id)
			}
		},
	}
}

type getter[T any] interface {
	Get(ctx context.Context, id string) (T, error)
}

func printRecord[T any](ctx context.Context, out io.Writer, store getter[T], id string) error {
	record, err := store.Get(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			fmt.Fprintf(out, "No record with id %s\n", id)
			return nil
		}
		return err
	}
	return writeYAML(out, record)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return enc.Close()
}
