package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/db"
)

// UpdateCmd creates the update command
func UpdateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update <kind> <id> <field=value|field:=json>...",
		Short: "Change fields of a record",
		Long: `Change fields of a record. field=value sets a text field, field:=json sets any
field from JSON, for example:

  update emergency em001 status=resolved affected_people:=5200
  update resource res002 emergency_ids:='["em001","em003"]'
  update emergency em001 coordinates:=null`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]
			patch, err := parsePatch(args[2:])
			if err != nil {
				return err
			}
			app.Logger.Debug("update command", zap.String("kind", string(kind)), zap.String("id", id), zap.Int("fields", len(patch)))

			out := cmd.OutOrStdout()
			switch kind {
			case model.KindEmergency:
				return applyUpdate(app, out, app.Stores.Emergencies, id, patch)
			case model.KindNGO:
				return applyUpdate(app, out, app.Stores.NGOs, id, patch)
			case model.KindVolunteer:
				return applyUpdate(app, out, app.Stores.Volunteers, id, patch)
			default:
				return applyUpdate(app, out, app.Stores.Resources, id, patch)
			}
		},
	}
}

// parsePatch reads field=text and field:=json assignments
func parsePatch(assignments []string) (db.Patch, error) {
	patch := make(db.Patch, len(assignments))
	for _, a := range assignments {
		if key, raw, ok := strings.Cut(a, ":="); ok && key != "" && !strings.Contains(key, "=") {
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("invalid JSON for %s: %w", key, err)
			}
			patch[key] = v
			continue
		}
		key, value, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected field=value or field:=json, got %q", a)
		}
		patch[key] = value
	}
	return patch, nil
}

func applyUpdate[T any](app *AppContext, out io.Writer, store db.RecordStore[T], id string, patch db.Patch) error {
	updated, err := store.Update(app.Ctx, id, patch)
	if err != nil {
		if db.IsNotFound(err) {
			fmt.Fprintf(out, "No record with id %s\n", id)
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "\n✓ Updated %s\n\n", id)
	return writeYAML(out, updated)
}

// DeleteCmd creates the delete command
func DeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			var deleted bool
			switch kind {
			case model.KindEmergency:
				deleted, err = app.Stores.Emergencies.Delete(app.Ctx, id)
			case model.KindNGO:
				deleted, err = app.Stores.NGOs.Delete(app.Ctx, id)
			case model.KindVolunteer:
				deleted, err = app.Stores.Volunteers.Delete(app.Ctx, id)
			default:
				deleted, err = app.Stores.Resources.Delete(app.Ctx, id)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !deleted {
				fmt.Fprintf(out, "No record with id %s\n", id)
				return nil
			}
			fmt.Fprintf(out, "✓ Deleted %s %s\n", kind, id)
			return nil
		},
	}
}

// ResetCmd creates the reset command
func ResetCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard all changes and restore the seed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Stores.Reset()
			app.Logger.Info("Stores reset to seed data")
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Seed data restored")
			return nil
		},
	}
}
