package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/modelwatch/internal/adapters/render/status"
	"github.com/bnema/modelwatch/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch and display the currently running models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var models []domain.ModelDescriptor

			fetch := func(ctx context.Context) error {
				var err error
				models, err = app.tracker.Refresh(ctx)
				return err
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}

				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(models)
			}

			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), fetch); err != nil {
				return err
			}

			rendered, err := statusadapter.RenderModels(models)
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
