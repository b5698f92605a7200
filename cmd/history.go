package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/modelwatch/internal/adapters/render/status"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Display the recorded model sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions := app.tracker.History(cmd.Context())

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(sessions)
			}

			rendered, err := statusadapter.RenderHistory(sessions, statusadapter.RenderOptions{
				Now:  app.now(),
				Zone: time.Local,
			})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
