package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mw",
		Short:         "modelwatch (mw): track model daemon sessions",
		Long:          "mw (modelwatch) polls a local Ollama-compatible daemon, shows which models are running, and keeps a start/end-stamped history of model sessions.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
