package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/htmltagllm/llmlaunch/pkg/database"
	"github.com/htmltagllm/llmlaunch/pkg/dispatch"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyMode  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:           "history",
	Short:         "List recorded demo invocations",
	Long:          `List invocations recorded in the history database, newest first`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE:          runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyMode, "mode", "", "filter by mode (interactive, demo)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of invocations to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyMode != "" && historyMode != "interactive" && historyMode != "demo" {
		return fmt.Errorf("invalid mode %q: expected 'interactive' or 'demo'", historyMode)
	}

	disp, err := dispatch.NewDispatcher(configFile, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize dispatcher: %w", err)
	}

	cfg := disp.Config()
	if !cfg.Database.Enabled {
		return fmt.Errorf("database is not enabled, please enable it in config.yaml")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to history database: %w", err)
	}
	defer db.Close()

	records, err := db.QueryInvocations(historyMode, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to query invocations: %w", err)
	}

	if len(records) == 0 {
		color.Yellow("No recorded invocations found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LAUNCHED\tMODE\tMODEL\tMAX-LENGTH\tDATASET")

	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.LaunchedAt.Format("2006-01-02 15:04:05"),
			r.Mode,
			r.Model,
			r.MaxLength,
			r.Dataset,
		)
	}

	return w.Flush()
}
