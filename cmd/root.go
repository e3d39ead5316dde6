package cmd

import (
	"fmt"
	"os"

	"github.com/htmltagllm/llmlaunch/pkg/config"
	"github.com/htmltagllm/llmlaunch/pkg/database"
	"github.com/htmltagllm/llmlaunch/pkg/dispatch"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	modelName   string
	maxLength   string
	datasetPath string
	demoMode    bool
	dryRun      bool
	silent      bool
	verbose     bool
)

var Verbose bool

// launcher overrides the dispatcher's exec boundary; tests inject a fake.
var launcher dispatch.Launcher

var rootCmd = &cobra.Command{
	Use:           "llmlaunch",
	Short:         "launcher for the built-in html-tag demo LLM",
	Long:          `flag-to-exec launcher for llm_demo.py, the repository's miniature LLM that specialises in HTML tag descriptions`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE:          runLaunch,
}

func Execute() {
	hasSilentFlag := false
	for i, arg := range os.Args {
		switch arg {
		case "-model":
			os.Args[i] = "--model"
		case "-max-length":
			os.Args[i] = "--max-length"
		case "-dataset":
			os.Args[i] = "--dataset"
		case "-demo":
			os.Args[i] = "--demo"
		case "-dry-run":
			os.Args[i] = "--dry-run"
		case "-silent", "--silent":
			os.Args[i] = "--silent"
			hasSilentFlag = true
		}
	}

	if !hasSilentFlag {
		printBanner()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func DebugLog(format string, args ...interface{}) {
	if Verbose {
		fmt.Fprintf(os.Stderr, "[DBG] "+format+"\n", args...)
	}
}

func setDebugLogFunctions() {
	config.DebugLog = DebugLog
	database.DebugLog = DebugLog
}

func init() {
	rootCmd.SetHelpTemplate(`Usage:
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasAvailableSubCommands}}Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}Flags:
GENERATION:
   -model string        model persona to load (default: html-tag-llm)
   -max-length string   soft length limit for generated completions (default: 80)
   -dataset string      dataset file forwarded to llm_demo.py (default: dataset.txt next to the script)

MODE:
   -demo                run the canned dataset demo instead of the interactive session

OUTPUT:
   -dry-run             print the resolved command line instead of launching
   -silent              silent mode - no banner or extra output

CONFIGURATION:
   -c, -config string   config file path (default: config/config.yaml)

DEBUG:
   -v, -verbose         enable verbose/debug output
{{if .HasAvailableSubCommands}}
Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: config/config.yaml)")

	rootCmd.Flags().StringVar(&modelName, "model", "", "model persona to load")
	rootCmd.Flags().StringVar(&maxLength, "max-length", "", "soft length limit for generated completions")
	rootCmd.Flags().StringVar(&datasetPath, "dataset", "", "dataset file forwarded to llm_demo.py")
	rootCmd.Flags().BoolVar(&demoMode, "demo", false, "run the canned dataset demo instead of the interactive session")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the resolved command line instead of launching")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "silent mode - no banner or extra output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug output")

	rootCmd.AddCommand(versionCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	Verbose = verbose

	if verbose {
		setDebugLogFunctions()
	}

	disp, err := dispatch.NewDispatcher(configFile, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize dispatcher: %w", err)
	}

	if silent {
		disp.Logger().SetLevel(logrus.ErrorLevel)
	}

	if launcher != nil {
		disp.SetLauncher(launcher)
	}
	if dryRun {
		disp.SetLauncher(&dispatch.DryRunLauncher{Out: cmd.OutOrStdout()})
	}

	inv, err := disp.Resolve(dispatch.LaunchOptions{
		Model:     modelName,
		MaxLength: maxLength,
		Dataset:   datasetPath,
		Demo:      demoMode,
	})
	if err != nil {
		return err
	}

	if !dryRun {
		recordInvocation(disp, inv)
	}

	// The exec launcher replaces the process image; anything after this
	// point only runs on failure or in dry-run mode.
	return disp.Launch(inv)
}

// recordInvocation writes the history row before the launch, since nothing
// survives the exec. Failures are warnings, never launch blockers.
func recordInvocation(disp *dispatch.Dispatcher, inv *dispatch.Invocation) {
	cfg := disp.Config()
	if !cfg.Database.Enabled {
		return
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		disp.Logger().Warnf("invocation history unavailable: %v", err)
		return
	}
	defer db.Close()

	rec := database.InvocationRecord{
		Model:     inv.Model,
		MaxLength: inv.MaxLength,
		Dataset:   inv.Dataset,
		Mode:      inv.Mode(),
	}

	if err := db.RecordInvocation(rec); err != nil {
		disp.Logger().Warnf("failed to record invocation: %v", err)
	}
}

func printBanner() {
	banner := color.CyanString(`
┬  ┬  ┌┬┐┬  ┌─┐┬ ┬┌┐┌┌─┐┬ ┬
│  │  │││└─┐├─┤│ │││││  ├─┤
┴─┘┴─┘┴ ┴└─┘┴ ┴└─┘┘└┘└─┘┴ ┴
`)
	info := color.HiBlackString("flag-to-exec launcher for the built-in html-tag demo LLM")
	fmt.Fprintln(os.Stderr, banner)
	fmt.Fprintln(os.Stderr, info)
	fmt.Fprintln(os.Stderr)
}
