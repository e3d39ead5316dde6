package dispatch

import "strings"

// ScriptName is the downstream program launched by the dispatcher.
const ScriptName = "llm_demo.py"

// DatasetName is the dataset file expected next to the downstream program.
const DatasetName = "dataset.txt"

// Invocation is the fully resolved configuration for one launch. It is built
// fresh per process and discarded when the process image is replaced.
type Invocation struct {
	Python    string
	Script    string
	Model     string
	MaxLength string
	Dataset   string

	// Interactive selects the downstream mode. Exactly one of interactive
	// and demo mode is active at launch time.
	Interactive bool

	// ForwardDataset controls whether --dataset is passed in interactive
	// mode. Demo mode always forwards the dataset.
	ForwardDataset bool
}

// Mode returns the invocation mode as recorded in history.
func (inv *Invocation) Mode() string {
	if inv.Interactive {
		return "interactive"
	}
	return "demo"
}

// Argv builds the full argument vector, interpreter first. The downstream
// flag order is fixed: --model, --max-length, --dataset, --interactive.
func (inv *Invocation) Argv() []string {
	argv := []string{
		inv.Python,
		inv.Script,
		"--model", inv.Model,
		"--max-length", inv.MaxLength,
	}

	if !inv.Interactive {
		return append(argv, "--dataset", inv.Dataset)
	}

	if inv.ForwardDataset {
		argv = append(argv, "--dataset", inv.Dataset)
	}

	return append(argv, "--interactive")
}

// CommandLine renders the argv as a single shell-style line for dry runs
// and debug logging.
func (inv *Invocation) CommandLine() string {
	argv := inv.Argv()
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, quoteArg(arg))
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t'\"") {
		return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return arg
}
