package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgvOrdering(t *testing.T) {
	tests := []struct {
		name     string
		inv      Invocation
		expected []string
	}{
		{
			name: "demo mode always forwards dataset",
			inv: Invocation{
				Python:    "/usr/bin/python3",
				Script:    "/opt/demo/llm_demo.py",
				Model:     "gpt2",
				MaxLength: "40",
				Dataset:   "/opt/demo/dataset.txt",
			},
			expected: []string{
				"/usr/bin/python3", "/opt/demo/llm_demo.py",
				"--model", "gpt2",
				"--max-length", "40",
				"--dataset", "/opt/demo/dataset.txt",
			},
		},
		{
			name: "interactive mode omits dataset by default",
			inv: Invocation{
				Python:      "/usr/bin/python3",
				Script:      "/opt/demo/llm_demo.py",
				Model:       "html-tag-llm",
				MaxLength:   "80",
				Dataset:     "/opt/demo/dataset.txt",
				Interactive: true,
			},
			expected: []string{
				"/usr/bin/python3", "/opt/demo/llm_demo.py",
				"--model", "html-tag-llm",
				"--max-length", "80",
				"--interactive",
			},
		},
		{
			name: "interactive mode forwards dataset when policy set",
			inv: Invocation{
				Python:         "/usr/bin/python3",
				Script:         "/opt/demo/llm_demo.py",
				Model:          "html-tag-llm",
				MaxLength:      "80",
				Dataset:        "/opt/demo/dataset.txt",
				Interactive:    true,
				ForwardDataset: true,
			},
			expected: []string{
				"/usr/bin/python3", "/opt/demo/llm_demo.py",
				"--model", "html-tag-llm",
				"--max-length", "80",
				"--dataset", "/opt/demo/dataset.txt",
				"--interactive",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.inv.Argv())
		})
	}
}

func TestArgvNeverMixesModes(t *testing.T) {
	demo := Invocation{Python: "p", Script: "s", Model: "m", MaxLength: "1", Dataset: "d"}
	assert.NotContains(t, demo.Argv(), "--interactive")

	interactive := demo
	interactive.Interactive = true
	assert.Contains(t, interactive.Argv(), "--interactive")
	assert.NotContains(t, interactive.Argv(), "--dataset")
}

func TestMaxLengthIsOpaque(t *testing.T) {
	// Numeric validation belongs to the downstream program.
	inv := Invocation{Python: "p", Script: "s", Model: "m", MaxLength: "not-a-number", Dataset: "d"}
	assert.Contains(t, inv.Argv(), "not-a-number")
}

func TestMode(t *testing.T) {
	assert.Equal(t, "demo", (&Invocation{}).Mode())
	assert.Equal(t, "interactive", (&Invocation{Interactive: true}).Mode())
}

func TestCommandLineQuoting(t *testing.T) {
	inv := Invocation{
		Python:    "/usr/bin/python3",
		Script:    "/opt/my demo/llm_demo.py",
		Model:     "gpt2",
		MaxLength: "40",
		Dataset:   "/opt/my demo/dataset.txt",
	}

	line := inv.CommandLine()
	assert.Contains(t, line, "'/opt/my demo/llm_demo.py'")
	assert.Contains(t, line, "'/opt/my demo/dataset.txt'")
	assert.Contains(t, line, "--model gpt2")
}
