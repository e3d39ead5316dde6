package dispatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/htmltagllm/llmlaunch/pkg/config"
	"github.com/sirupsen/logrus"
)

type customFormatter struct{}

func (f *customFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelText string
	switch entry.Level {
	case logrus.InfoLevel:
		levelText = "[INF]"
	case logrus.WarnLevel:
		levelText = "[WARN]"
	case logrus.ErrorLevel:
		levelText = "[ERR]"
	case logrus.DebugLevel:
		levelText = "[DBG]"
	default:
		levelText = "[???]"
	}
	return []byte(fmt.Sprintf("%s %s\n", levelText, entry.Message)), nil
}

// Dispatcher resolves launch options against the loaded configuration and
// hands the result to a Launcher.
type Dispatcher struct {
	config        *config.Config
	configManager *config.Manager
	logger        *logrus.Logger
	launcher      Launcher
}

// LaunchOptions carries the flag values from the CLI. Empty strings fall
// back to configured defaults.
type LaunchOptions struct {
	Model     string
	MaxLength string
	Dataset   string
	Demo      bool
}

func NewDispatcher(configPath string, verbose bool) (*Dispatcher, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.SetFormatter(&customFormatter{})

	configManager := config.NewManager(configPath)
	if err := configManager.LoadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Dispatcher{
		config:        configManager.GetConfig(),
		configManager: configManager,
		logger:        logger,
		launcher:      NewExecLauncher(),
	}, nil
}

func (d *Dispatcher) Config() *config.Config {
	return d.config
}

func (d *Dispatcher) Logger() *logrus.Logger {
	return d.logger
}

// SetLauncher swaps the launch boundary, used for dry runs and tests.
func (d *Dispatcher) SetLauncher(l Launcher) {
	d.launcher = l
}

// Resolve overlays the flag values on the configured defaults and locates
// the interpreter and downstream script.
func (d *Dispatcher) Resolve(opts LaunchOptions) (*Invocation, error) {
	cfg := d.config

	installDir, err := resolveInstallDir(cfg.Launcher.InstallDir)
	if err != nil {
		return nil, err
	}
	d.logger.Debugf("installation directory: %s", installDir)

	model := opts.Model
	if model == "" {
		model = cfg.Defaults.Model
	}

	maxLength := opts.MaxLength
	if maxLength == "" {
		maxLength = cfg.Defaults.MaxLength
	}

	dataset := opts.Dataset
	if dataset == "" {
		dataset = cfg.Defaults.Dataset
	}
	if dataset == "" {
		dataset = filepath.Join(installDir, DatasetName)
	}

	python, err := locatePython(cfg.Launcher.Python)
	if err != nil {
		return nil, err
	}
	d.logger.Debugf("resolved interpreter: %s", python)

	script, err := locateScript(cfg.Launcher.Script, installDir)
	if err != nil {
		return nil, err
	}
	d.logger.Debugf("resolved script: %s", script)

	return &Invocation{
		Python:         python,
		Script:         script,
		Model:          model,
		MaxLength:      maxLength,
		Dataset:        dataset,
		Interactive:    !opts.Demo,
		ForwardDataset: cfg.Launcher.AlwaysForwardDataset,
	}, nil
}

// Launch hands the invocation to the configured launcher. With the default
// launcher this call does not return on success.
func (d *Dispatcher) Launch(inv *Invocation) error {
	d.logger.Debugf("launching: %s", inv.CommandLine())
	return d.launcher.Launch(inv)
}
