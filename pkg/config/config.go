package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var DebugLog func(string, ...interface{})

type Config struct {
	Defaults Defaults `yaml:"defaults"`
	Launcher Launcher `yaml:"launcher"`
	Database Database `yaml:"database"`
}

type Defaults struct {
	Model string `yaml:"model"`
	// MaxLength is carried as an opaque string; the downstream program
	// validates numeric-ness.
	MaxLength string `yaml:"max_length"`
	Dataset   string `yaml:"dataset"`
}

type Launcher struct {
	Python               string `yaml:"python"`
	Script               string `yaml:"script"`
	InstallDir           string `yaml:"install_dir"`
	AlwaysForwardDataset bool   `yaml:"always_forward_dataset"`
}

type Database struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// DefaultModel is the persona llm_demo.py ships with.
const DefaultModel = "html-tag-llm"

func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Model:     DefaultModel,
			MaxLength: "80",
		},
		Launcher: Launcher{
			Python: "python3",
		},
		Database: Database{
			Host: "localhost",
			Port: 5432,
			User: "llmlaunch",
		},
	}
}

type Manager struct {
	config     *Config
	configPath string
}

func NewManager(configPath string) *Manager {
	if configPath == "" {
		configPath = os.Getenv("LLMLAUNCH_CONFIG")
	}
	return &Manager{
		configPath: configPath,
	}
}

func (m *Manager) LoadConfig() error {
	if m.configPath == "" {
		m.configPath = m.findConfigFile()
	}

	config := DefaultConfig()

	if m.configPath == "" {
		if DebugLog != nil {
			DebugLog("no config file found, using built-in defaults")
		}
		applyEnvOverrides(config)
		m.config = config
		return nil
	}

	if DebugLog != nil {
		DebugLog("loading config from %s", m.configPath)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s", m.configPath)
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)

	if err := m.validateConfig(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

func (m *Manager) findConfigFile() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}

	if _, err := os.Stat(filepath.Join("config", "config.yaml")); err == nil {
		return filepath.Join("config", "config.yaml")
	}

	configPath := GetDefaultConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

func applyEnvOverrides(config *Config) {
	if python := os.Getenv("LLMLAUNCH_PYTHON"); python != "" {
		config.Launcher.Python = python
	}
}

func (m *Manager) validateConfig(config *Config) error {
	if config.Defaults.Model == "" {
		return fmt.Errorf("defaults.model must not be empty")
	}

	if config.Defaults.MaxLength == "" {
		return fmt.Errorf("defaults.max_length must not be empty")
	}

	if config.Launcher.Python == "" {
		return fmt.Errorf("launcher.python must not be empty")
	}

	if config.Database.Enabled && config.Database.Port <= 0 {
		return fmt.Errorf("database.port must be greater than 0")
	}

	return nil
}
