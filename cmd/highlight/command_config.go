package main

import (
	"errors"
	"flag"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/shivam-bit/highlight/internal/app"
	"github.com/shivam-bit/highlight/internal/config"
)

type ConfigCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.CoreConfig, error)
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath  string                 `json:"config_path,omitempty" toml:"config_path,omitempty"`
	API         effectiveAPIConfig     `json:"api" toml:"api"`
	Logging     effectiveLoggingConfig `json:"logging" toml:"logging"`
	Feed        effectiveFeedConfig    `json:"feed" toml:"feed"`
	State       effectiveStateConfig   `json:"state" toml:"state"`
	UI          config.UIConfig        `json:"ui" toml:"ui"`
	Keybindings map[string]string      `json:"keybindings" toml:"keybindings"`
}

type effectiveAPIConfig struct {
	Address   string `json:"address" toml:"address"`
	BaseURL   string `json:"base_url" toml:"base_url"`
	ProjectID string `json:"project_id,omitempty" toml:"project_id,omitempty"`
	HasToken  bool   `json:"has_token" toml:"has_token"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
}

type effectiveFeedConfig struct {
	LivePollInterval    string `json:"live_poll_interval" toml:"live_poll_interval"`
	ScrollCheckInterval string `json:"scroll_check_interval" toml:"scroll_check_interval"`
}

type effectiveStateConfig struct {
	Backend string `json:"backend" toml:"backend"`
}

func NewConfigCommand(stdout, stderr io.Writer, loadConfig func() (config.CoreConfig, error)) *ConfigCommand {
	return &ConfigCommand{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("default", false, "print default config values")
	format := fs.String("format", configFormatTOML, "output format: toml|json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}

	cfg := config.DefaultCoreConfig()
	if !*defaults {
		cfg, err = c.loadConfig()
		if err != nil {
			return err
		}
	}
	out := buildConfigOutput(cfg)
	if path, err := config.CoreConfigPath(); err == nil {
		out.ConfigPath = path
	}
	return writeConfigOutput(c.stdout, resolvedFormat, out)
}

func buildConfigOutput(cfg config.CoreConfig) configOutput {
	keys := map[string]string{}
	bindings := app.DefaultKeybindings()
	for _, command := range app.KnownKeybindingCommands() {
		keys[command] = bindings.KeyFor(command)
	}
	return configOutput{
		API: effectiveAPIConfig{
			Address:   cfg.APIAddress(),
			BaseURL:   cfg.APIBaseURL(),
			ProjectID: cfg.ProjectID(),
			HasToken:  strings.TrimSpace(cfg.API.Token) != "",
		},
		Logging: effectiveLoggingConfig{Level: cfg.LogLevel()},
		Feed: effectiveFeedConfig{
			LivePollInterval:    cfg.LivePollInterval().String(),
			ScrollCheckInterval: cfg.ScrollCheckInterval().String(),
		},
		State:       effectiveStateConfig{Backend: cfg.StateBackend()},
		UI:          cfg.UI,
		Keybindings: keys,
	}
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatTOML:
		return configFormatTOML, nil
	case configFormatJSON:
		return configFormatJSON, nil
	default:
		return "", errors.New("invalid format: must be toml or json")
	}
}
