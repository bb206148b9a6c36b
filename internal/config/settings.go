package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultAPIAddress          = "127.0.0.1:8082"
	defaultLivePollInterval    = 5 * time.Second
	defaultScrollCheckInterval = 1200 * time.Millisecond
)

const (
	StateBackendBbolt = "bbolt"
	StateBackendFile  = "file"
)

type CoreConfig struct {
	API     CoreAPIConfig     `toml:"api"`
	Logging CoreLoggingConfig `toml:"logging"`
	Feed    CoreFeedConfig    `toml:"feed"`
	State   CoreStateConfig   `toml:"state"`
	UI      UIConfig          `toml:"ui"`
}

type CoreAPIConfig struct {
	Address   string `toml:"address"`
	ProjectID string `toml:"project_id"`
	Token     string `toml:"token"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreFeedConfig struct {
	LivePollInterval    string `toml:"live_poll_interval"`
	ScrollCheckInterval string `toml:"scroll_check_interval"`
}

type CoreStateConfig struct {
	Backend string `toml:"backend"`
}

type UIConfig struct {
	AutoPlay    bool `toml:"autoplay" json:"autoplay"`
	ShowDetails bool `toml:"details" json:"details"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		API: CoreAPIConfig{
			Address: defaultAPIAddress,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
		Feed: CoreFeedConfig{
			LivePollInterval:    defaultLivePollInterval.String(),
			ScrollCheckInterval: defaultScrollCheckInterval.String(),
		},
		State: CoreStateConfig{
			Backend: StateBackendBbolt,
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return LoadCoreConfigFromPath(path)
}

func LoadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func (c CoreConfig) APIAddress() string {
	addr := strings.TrimSpace(c.API.Address)
	if addr == "" {
		return defaultAPIAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultAPIAddress
	}
	return addr
}

func (c CoreConfig) APIBaseURL() string {
	raw := strings.TrimSpace(c.API.Address)
	if strings.HasPrefix(raw, "https://") {
		return "https://" + c.APIAddress()
	}
	return "http://" + c.APIAddress()
}

func (c CoreConfig) ProjectID() string {
	return strings.TrimSpace(c.API.ProjectID)
}

// APIToken returns the configured token, falling back to the token file.
func (c CoreConfig) APIToken() string {
	if token := strings.TrimSpace(c.API.Token); token != "" {
		return token
	}
	path, err := TokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c CoreConfig) LivePollInterval() time.Duration {
	return parseDuration(c.Feed.LivePollInterval, defaultLivePollInterval)
}

func (c CoreConfig) ScrollCheckInterval() time.Duration {
	return parseDuration(c.Feed.ScrollCheckInterval, defaultScrollCheckInterval)
}

func (c CoreConfig) StateBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.State.Backend)) {
	case StateBackendFile:
		return StateBackendFile
	default:
		return StateBackendBbolt
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// ResolvePath expands "~/" and resolves relative paths against the data dir.
func ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
