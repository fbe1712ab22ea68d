package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the client.
type Config struct {
	BackendURL     string        `yaml:"backend_url" mapstructure:"backend_url"`
	StateDir       string        `yaml:"state_dir" mapstructure:"state_dir"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

func Default() Config {
	return Config{
		BackendURL:     "http://127.0.0.1:8000",
		RequestTimeout: 10 * time.Second,
	}
}

// Load merges the config file at <stateDir>/config.yaml over the defaults.
// A missing file is not an error; flags override via the returned struct.
func Load(stateDir string) (Config, error) {
	cfg := Default()

	dir, err := resolveStateDir(stateDir)
	if err != nil {
		return Config{}, err
	}
	cfg.StateDir = dir

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if cfg.StateDir == "" {
		cfg.StateDir = dir
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = Default().RequestTimeout
	}
	return cfg, nil
}

// WriteDefault renders the default config file, refusing to clobber one that
// already exists.
func WriteDefault(stateDir string) (string, error) {
	dir, err := resolveStateDir(stateDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config already exists at %s", path)
	}
	cfg := Default()
	cfg.StateDir = dir
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode default config: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func (c Config) SessionPath() string {
	return filepath.Join(c.StateDir, "session.json")
}

func (c Config) DBPath() string {
	return filepath.Join(c.StateDir, "psched.db")
}

func resolveStateDir(stateDir string) (string, error) {
	if stateDir != "" {
		return stateDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".psched"), nil
}
