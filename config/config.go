package config

import (
	"connectline/game"
	"connectline/meta"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "connectline/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ServerConfig struct {
	Address string `json:"address"` // Listen address of the decision server
	URL     string `json:"url"`     // Server the terminal client asks, empty to search locally
}

type LogConfig struct {
	Level string `json:"level"`
}

type ExperimentConfig struct {
	Games       int     `json:"games"` // Per match-up
	OutputDir   string  `json:"output_dir"`
	Temperature float64 `json:"temperature"`
}

type Config struct {
	Rules      game.Rules       `json:"rules"`
	Server     ServerConfig     `json:"server"`
	Log        LogConfig        `json:"log"`
	Experiment ExperimentConfig `json:"experiment"`
}

var DefaultConfig = Config{
	Rules: game.NewStandardRules(),
	Server: ServerConfig{
		Address: meta.SERVER_ADDRESS,
	},
	Log: LogConfig{
		Level: zerolog.LevelInfoValue,
	},
	Experiment: ExperimentConfig{
		Games:       meta.GAMES,
		OutputDir:   "experiments",
		Temperature: 1.0,
	},
}

// InitConfig returns the defaults overlaid with the user's config file, if
// there is one.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return Load(absPath)
}

// Load reads the config file at path over the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Server.Address == "" {
		return &InvalidConfig{"server address must not be empty"}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	if c.Experiment.Games < 1 {
		return &InvalidConfig{"experiments need at least one game per match-up"}
	}
	if c.Experiment.Temperature < 0 {
		return &InvalidConfig{"temperature must not be negative"}
	}
	return nil
}

// LogLevel returns the configured level. Validate has already parsed it.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Save writes the config to the user's config directory and returns the path.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a any, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a any) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
