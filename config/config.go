package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/CIDgravity/snakelet"
)

// config structure
type Config struct {
	API      APIConfig      `mapstructure:"API"`
	Github   GithubConfig   `mapstructure:"GITHUB"`
	Telegram TelegramConfig `mapstructure:"TELEGRAM"`
	Tasks    TasksConfig    `mapstructure:"TASKS"`
	Store    StoreConfig    `mapstructure:"STORE"`
	Logs     LogsConfig     `mapstructure:"LOGS"`
}

type APIConfig struct {
	ListenPort string `mapstructure:"ListenPort"`
}

type GithubConfig struct {
	Token string `mapstructure:"Token"`
}

type TelegramConfig struct {
	Enabled       bool   `mapstructure:"Enabled"`
	Token         string `mapstructure:"Token"`
	UpdateTimeout int    `mapstructure:"UpdateTimeout"` // long polling timeout in seconds
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
}

type StoreConfig struct {
	Path string `mapstructure:"Path"` // bbolt file used for per-profile scan counters
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug | trace - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJson"`
}

// Load
func Load() (*Config, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return nil, err
	}

	// check config file exists
	configFilePath := dir + "/config/config.toml"

	if _, err := os.Stat(dir + "/config/config.toml"); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat("config/config.toml"); errors.Is(err, os.ErrNotExist) {
			return nil, err
		} else {
			configFilePath = "config/config.toml"
		}
	}

	// load default and config file content
	cfg := GetDefault()
	_, err = snakelet.InitAndLoad(cfg, configFilePath)

	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort: "5000",
		},
		Github: GithubConfig{
			Token: "",
		},
		Telegram: TelegramConfig{
			Enabled:       false,
			Token:         "",
			UpdateTimeout: 60,
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
		},
		Store: StoreConfig{
			Path: "scan_counts.db",
		},
		Logs: LogsConfig{
			Level:            "debug",
			OutputLogsAsJSON: false,
		},
	}
}
