package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

type Config struct {
	LogLevel        string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFormat       string `yaml:"log-format" env:"TICTACTOE_LOG_FORMAT" env-default:"json"`
	Prompt          string `yaml:"prompt" env:"TICTACTOE_PROMPT" env-default:"> "`
	HideCellNumbers bool   `yaml:"hide-cell-numbers" env:"TICTACTOE_HIDE_CELL_NUMBERS"`
}

// Load - reads the config file at path, then applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}
