// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Battle   BattleConfig   `toml:"battle"`
}

// PracticeConfig maps practice-session settings.
type PracticeConfig struct {
	Mode      *string `toml:"mode"`
	TimerMode *string `toml:"timer-mode"`
	TimeLimit *int    `toml:"time-limit"`
	Tables    *[]int  `toml:"tables"`
	RangeMin  *int    `toml:"range-min"`
	RangeMax  *int    `toml:"range-max"`
	Questions *int    `toml:"questions"`
}

// BattleConfig maps battle-mode settings.
type BattleConfig struct {
	Difficulty *string `toml:"difficulty"`
	Name       *string `toml:"name"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
