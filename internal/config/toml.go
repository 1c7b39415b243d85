// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/filc/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	DefaultUser string            `toml:"default-user"`
	Users       map[string]User   `toml:"users"`
	Rename      map[string]string `toml:"rename"`
	Charts      ChartConfig       `toml:"charts"`
	Timetable   TimetableConfig   `toml:"timetable"`
}

// User describes a saved school account.
type User struct {
	Name   string `toml:"name"`
	School string `toml:"school"`
}

// ChartConfig sizes the average trend chart.
type ChartConfig struct {
	Width  *int `toml:"width"`
	Height *int `toml:"height"`
}

// TimetableConfig maps timetable-related settings.
type TimetableConfig struct {
	FirstSlot      *string `toml:"first-slot"`
	LookaheadWeeks *int    `toml:"lookahead-weeks"`
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

// SaveConfig writes cfg to path, replacing the file atomically.
func SaveConfig(path string, cfg FileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// UserIDs returns the saved account ids in sorted order.
func (c FileConfig) UserIDs() []string {
	ids := make([]string, 0, len(c.Users))
	for id := range c.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SlotBase parses the first-slot setting: "auto" (default), "0" or "1".
func (c TimetableConfig) SlotBase() (model.SlotBase, error) {
	if c.FirstSlot == nil {
		return model.SlotBaseAuto, nil
	}
	switch *c.FirstSlot {
	case "", "auto":
		return model.SlotBaseAuto, nil
	case "0":
		return model.SlotBaseZero, nil
	case "1":
		return model.SlotBaseOne, nil
	default:
		return model.SlotBaseAuto, fmt.Errorf("invalid first-slot %q (want auto, 0 or 1)", *c.FirstSlot)
	}
}
