// Package config reads the YAML description of a tray application run by
// the gallium command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifold/gallium/pkg/menu"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no path is given.
const DefaultPath = "gallium.yaml"

// Config represents a gallium.yaml file.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Status StatusConfig `yaml:"status"`
	Menus  []MenuConfig `yaml:"menus"`
}

// AppConfig contains application settings.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	UI   bool   `yaml:"ui,omitempty"`
}

// StatusConfig describes the status bar slot. A blank title and no items
// means no slot.
type StatusConfig struct {
	Title     string       `yaml:"title,omitempty"`
	Width     int          `yaml:"width,omitempty"`
	Highlight bool         `yaml:"highlight,omitempty"`
	Icon      string       `yaml:"icon,omitempty"`
	Items     []ItemConfig `yaml:"items,omitempty"`
}

// MenuConfig is a top-level menu of the main menu.
type MenuConfig struct {
	Title string       `yaml:"title"`
	Items []ItemConfig `yaml:"items"`
}

// ItemConfig is a menu item. An item with Items opens a submenu; a title
// of "-" is a separator.
type ItemConfig struct {
	Title    string                 `yaml:"title"`
	Shortcut string                 `yaml:"shortcut,omitempty"`
	Action   string                 `yaml:"action,omitempty"`
	With     map[string]interface{} `yaml:"with,omitempty"`
	Items    []ItemConfig           `yaml:"items,omitempty"`
}

// HasStatus reports whether a status bar slot is configured.
func (c *Config) HasStatus() bool {
	return c.Status.Title != "" || len(c.Status.Items) > 0
}

// Load reads and validates the file at path.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOptional reads the file at path if present.
func LoadOptional(fs afero.Fs, path string) (*Config, error) {
	cfg, err := Load(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Parse decodes and validates a config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Status.Width == 0 {
		cfg.Status.Width = 24
	}
	return &cfg, nil
}

// Validate checks shortcuts and actions of every item.
func (c *Config) Validate() error {
	if c.Status.Width < 0 {
		return fmt.Errorf("status.width must not be negative (got %d)", c.Status.Width)
	}
	for _, m := range c.Menus {
		if m.Title == "" {
			return fmt.Errorf("menu without title")
		}
		if err := validateItems(m.Items); err != nil {
			return fmt.Errorf("menu %q: %w", m.Title, err)
		}
	}
	if err := validateItems(c.Status.Items); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	return nil
}

func validateItems(items []ItemConfig) error {
	for _, item := range items {
		if item.Title == "" {
			return fmt.Errorf("item without title")
		}
		if item.Shortcut != "" {
			if _, _, err := menu.ParseShortcut(item.Shortcut); err != nil {
				return fmt.Errorf("item %q: %w", item.Title, err)
			}
		}
		if len(item.Items) > 0 {
			if item.Action != "" {
				return fmt.Errorf("item %q: submenu items cannot have an action", item.Title)
			}
			if err := validateItems(item.Items); err != nil {
				return fmt.Errorf("item %q: %w", item.Title, err)
			}
			continue
		}
		if _, err := item.Decode(); err != nil {
			return fmt.Errorf("item %q: %w", item.Title, err)
		}
	}
	return nil
}
