// Package config handles evenup configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/henri123lemoine/evenup/internal/avatar"
	"github.com/henri123lemoine/evenup/internal/ledger"
)

// Config represents evenup configuration.
type Config struct {
	UI      UIConfig       `toml:"ui"`
	Avatar  AvatarConfig   `toml:"avatar"`
	Keys    KeysConfig     `toml:"keys"`
	Friends []FriendConfig `toml:"friends"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Symbol printed in front of amounts
	Currency string `toml:"currency"`

	// Show each friend's image URL under their name
	ShowImages bool `toml:"show_images"`

	// Show the owed/owing totals in the footer
	ShowSummary bool `toml:"show_summary"`

	// Color theme: auto, dark, light
	Theme string `toml:"theme"`
}

// AvatarConfig controls placeholder images for new friends.
type AvatarConfig struct {
	// URL template; {size} is replaced with a random size
	URLTemplate string `toml:"url_template"`

	// Largest size drawn (inclusive)
	MaxSize int `toml:"max_size"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Home   string `toml:"home"`
	End    string `toml:"end"`
	Select string `toml:"select"`
	Add    string `toml:"add"`
	Filter string `toml:"filter"`
	Help   string `toml:"help"`
	Quit   string `toml:"quit"`
}

// FriendConfig seeds a friend at start-up.
type FriendConfig struct {
	ID      string  `toml:"id"`
	Name    string  `toml:"name"`
	Image   string  `toml:"image"`
	Balance float64 `toml:"balance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Currency:    "$",
			ShowImages:  true,
			ShowSummary: true,
			Theme:       "auto",
		},
		Avatar: AvatarConfig{
			URLTemplate: avatar.DefaultTemplate,
			MaxSize:     avatar.DefaultMaxSize,
		},
		Keys: KeysConfig{
			Up:     "up,k",
			Down:   "down,j",
			Home:   "home,g",
			End:    "end,G",
			Select: "enter,space",
			Add:    "a",
			Filter: "/",
			Help:   "?",
			Quit:   "q,ctrl+c",
		},
		Friends: DefaultFriends(),
	}
}

// DefaultFriends returns the friends a fresh install starts with.
func DefaultFriends() []FriendConfig {
	return []FriendConfig{
		{ID: "118836", Name: "Clark", Image: "https://i.pravatar.cc/48?u=118836", Balance: -7},
		{ID: "933372", Name: "Sarah", Image: "https://i.pravatar.cc/48?u=933372", Balance: 20},
		{ID: "499476", Name: "Anthony", Image: "https://i.pravatar.cc/48?u=499476", Balance: 0},
	}
}

// LedgerFriends converts the seed friends for the ledger.
func (c *Config) LedgerFriends() []ledger.Friend {
	friends := make([]ledger.Friend, 0, len(c.Friends))
	for _, f := range c.Friends {
		friends = append(friends, ledger.Friend{
			ID:      f.ID,
			Name:    f.Name,
			Image:   f.Image,
			Balance: f.Balance,
		})
	}
	return friends
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/evenup/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "evenup", "config.toml")
	}
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "evenup", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "evenup", "config.toml")
	}
	return filepath.Join(configDir, "evenup", "config.toml")
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// go-toml/v2 only overwrites fields present in the file, so defaults
	// survive for everything else. Array tables append, so the seed list is
	// cleared first and only restored when the file has no [[friends]].
	cfg.Friends = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Friends == nil {
		cfg.Friends = DefaultFriends()
	}

	return cfg, nil
}

// CreateDefaultConfigFile writes a commented default config file to path.
// An existing file is left alone unless force is set.
func CreateDefaultConfigFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(generateDefaultConfigContent()), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# evenup configuration\n\n")

	b.WriteString("[ui]\n")
	b.WriteString("# Symbol printed in front of amounts\n")
	fmt.Fprintf(&b, "currency = %q\n", cfg.UI.Currency)
	b.WriteString("# Show each friend's image URL under their name\n")
	fmt.Fprintf(&b, "show_images = %v\n", cfg.UI.ShowImages)
	b.WriteString("# Show owed/owing totals in the footer\n")
	fmt.Fprintf(&b, "show_summary = %v\n", cfg.UI.ShowSummary)
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n\n", cfg.UI.Theme)

	b.WriteString("[avatar]\n")
	b.WriteString("# Placeholder image for new friends; {size} is a random number\n")
	fmt.Fprintf(&b, "url_template = %q\n", cfg.Avatar.URLTemplate)
	b.WriteString("# Largest size drawn (inclusive)\n")
	fmt.Fprintf(&b, "max_size = %d\n\n", cfg.Avatar.MaxSize)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# up = %q\n", cfg.Keys.Up)
	fmt.Fprintf(&b, "# down = %q\n", cfg.Keys.Down)
	fmt.Fprintf(&b, "# select = %q\n", cfg.Keys.Select)
	fmt.Fprintf(&b, "# add = %q\n", cfg.Keys.Add)
	fmt.Fprintf(&b, "# filter = %q\n", cfg.Keys.Filter)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)

	b.WriteString("\n# Friends loaded at start-up. Balances are not saved on exit.\n")
	b.WriteString("# Negative: you owe them. Positive: they owe you.\n")
	for _, f := range cfg.Friends {
		b.WriteString("\n[[friends]]\n")
		fmt.Fprintf(&b, "id = %q\n", f.ID)
		fmt.Fprintf(&b, "name = %q\n", f.Name)
		fmt.Fprintf(&b, "image = %q\n", f.Image)
		fmt.Fprintf(&b, "balance = %s\n", tomlFloat(f.Balance))
	}

	return b.String()
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	for _, v := range extractTemplateVars(c.Avatar.URLTemplate) {
		if v != "{size}" {
			warnings = append(warnings, fmt.Sprintf("Unknown template variable in avatar.url_template: %s", v))
		}
	}

	if c.Avatar.MaxSize < 0 {
		warnings = append(warnings, fmt.Sprintf("avatar.max_size must not be negative, got %d", c.Avatar.MaxSize))
	}

	if c.UI.Theme != "" &&
		c.UI.Theme != "auto" &&
		c.UI.Theme != "dark" &&
		c.UI.Theme != "light" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for ui.theme: %s (expected auto, dark, or light)", c.UI.Theme))
	}

	ids := make(map[string]bool)
	for i, f := range c.Friends {
		if f.ID == "" {
			warnings = append(warnings, fmt.Sprintf("Friend %d has empty id", i))
		} else if ids[f.ID] {
			warnings = append(warnings, fmt.Sprintf("Duplicate friend id: %s", f.ID))
		}
		ids[f.ID] = true

		if f.Name == "" {
			warnings = append(warnings, fmt.Sprintf("Friend %d has empty name", i))
		}
		if f.Image == "" {
			warnings = append(warnings, fmt.Sprintf("Friend %s has empty image", f.Name))
		}
	}

	return warnings
}

// tomlFloat formats v so TOML reads it back as a float, not an integer.
func tomlFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

var templateVarPattern = regexp.MustCompile(`\{[^}]+\}`)

// extractTemplateVars extracts template variables from a string.
func extractTemplateVars(s string) []string {
	return templateVarPattern.FindAllString(s, -1)
}
