package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Currency != "$" {
		t.Errorf("Expected default currency '$', got %q", cfg.UI.Currency)
	}

	if cfg.Avatar.URLTemplate != "https://i.pravatar.cc/{size}" {
		t.Errorf("Expected pravatar template, got %q", cfg.Avatar.URLTemplate)
	}

	if cfg.Avatar.MaxSize != 100 {
		t.Errorf("Expected max size 100, got %d", cfg.Avatar.MaxSize)
	}

	if !cfg.UI.ShowImages {
		t.Error("Expected ShowImages to be true")
	}

	if len(cfg.Friends) != 3 {
		t.Fatalf("Expected 3 seed friends, got %d", len(cfg.Friends))
	}
	if cfg.Friends[0].Name != "Clark" || cfg.Friends[0].Balance != -7 {
		t.Errorf("Unexpected first friend: %+v", cfg.Friends[0])
	}
}

func TestLedgerFriends(t *testing.T) {
	friends := DefaultConfig().LedgerFriends()

	if len(friends) != 3 {
		t.Fatalf("Expected 3 friends, got %d", len(friends))
	}
	if friends[1].ID != "933372" || friends[1].Name != "Sarah" || friends[1].Balance != 20 {
		t.Errorf("Unexpected second friend: %+v", friends[1])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			config:      DefaultConfig(),
			wantWarning: false,
		},
		{
			name: "invalid template variable",
			config: &Config{
				Avatar: AvatarConfig{URLTemplate: "https://example.com/{width}"},
			},
			wantWarning: true,
		},
		{
			name: "template without variables",
			config: &Config{
				Avatar: AvatarConfig{URLTemplate: "https://example.com/me.png"},
			},
			wantWarning: false,
		},
		{
			name: "negative max size",
			config: &Config{
				Avatar: AvatarConfig{MaxSize: -1},
			},
			wantWarning: true,
		},
		{
			name: "invalid theme",
			config: &Config{
				UI: UIConfig{Theme: "invalid"},
			},
			wantWarning: true,
		},
		{
			name: "duplicate friend id",
			config: &Config{
				Friends: []FriendConfig{
					{ID: "1", Name: "Clark", Image: "img"},
					{ID: "1", Name: "Sarah", Image: "img"},
				},
			},
			wantWarning: true,
		},
		{
			name: "friend without name",
			config: &Config{
				Friends: []FriendConfig{{ID: "1", Image: "img"}},
			},
			wantWarning: true,
		},
		{
			name: "friend without image",
			config: &Config{
				Friends: []FriendConfig{{ID: "1", Name: "Clark"}},
			},
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.Validate()
			hasWarnings := len(warnings) > 0
			if hasWarnings != tt.wantWarning {
				t.Errorf("Validate() hasWarnings = %v, want %v. Warnings: %v", hasWarnings, tt.wantWarning, warnings)
			}
		})
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Only specify some values - others should keep defaults
	tomlContent := `[ui]
currency = "€"

[avatar]
max_size = 64
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.UI.Currency != "€" {
		t.Errorf("Expected currency '€', got %q", cfg.UI.Currency)
	}
	if cfg.Avatar.MaxSize != 64 {
		t.Errorf("Expected max size 64, got %d", cfg.Avatar.MaxSize)
	}

	if cfg.Avatar.URLTemplate != "https://i.pravatar.cc/{size}" {
		t.Errorf("Expected default template, got %q", cfg.Avatar.URLTemplate)
	}

	// Boolean defaults are preserved when not specified
	if !cfg.UI.ShowImages {
		t.Error("Expected ShowImages to remain true (default) when not specified in config")
	}

	if len(cfg.Friends) != 3 {
		t.Errorf("Expected default friends to remain, got %d", len(cfg.Friends))
	}
}

func TestLoadReplacesFriends(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	tomlContent := `[[friends]]
id = "1"
name = "Dana"
image = "https://i.pravatar.cc/48?u=1"
balance = 12.5
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if len(cfg.Friends) != 1 {
		t.Fatalf("Expected 1 friend, got %d", len(cfg.Friends))
	}
	if cfg.Friends[0].Name != "Dana" || cfg.Friends[0].Balance != 12.5 {
		t.Errorf("Unexpected friend: %+v", cfg.Friends[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.UI.Currency != "$" {
		t.Errorf("Expected defaults for a missing file, got currency %q", cfg.UI.Currency)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[ui\ncurrency = "), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadFromPath(configPath); err == nil {
		t.Error("Expected an error for malformed TOML")
	}
}

func TestCreateDefaultConfigFileRoundTrips(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "evenup", "config.toml")

	if err := CreateDefaultConfigFile(configPath, false); err != nil {
		t.Fatalf("CreateDefaultConfigFile() error: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if warnings := cfg.Validate(); len(warnings) > 0 {
		t.Errorf("Generated config has warnings: %v", warnings)
	}
	if len(cfg.Friends) != 3 || cfg.Friends[2].Name != "Anthony" {
		t.Errorf("Generated config lost seed friends: %+v", cfg.Friends)
	}

	if err := CreateDefaultConfigFile(configPath, false); err == nil {
		t.Error("Expected an error when the file already exists")
	}
	if err := CreateDefaultConfigFile(configPath, true); err != nil {
		t.Errorf("Expected force to overwrite, got %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigPath(); got != "/tmp/xdg/evenup/config.toml" {
		t.Errorf("Expected XDG path, got %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected config.toml, got %q", filepath.Base(path))
	}
	if !strings.HasSuffix(filepath.Dir(path), "evenup") {
		t.Errorf("Expected evenup dir, got %q", filepath.Dir(path))
	}
}

func TestExtractTemplateVars(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"https://i.pravatar.cc/{size}", []string{"{size}"}},
		{"no vars here", nil},
		{"{a} {b} {c}", []string{"{a}", "{b}", "{c}"}},
		{"{}", nil}, // Empty braces are not valid template vars
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := extractTemplateVars(tt.input)
			if len(got) != len(tt.expected) {
				t.Errorf("extractTemplateVars(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
