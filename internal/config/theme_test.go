package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThemeFileLoading(t *testing.T) {
	isolate(t)

	themeContent := []byte(`theme:
  accent: "#FF0000"
  done: "#00FF00"
  overdue: "#0000FF"
`)
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(themePath, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	t.Setenv(EnvThemeFile, themePath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Done != "#00FF00" {
		t.Errorf("Expected done to be #00FF00, got %s", cfg.ColorScheme.Done)
	}
	if cfg.ColorScheme.Overdue != "#0000FF" {
		t.Errorf("Expected overdue to be #0000FF, got %s", cfg.ColorScheme.Overdue)
	}

	// Verify other colors still have defaults
	if cfg.ColorScheme.Delete == "" {
		t.Error("Expected delete to have default value")
	}
}

func TestMonochromePreset(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "theme:\n  preset: monochrome\n  title: \"#123456\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	mono := MonochromeColorScheme()
	if cfg.ColorScheme.Accent != mono.Accent {
		t.Errorf("Accent = %s, want monochrome %s", cfg.ColorScheme.Accent, mono.Accent)
	}
	if cfg.ColorScheme.Title != "#123456" {
		t.Errorf("Title = %s, want custom override", cfg.ColorScheme.Title)
	}
}
