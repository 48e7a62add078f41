package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRecommendArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after ingredients are moved first",
			args:     []string{"eggs", "flour", "-max-missing", "0"},
			expected: []string{"-max-missing", "0", "eggs", "flour"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-max-missing", "0", "eggs", "flour"},
			expected: []string{"-max-missing", "0", "eggs", "flour"},
		},
		{
			name:     "ingredients only returns unchanged",
			args:     []string{"eggs", "flour"},
			expected: []string{"eggs", "flour"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommendArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("recommendArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_CwdFallback(t *testing.T) {
	dir := t.TempDir()
	configYAML := "debug: true\nserver:\n  port: 9090\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origWd)

	cfg, loadedPath, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Debug || cfg.Server.Port != 9090 {
		t.Errorf("cwd config not applied: %+v", cfg)
	}
	if filepath.Base(loadedPath) != "config.yaml" || filepath.Dir(loadedPath) == filepath.Dir(defaultConfigPath) {
		t.Errorf("loadedPath = %q, want cwd config.yaml", loadedPath)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, loadedPath, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want 7000", cfg.Server.Port)
	}
	if loadedPath != path {
		t.Errorf("loadedPath = %q, want %q", loadedPath, path)
	}
}
