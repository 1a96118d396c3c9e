package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv("WDKIT_ROOT", "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root == "" {
			t.Error("Root should not be empty")
		}
		if paths.Config != filepath.Join(paths.Root, "config.yaml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
		if filepath.Base(paths.Root) != ".wdkit" {
			t.Errorf("Root should end with .wdkit, got: %s", paths.Root)
		}
	})

	t.Run("respects WDKIT_ROOT environment variable", func(t *testing.T) {
		customRoot := "/custom/wdkit/path"
		t.Setenv("WDKIT_ROOT", customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Config != filepath.Join(customRoot, "config.yaml") {
			t.Errorf("Config should be under custom root, got: %s", paths.Config)
		}
	})
}

func TestEnsureDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "wdkit")
	paths := NewPaths(root)

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("root was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("root should be a directory")
	}

	// Second call is a no-op
	if err := paths.EnsureDirectories(); err != nil {
		t.Errorf("EnsureDirectories should be idempotent: %v", err)
	}
}
