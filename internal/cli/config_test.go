package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/wdkit/internal/config"
)

func TestConfigInitCommand(t *testing.T) {
	root := setupTestEnv(t)
	path := filepath.Join(root, "config.yaml")

	output, err := executeCommand(t, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(output, path) {
		t.Errorf("expected output to name %s, got %q", path, output)
	}

	loaded, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("written settings do not load: %v", err)
	}
	if *loaded != *config.DefaultSettings() {
		t.Errorf("written settings = %+v, want defaults", *loaded)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := executeCommand(t, "config", "init")
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already exists error, got %v", err)
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("timeout: 9\n"), 0644); err != nil {
			t.Fatalf("failed to write settings: %v", err)
		}
		if _, err := executeCommand(t, "config", "init", "--force"); err != nil {
			t.Fatalf("config init --force failed: %v", err)
		}

		loaded, err := config.LoadSettings(path)
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if loaded.Timeout != config.DefaultTimeoutSeconds {
			t.Errorf("Timeout = %d, want %d", loaded.Timeout, config.DefaultTimeoutSeconds)
		}
	})
}

func TestConfigShowCommand(t *testing.T) {
	t.Run("shows defaults", func(t *testing.T) {
		setupTestEnv(t)

		output, err := executeCommand(t, "config", "show")
		if err != nil {
			t.Fatalf("config show failed: %v", err)
		}
		for _, want := range []string{"Control URL: (launch browser)", "Headless: true", "Timeout: 30s", "Log level: info"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected %q in output %q", want, output)
			}
		}
	})

	t.Run("json reflects overrides", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("WDKIT_CONTROL_URL", "ws://127.0.0.1:9222/devtools/browser/x")

		output, err := executeCommand(t, "config", "show", "--json")
		if err != nil {
			t.Fatalf("config show --json failed: %v", err)
		}

		var got config.Settings
		if err := json.Unmarshal([]byte(output), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", output, err)
		}
		if got.ControlURL != "ws://127.0.0.1:9222/devtools/browser/x" {
			t.Errorf("ControlURL = %q", got.ControlURL)
		}
	})

	t.Run("invalid settings fail", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("WDKIT_TIMEOUT", "0")

		if _, err := executeCommand(t, "config", "show"); err == nil {
			t.Error("expected validation error")
		}
	})
}
