package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes content to a temp config file and points
// PLANTSHOP_CONFIG at it.
func writeConfig(t *testing.T, content string) {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("PLANTSHOP_CONFIG", configPath)
}

// freePort asks the kernel for an unused TCP port.
func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

// TestRun_InvalidConfig verifies run fails with a config path that does not exist.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("PLANTSHOP_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
	if !strings.Contains(err.Error(), "loading config") {
		t.Errorf("run() error = %v, want loading config error", err)
	}
}

// TestRun_UnparsableConfig verifies run fails when the YAML is malformed.
func TestRun_UnparsableConfig(t *testing.T) {
	writeConfig(t, "database: [unterminated\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with malformed YAML")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	writeConfig(t, `
database:
  path: ""
  wal_mode: true
  busy_timeout: 5

api:
  host: "127.0.0.1"
  port: 5555

logging:
  level: info
  format: text
  output: stdout
`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with empty database path")
	}
	if !strings.Contains(err.Error(), "database.path") {
		t.Errorf("run() error = %v, want database.path validation error", err)
	}
}

// TestRun_InvalidPortOverride verifies environment overrides are validated.
func TestRun_InvalidPortOverride(t *testing.T) {
	writeConfig(t, "logging:\n  level: error\n")
	t.Setenv("PLANTSHOP_API_PORT", "not-a-port")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with non-numeric PLANTSHOP_API_PORT")
	}
}

// TestRun_ServesAndShutsDown starts the full service with an unreachable
// MQTT broker, waits for /health, then cancels and expects a clean exit.
func TestRun_ServesAndShutsDown(t *testing.T) {
	port := freePort(t)
	dbDir := t.TempDir()
	writeConfig(t, fmt.Sprintf(`
database:
  path: %q
  wal_mode: true
  busy_timeout: 5

api:
  host: "127.0.0.1"
  port: %d

mqtt:
  enabled: true
  broker:
    host: "127.0.0.1"
    port: 1
    client_id: "plantshop-test"
  qos: 1

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: stderr
`, filepath.Join(dbDir, "plants.db"), port))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/plants", port)
	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := http.Get(url) //nolint:noctx // Test polling
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("GET /plants status = %d, want 200", resp.StatusCode)
			}
			break
		}
		select {
		case err := <-done:
			t.Fatalf("run() exited early: %v", err)
		default:
		}
		if time.Now().After(deadline) {
			t.Fatal("server did not become ready")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v, want nil on shutdown", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}

// TestLoadConfig_DefaultsWhenMissing verifies the built-in defaults are used
// when no config file is present at the default path.
func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PLANTSHOP_CONFIG", "")

	cfg, path, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for defaults", path)
	}
	if cfg.API.Port != 5555 {
		t.Errorf("API.Port = %d, want 5555", cfg.API.Port)
	}
	if cfg.Database.Path != "./data/plants.db" {
		t.Errorf("Database.Path = %q, want ./data/plants.db", cfg.Database.Path)
	}
}

// TestLoadConfig_DefaultPathFile verifies configs/config.yaml is read when
// PLANTSHOP_CONFIG is unset.
func TestLoadConfig_DefaultPathFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PLANTSHOP_CONFIG", "")

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(defaultConfigPath, []byte("api:\n  port: 6000\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, path, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if path != defaultConfigPath {
		t.Errorf("path = %q, want %q", path, defaultConfigPath)
	}
	if cfg.API.Port != 6000 {
		t.Errorf("API.Port = %d, want 6000", cfg.API.Port)
	}
}

// TestRun_DotEnvOverrides verifies .env values feed the environment
// overrides, here turning a valid config into an invalid one.
func TestRun_DotEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PLANTSHOP_CONFIG", "")
	t.Setenv("PLANTSHOP_API_PORT", "")
	os.Unsetenv("PLANTSHOP_API_PORT")

	if err := os.WriteFile(dotEnvPath, []byte("PLANTSHOP_API_PORT=70000\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with out-of-range port from .env")
	}
	if !strings.Contains(err.Error(), "api.port") {
		t.Errorf("run() error = %v, want api.port validation error", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older toolchains).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore Chdir(%q): %v", prev, err)
		}
	})
}
