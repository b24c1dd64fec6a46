package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
database:
  path: "/tmp/plants-test.db"
  wal_mode: true
  busy_timeout: 5
api:
  host: "127.0.0.1"
  port: 5556
mqtt:
  enabled: true
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/plants-test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/plants-test.db")
	}

	if cfg.API.Port != 5556 {
		t.Errorf("API.Port = %d, want 5556", cfg.API.Port)
	}

	if !cfg.MQTT.Enabled {
		t.Error("MQTT.Enabled = false, want true")
	}

	// Values absent from the file keep their defaults
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.WebSocket.Path != "/ws" {
		t.Errorf("WebSocket.Path = %q, want %q", cfg.WebSocket.Path, "/ws")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
database:
  path: ""
api:
  port: 5555
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty database.path, got nil")
	}
}

func TestLoad_InvalidPortOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("api:\n  port: 5555\n"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv("PLANTSHOP_API_PORT", "not-a-port")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() expected error for non-numeric PLANTSHOP_API_PORT, got nil")
	}
	if !strings.Contains(err.Error(), "PLANTSHOP_API_PORT") {
		t.Errorf("error = %v, want mention of PLANTSHOP_API_PORT", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555},
			},
			wantErr: false,
		},
		{
			name: "missing database path",
			config: &Config{
				Database: DatabaseConfig{Path: ""},
				API:      APIConfig{Port: 5555},
			},
			wantErr: true,
		},
		{
			name: "invalid port low",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 0},
			},
			wantErr: true,
		},
		{
			name: "invalid port high",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 70000},
			},
			wantErr: true,
		},
		{
			name: "tls without certificate",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555, TLS: TLSConfig{Enabled: true}},
			},
			wantErr: true,
		},
		{
			name: "invalid QoS ignored when mqtt disabled",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555},
				MQTT:     MQTTConfig{QoS: 3},
			},
			wantErr: false,
		},
		{
			name: "invalid QoS",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555},
				MQTT: MQTTConfig{
					Enabled: true,
					Broker:  MQTTBrokerConfig{Host: "localhost"},
					QoS:     3,
				},
			},
			wantErr: true,
		},
		{
			name: "mqtt enabled without host",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555},
				MQTT:     MQTTConfig{Enabled: true, QoS: 1},
			},
			wantErr: true,
		},
		{
			name: "influxdb enabled without url",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555},
				InfluxDB: InfluxDBConfig{Enabled: true, Bucket: "plants"},
			},
			wantErr: true,
		},
		{
			name: "influxdb enabled without bucket",
			config: &Config{
				Database: DatabaseConfig{Path: "/data/plants.db"},
				API:      APIConfig{Port: 5555},
				InfluxDB: InfluxDBConfig{Enabled: true, URL: "http://localhost:8086"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{API: APIConfig{Port: 0}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "database.path") || !strings.Contains(msg, "api.port") {
		t.Errorf("Validate() error = %q, want both database.path and api.port", msg)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("PLANTSHOP_DATABASE_PATH", "/custom/path.db")
	t.Setenv("PLANTSHOP_API_HOST", "192.168.1.1")
	t.Setenv("PLANTSHOP_API_PORT", "9090")
	t.Setenv("PLANTSHOP_MQTT_HOST", "mqtt.example.com")
	t.Setenv("PLANTSHOP_MQTT_USERNAME", "testuser")
	t.Setenv("PLANTSHOP_MQTT_PASSWORD", "testpass")
	t.Setenv("PLANTSHOP_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("PLANTSHOP_LOG_LEVEL", "debug")

	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides() error = %v", err)
	}

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}
	if cfg.API.Host != "192.168.1.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "192.168.1.1")
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}
	if cfg.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.MQTT.Auth.Username, "testuser")
	}
	if cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth.Password = %q, want %q", cfg.MQTT.Auth.Password, "testpass")
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path == "" {
		t.Error("defaultConfig should have non-empty Database.Path")
	}

	if cfg.API.Port != 5555 {
		t.Errorf("defaultConfig API.Port = %d, want 5555", cfg.API.Port)
	}

	if cfg.MQTT.Enabled {
		t.Error("defaultConfig should leave MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		t.Error("defaultConfig should leave InfluxDB disabled")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig should be valid, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("PLANTSHOP_DATABASE_PATH", "/env/plants.db")

	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if cfg.Database.Path != "/env/plants.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/env/plants.db")
	}
}

func TestConfig_Address(t *testing.T) {
	cfg := &Config{API: APIConfig{Host: "127.0.0.1", Port: 5555}}
	if got := cfg.Address(); got != "127.0.0.1:5555" {
		t.Errorf("Address() = %q, want %q", got, "127.0.0.1:5555")
	}
}
