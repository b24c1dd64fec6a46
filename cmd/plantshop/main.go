// Plant Shop Core serves the plant catalogue over a JSON REST API.
//
// It stores plants in SQLite, streams change events over WebSocket and,
// when configured, publishes them to MQTT and records prices in InfluxDB.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nerrad567/plantshop-core/internal/api"
	"github.com/nerrad567/plantshop-core/internal/infrastructure/config"
	"github.com/nerrad567/plantshop-core/internal/infrastructure/database"
	"github.com/nerrad567/plantshop-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/plantshop-core/internal/infrastructure/logging"
	"github.com/nerrad567/plantshop-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/plantshop-core/internal/plant"
	"github.com/nerrad567/plantshop-core/migrations"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// dotEnvPath holds optional PLANTSHOP_* overrides for local runs.
// Variables already set in the environment win.
const dotEnvPath = ".env"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component, serves until ctx is cancelled, then shuts
// down in reverse start order.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Plant Shop Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	if err := godotenv.Load(dotEnvPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", dotEnvPath, err)
		}
	} else {
		log.Info("environment file loaded", "path", dotEnvPath)
	}

	cfg, configPath, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if configPath == "" {
		log.Info("no config file found, using defaults", "path", defaultConfigPath)
	} else {
		log.Info("configuration loaded", "path", configPath)
	}

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", db.Path())

	if migrateErr := db.Migrate(ctx, migrations.FS); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	deps := api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   log,
		Plants:   plant.NewSQLiteRepository(db.DB),
		DB:       db,
		EventQoS: byte(cfg.MQTT.QoS), //nolint:gosec // Validated to 0..2
		Version:  version,
	}

	mqttClient := connectMQTT(cfg.MQTT, log)
	if mqttClient != nil {
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		deps.Publisher = mqttClient
	}

	influxClient := connectInfluxDB(cfg.InfluxDB, log)
	if influxClient != nil {
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		deps.Prices = influxClient
	}

	server, err := api.New(deps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server listening", "address", server.Addr())

	if err := healthCheck(ctx, log, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// API server, InfluxDB, MQTT, database.
	return nil
}

// healthCheck verifies components after startup. The database is required;
// MQTT and InfluxDB are optional, so their failures are only logged.
func healthCheck(ctx context.Context, log *logging.Logger, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			log.Warn("MQTT health check failed", "error", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			log.Warn("InfluxDB health check failed", "error", err)
		}
	}

	return nil
}

// loadConfig reads the config file named by PLANTSHOP_CONFIG, or
// configs/config.yaml. A missing default file falls back to built-in
// defaults; a missing file named explicitly is an error.
// The returned path is empty when defaults were used.
func loadConfig() (*config.Config, string, error) {
	path, explicit := os.LookupEnv("PLANTSHOP_CONFIG")
	if !explicit || path == "" {
		path = defaultConfigPath
		explicit = false
	}

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, path, nil
	}
	if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, "", err
	}

	cfg, err = config.Default()
	if err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}

// connectMQTT returns a connected client, or nil when MQTT is disabled or
// the broker is unreachable. The service degrades to WebSocket-only events.
func connectMQTT(cfg config.MQTTConfig, log *logging.Logger) *mqtt.Client {
	if !cfg.Enabled {
		log.Info("MQTT disabled")
		return nil
	}

	client, err := mqtt.Connect(cfg)
	if err != nil {
		log.Warn("MQTT unavailable, plant events will not be published", "error", err)
		return nil
	}
	client.SetLogger(log)
	client.SetOnConnect(func() {
		log.Info("MQTT connected")
	})
	client.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.Broker.Host, cfg.Broker.Port),
		"client_id", cfg.Broker.ClientID,
	)
	return client
}

// connectInfluxDB returns a connected client, or nil when price history is
// disabled or InfluxDB is unreachable.
func connectInfluxDB(cfg config.InfluxDBConfig, log *logging.Logger) *influxdb.Client {
	if !cfg.Enabled {
		log.Info("InfluxDB disabled")
		return nil
	}

	client, err := influxdb.Connect(cfg)
	if err != nil {
		log.Warn("InfluxDB unavailable, price history will not be recorded", "error", err)
		return nil
	}
	client.SetOnError(func(err error) {
		log.Error("InfluxDB write error", "error", err)
	})

	log.Info("InfluxDB connected",
		"url", cfg.URL,
		"org", cfg.Org,
		"bucket", cfg.Bucket,
	)
	return client
}
