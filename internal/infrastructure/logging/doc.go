// Package logging provides structured logging for Plant Shop Core.
//
// It wraps the standard log/slog package so every component logs with the
// same handler, level and default fields (service, version).
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// Usage:
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("plant created", "plant_id", 7)
//	logger.Error("failed to list plants", "error", err)
package logging
