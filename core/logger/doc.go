// Package logger builds the zap loggers used across the correlator.
//
// The debug level selects zap's development preset, every other level the
// production one. Format picks console or json encoding. Keys are always
// level, time and message.
//
// # Request scoping
//
// WithRayID attaches the ray_id set by the rayid middleware, so every log
// line of one HTTP request, including the correlation run it triggers, can
// be grouped.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Correlation run failed", zap.Error(err))
package logger
