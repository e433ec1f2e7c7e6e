// Package config loads the correlator's configuration.
//
// Values come from environment variables, optionally overlaid from a .env
// file, and fall back to the `default` struct tags. Keys are derived from the
// `mapstructure` tags, so Correlation.CacheTTLSeconds is read from
// CORRELATION_CACHE_TTL_SECONDS.
//
// # Sections
//
//   - Server: port, API key, request body cap
//   - Database: MySQL or SQLite connection
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Correlation: run defaults (workers, cache TTL, reporter, default sources)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
