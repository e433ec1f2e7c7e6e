package config

import (
	"reflect"
	"strings"

	"data-correlator/core/database"
	"data-correlator/core/logger"
	"data-correlator/core/server"
	"data-correlator/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Correlation holds defaults for correlation runs.
	Correlation Correlation `mapstructure:"correlation"`
}

// Correlation holds defaults applied when a run request leaves them out.
type Correlation struct {
	// Workers spreads a run over this many goroutines. 1 keeps runs sequential.
	Workers int `mapstructure:"workers" default:"1"`
	// CacheTTLSeconds is how long a loaded record set is reused. 0 disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
	// DefaultReporter projects records in reports when a run names none.
	DefaultReporter string `mapstructure:"default_reporter" default:"id"`
	// PeopleTable is the table read for "db" sources without an explicit table.
	PeopleTable string `mapstructure:"people_table" default:"people"`
	// PeopleObject is the object read for "storage" sources without an explicit name.
	PeopleObject string `mapstructure:"people_object" default:"exports/people.json"`
	// ReportPrefix is where stored reports are written in the bucket.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
}

// LoadConfig loads configuration from environment variables and the .env
// file found in path. Variables are named SECTION_KEY, e.g. DATABASE_HOST.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// default tag value, so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Empty defaults are still registered.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
