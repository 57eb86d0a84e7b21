package commands

import (
	"errors"
	"log/slog"
	"os"

	"tabroomapi/internal/tabroom"
	"tabroomapi/lib/configutil"
	configlibsql "tabroomapi/lib/configutil/libsql"
	"tabroomapi/lib/telemetry"
)

const configFile = "tabroom.json5"

type Config struct {
	BaseUrl           string              `json:"base_url"`
	Username          string              `json:"username"`
	Password          string              `json:"password"`
	MaxConcurrency    int                 `json:"max_concurrency"`
	RequestsPerSecond float64             `json:"requests_per_second"`
	CloudflareBypass  bool                `json:"cloudflare_bypass"`
	Database          configlibsql.Struct `json:"database"`
}

// ReadConfig looks for tabroom.json5 from the cwd upwards, a missing file
// is the same as an empty one. TABROOM_USERNAME and TABROOM_PASSWORD
// override the configured credentials.
func ReadConfig() (Config, error) {
	config, err := configutil.ReadRecursively[Config](configFile)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "name", configFile)
		err = nil
	}
	if err != nil {
		return Config{}, err
	}

	if username, ok := os.LookupEnv("TABROOM_USERNAME"); ok {
		config.Username = username
	}
	if password, ok := os.LookupEnv("TABROOM_PASSWORD"); ok {
		config.Password = password
	}
	return config, nil
}

func (c Config) ClientOptions() tabroom.Options {
	return tabroom.Options{
		BaseUrl:           c.BaseUrl,
		MaxConcurrency:    c.MaxConcurrency,
		RequestsPerSecond: c.RequestsPerSecond,
		CloudflareBypass:  c.CloudflareBypass,
		Telemetry:         telemetry.SlogAPI{},
	}
}

// databaseConfig prefers a --db path over the configured database, ok is
// false when neither is set.
func (c Config) databaseConfig(path string) (configlibsql.Struct, bool) {
	if path != "" {
		return configlibsql.Struct{File: path}, true
	}
	return c.Database, c.Database.File != "" || c.Database.Url != ""
}
