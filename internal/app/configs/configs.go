package configs

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Application configs
type Config struct {
	ServerAddress   string        `mapstructure:"listen"`
	BaseURL         string        `mapstructure:"url"`
	Key             string        `mapstructure:"key"`
	LogLevel        string        `mapstructure:"log_level"`
	FileStoragePath string        `mapstructure:"file_storage_path"`
	DatabaseDSN     string        `mapstructure:"database_dsn"`
	TrustedSubnet   string        `mapstructure:"trusted_subnet"`
	DispatchTimeout time.Duration `mapstructure:"dispatch_timeout"`
	FlushInterval   time.Duration `mapstructure:"flush_interval"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	EnableHTTPS     bool          `mapstructure:"enable_https"`
}

var envBindings = map[string]string{
	"listen":            "SERVER_ADDRESS",
	"url":               "BASE_URL",
	"key":               "KEY",
	"log_level":         "LOG_LEVEL",
	"file_storage_path": "FILE_STORAGE_PATH",
	"database_dsn":      "DATABASE_DSN",
	"trusted_subnet":    "TRUSTED_SUBNET",
	"dispatch_timeout":  "DISPATCH_TIMEOUT",
	"flush_interval":    "FLUSH_INTERVAL",
	"cors_origins":      "CORS_ORIGINS",
	"enable_https":      "ENABLE_HTTPS",
}

// Parse configs from args (without program name), environment and
// optional JSON config file. Flags win over env, env over file
func Parse(args []string) (Config, error) {
	flags := pflag.NewFlagSet("pixeltrack", pflag.ContinueOnError)
	flags.StringP("listen", "a", "0.0.0.0:8080", "address to listen on")
	flags.StringP("url", "b", "", "URL base for created links, e.g. https://example.org/pt/")
	flags.String("key", "", "age identity (AGE-SECRET-KEY-1...), prefer KEY env")
	flags.StringP("log-level", "l", "info", "log level")
	flags.StringP("file-storage-path", "f", "", "hit journal file path")
	flags.StringP("database-dsn", "d", "", "hit journal database URL")
	flags.StringP("trusted-subnet", "t", "", "CIDR allowed to read internal stats")
	flags.Duration("dispatch-timeout", 10*time.Second, "webhook delivery timeout")
	flags.Duration("flush-interval", 5*time.Second, "hit journal flush interval")
	flags.BoolP("enable-https", "s", false, "enable HTTPS")
	flags.StringSlice("cors-origins", nil, "origins allowed to call the JSON API from a browser")
	configFilePath := flags.StringP("config", "c", "", "file path with json application configs")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if key != "config" {
			// Binding never fails for a non-nil flag.
			_ = v.BindPFlag(key, f)
		}
	})
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if *configFilePath == "" {
		_ = v.BindEnv("config", "CONFIG")
		*configFilePath = v.GetString("config")
	}
	if *configFilePath != "" {
		v.SetConfigFile(*configFilePath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read configs: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse configs: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate
func (c Config) Validate() error {
	if c.ServerAddress == "" {
		return errors.New("server address must not be empty")
	}
	if c.BaseURL == "" {
		return errors.New("base URL must not be empty")
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return fmt.Errorf("base URL %q must be absolute", c.BaseURL)
	}
	if c.Key == "" {
		return errors.New("age identity must be provided via KEY")
	}
	if c.DispatchTimeout <= 0 {
		return errors.New("dispatch timeout must be positive")
	}
	if c.FlushInterval <= 0 {
		return errors.New("flush interval must be positive")
	}

	return nil
}

// Parsed base URL. Valid after Validate
func (c Config) BaseLinkURL() *url.URL {
	base, _ := url.Parse(c.BaseURL)
	return base
}

// Use database storage
func (c Config) UseDBStorage() bool {
	return c.DatabaseDSN != ""
}

// Use file storage
func (c Config) UseFileStorage() bool {
	return c.FileStoragePath != ""
}

// Use HTTPS
func (c Config) UseHTTPS() bool {
	return c.EnableHTTPS
}
