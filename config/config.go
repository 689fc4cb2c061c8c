package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/s3gate"
	gatehttp "github.com/sagarc03/s3gate/http"
)

// Config is the root configuration struct for the gateway.
type Config struct {
	Server        ServerConfig             `mapstructure:"server"`
	Accounts      map[string]AccountConfig `mapstructure:"accounts" validate:"dive"`
	Users         map[string]UserConfig    `mapstructure:"users" validate:"dive"`
	MaxUploadSize int64                    `mapstructure:"max_upload_size" validate:"min=0"`
	RateLimit     RateLimitConfig          `mapstructure:"rate_limit"`
	CORS          gatehttp.CORSConfig      `mapstructure:"cors"`
	Log           LogConfig                `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// AccountConfig describes one backend storage account.
type AccountConfig struct {
	EndpointURL     string   `mapstructure:"endpoint_url" validate:"required,url"`
	Region          string   `mapstructure:"region" validate:"required"`
	AccessKeyID     string   `mapstructure:"access_key_id" validate:"required"`
	SecretAccessKey string   `mapstructure:"secret_access_key" validate:"required"`
	Buckets         []string `mapstructure:"buckets"`
}

// UserConfig describes one caller identity.
type UserConfig struct {
	APIKey         string   `mapstructure:"api_key" validate:"required"`
	Role           string   `mapstructure:"role" validate:"required,oneof=admin user readonly"`
	AllowedBuckets []string `mapstructure:"allowed_buckets"`
}

// RateLimitConfig holds the per-identity admission ceiling.
type RateLimitConfig struct {
	Requests      int `mapstructure:"requests" validate:"min=1"`
	WindowSeconds int `mapstructure:"window_seconds" validate:"min=1"`
}

// Window returns the rate window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// StorageAccounts converts the account section to domain values keyed by
// account ID.
func (c *Config) StorageAccounts() map[string]s3gate.StorageAccount {
	accounts := make(map[string]s3gate.StorageAccount, len(c.Accounts))
	for id, ac := range c.Accounts {
		accounts[id] = s3gate.StorageAccount{
			ID:              id,
			Endpoint:        ac.EndpointURL,
			Region:          ac.Region,
			AccessKeyID:     ac.AccessKeyID,
			SecretAccessKey: ac.SecretAccessKey,
			Buckets:         ac.Buckets,
		}
	}
	return accounts
}

// Identities converts the user section to domain values.
func (c *Config) Identities() ([]s3gate.Identity, error) {
	identities := make([]s3gate.Identity, 0, len(c.Users))
	for username, uc := range c.Users {
		role, err := s3gate.ParseRole(uc.Role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", username, err)
		}
		identities = append(identities, s3gate.Identity{
			Username: username,
			APIKey:   uc.APIKey,
			Role:     role,
			Buckets:  uc.AllowedBuckets,
		})
	}
	return identities, nil
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"host":            "server.host",
	"port":            "server.port",
	"max-upload-size": "max_upload_size",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("max_upload_size", int64(s3gate.DefaultMaxPayloadSize))

	v.SetDefault("rate_limit.requests", s3gate.DefaultRateLimit)
	v.SetDefault("rate_limit.window_seconds", int(s3gate.DefaultRateWindow/time.Second))

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("S3GATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if len(cfg.Accounts) == 0 {
		slog.Warn("no storage accounts configured; every bucket will resolve to not found")
	}
	if len(cfg.Users) == 0 {
		slog.Warn("no users configured; every request will be rejected")
	}

	return &cfg, nil
}
