// Package config loads server settings from defaults, an optional config
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "BINDERBASE"

type Config struct {
	Port      int            `mapstructure:"port"`
	Debug     bool           `mapstructure:"debug"`
	PublicURL string         `mapstructure:"public_url"`
	DB        DBConfig       `mapstructure:"db"`
	Scryfall  ProviderConfig `mapstructure:"scryfall"`
	EDHREC    ProviderConfig `mapstructure:"edhrec"`
	HTTP      HTTPConfig     `mapstructure:"http"`
	CORS      CORSConfig     `mapstructure:"cors"`
	Log       LogConfig      `mapstructure:"log"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig mirrors the lumberjack rotation settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("debug", false)
	v.SetDefault("public_url", "http://localhost:5173")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:data/binderbase.db")
	v.SetDefault("scryfall.base_url", "https://api.scryfall.com")
	v.SetDefault("edhrec.base_url", "https://json.edhrec.com/pages")
	v.SetDefault("http.timeout", 12*time.Second)
	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Load builds a Config. file may be empty; a missing .env is not an error.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// legacy names from the Node deployment
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "LISTEN_PORT")
	_ = v.BindEnv("db.dsn", EnvPrefix+"_DB_DSN", "DATABASE_URL")
	_ = v.BindEnv("db.driver", EnvPrefix+"_DB_DRIVER", "DB_DRIVER")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORS.AllowOrigins = splitOrigins(cfg.CORS.AllowOrigins)
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitOrigins accepts both list values and a single comma separated string.
func splitOrigins(in []string) []string {
	out := []string{}
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Config) Validate() error {
	var errs []error
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("db.driver must be postgres, mysql or sqlite, got %q", c.DB.Driver))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if strings.TrimSpace(c.Scryfall.BaseURL) == "" {
		errs = append(errs, errors.New("scryfall.base_url is required"))
	}
	if strings.TrimSpace(c.EDHREC.BaseURL) == "" {
		errs = append(errs, errors.New("edhrec.base_url is required"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
