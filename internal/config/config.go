package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"io/fs"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	CORS      CORSConfig      `mapstructure:"cors"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Security  SecurityConfig  `mapstructure:"security"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Backend   BackendConfig   `mapstructure:"backend"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
	Seed   bool   `mapstructure:"seed"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type JWTConfig struct {
	SecretKey   string `mapstructure:"secret_key"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type SecurityConfig struct {
	Users []UserConfig `mapstructure:"users"`
}

// UserConfig is an account created at start-up when it does not exist yet.
type UserConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
}

type RateLimitConfig struct {
	LoginPerSecond float64 `mapstructure:"login_per_second"`
	LoginBurst     int     `mapstructure:"login_burst"`
}

type LogConfig struct {
	// Level is a loggo specification, e.g. "<root>=INFO;catalogue.course=DEBUG".
	Level string `mapstructure:"level"`
}

// BackendConfig points the web frontend at a remote course API.
type BackendConfig struct {
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.url", "")
	v.SetDefault("database.seed", true)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Length", "Content-Type", "Authorization"})
	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("rate_limit.login_per_second", 1)
	v.SetDefault("rate_limit.login_burst", 5)
	v.SetDefault("log.level", "<root>=INFO")
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.username", "")
	v.SetDefault("backend.password", "")
	v.SetDefault("backend.timeout", 10*time.Second)
}

// LoadConfig reads configPath (YAML) after loading envPath into the process
// environment. Either path may be empty; a missing .env file is not an error.
// Environment variables prefixed with CATALOGUE_ override file values, e.g.
// CATALOGUE_DATABASE_URL.
func LoadConfig(configPath string, envPath string) (*Config, error) {
	// Load .env file first
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("catalogue")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.JWT.SecretKey == "" {
		return errors.New("jwt.secret_key is required")
	}
	if c.JWT.ExpiryHours < 1 {
		return errors.New("jwt.expiry_hours must be at least 1")
	}
	for _, u := range c.Security.Users {
		if u.Username == "" || u.Password == "" {
			return errors.New("security.users entries need a username and a password")
		}
	}
	return nil
}
