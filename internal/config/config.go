package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Driver string
	// ConnectRetry bounds how long startup keeps retrying an unreachable
	// database. Zero means a single attempt.
	ConnectRetry time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type LoginConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type AdminConfig struct {
	Email              string
	Password           string
	Name               string
	ForcePasswordReset bool
}

// JobsConfig drives the in-process scheduler. Schedule accepts cron
// expressions with a seconds field or descriptors such as "@every 1m".
type JobsConfig struct {
	Enabled         bool
	CatalogSchedule string
}

type AppConfig struct {
	Environment  string
	HTTP         HTTPConfig
	Database     DatabaseConfig
	Postgres     PostgresConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	Security     SecurityConfig
	Login        LoginConfig
	Admin        AdminConfig
	Jobs         JobsConfig
	AllowOrigins []string
}

// envFiles are loaded before reading the environment. Variables already set
// in the process win over the file.
var envFiles = []string{".env", "../.env"}

func Load() (*AppConfig, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("FITTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Security.JWTSecret) == "" {
		return errors.New("config: security.jwtsecret is required")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("config: postgres.dsn is required for the postgres driver")
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("config: mongo.uri and mongo.database are required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.Login.MaxAttempts < 1 {
		return errors.New("config: login.maxattempts must be positive")
	}
	return nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Every key gets a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.connectretry", "30s")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "fittrack")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("security.jwtsecret", "")
	v.SetDefault("security.jwtttl", "168h") // 7 days

	v.SetDefault("login.maxattempts", 5)
	v.SetDefault("login.window", "15m")

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.name", "")
	v.SetDefault("admin.forcepasswordreset", false)

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.catalogschedule", "@every 1m")

	v.SetDefault("alloworigins", []string{"http://localhost:5173", "http://localhost:3000"})
}
