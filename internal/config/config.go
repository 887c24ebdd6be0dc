package config

import (
	"fmt"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	Env     string        `koanf:"env"`
	HTTP    HTTPConfig    `koanf:"http"`
	Store   StoreConfig   `koanf:"store"`
	Auth    AuthConfig    `koanf:"auth"`
	Log     LogConfig     `koanf:"log"`
	Import  ImportConfig  `koanf:"import"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type HTTPConfig struct {
	Port              string        `koanf:"port"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"sslmode"`
	TimeZone        string        `koanf:"timezone"`
	SQLitePath      string        `koanf:"sqlite_path"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	SlowQuery       time.Duration `koanf:"slow_query"`
}

type AuthConfig struct {
	SupabaseURL    string        `koanf:"supabase_url"`
	PublishableKey string        `koanf:"publishable_key"`
	Timeout        time.Duration `koanf:"timeout"`
	Skip           bool          `koanf:"skip"`
	MockUserID     string        `koanf:"mock_user_id"`
	MockUserEmail  string        `koanf:"mock_user_email"`
	MockUserName   string        `koanf:"mock_user_name"`
	MockUserAvatar string        `koanf:"mock_user_avatar_url"`
	ProfileTTL     time.Duration `koanf:"profile_ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ImportConfig struct {
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
	MaxRows        int   `koanf:"max_rows"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// Default returns the configuration used when no file or environment value
// overrides a field.
func Default() Config {
	return Config{
		Env: "development",
		HTTP: HTTPConfig{
			Port:              "8080",
			CORSOrigins:       []string{"http://localhost:5173"},
			RequestTimeout:    30 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Store: StoreConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			Name:            "people_monitor",
			SSLMode:         "disable",
			TimeZone:        "UTC",
			SQLitePath:      "people-monitor.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowQuery:       200 * time.Millisecond,
		},
		Auth: AuthConfig{
			Timeout:    5 * time.Second,
			MockUserID: "00000000-0000-0000-0000-000000000001",
			ProfileTTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Import: ImportConfig{
			MaxUploadBytes: 10 << 20,
			MaxRows:        5000,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "people_monitor",
		},
	}
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.HTTP.Port == "" {
		return fmt.Errorf("%w: http port must not be empty", ErrInvalidConfig)
	}
	if c.Import.MaxRows <= 0 {
		return fmt.Errorf("%w: import max rows must be positive", ErrInvalidConfig)
	}
	if c.Import.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: import max upload bytes must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c StoreConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
