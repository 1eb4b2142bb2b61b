package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// Пример: RIDESHARE_DATABASE_HOST, RIDESHARE_AUTH_JWT_SECRET
const EnvPrefix = "RIDESHARE"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	NotificationModeAsync  = "async"
	NotificationModeInline = "inline"
)

var (
	ErrReadConfig    = errors.New("config: read")
	ErrInvalidConfig = errors.New("config: invalid")
)

// Config конфигурация сервиса бронирования поездок
type Config struct {
	App          App          `toml:"app"`
	Server       Server       `toml:"server"`
	Database     Database     `toml:"database"`
	Redis        Redis        `toml:"redis"`
	Auth         Auth         `toml:"auth"`
	Booking      Booking      `toml:"booking"`
	Notification Notification `toml:"notification"`
	SMTP         SMTP         `toml:"smtp"`
	RateLimit    RateLimit    `toml:"rate_limit" split_words:"true"`
	Lock         Lock         `toml:"lock"`
	Metrics      Metrics      `toml:"metrics"`
	Logs         Logs         `toml:"logs"`
}

type App struct {
	Name string `toml:"name"`
	Env  string `toml:"env"`
}

// IsProduction в production ответы об ошибках не содержат внутренних деталей
func (a App) IsProduction() bool {
	return strings.EqualFold(a.Env, EnvProduction)
}

// Server таймауты задаются в секундах
type Server struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type Redis struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type Auth struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	Issuer    string `toml:"issuer"`
}

type Booking struct {
	// RestoreSeatsOnCancel возвращать места в поездку при отмене бронирования
	RestoreSeatsOnCancel bool `toml:"restore_seats_on_cancel" split_words:"true"`

	// NotificationTimeout секунд на отправку уведомления после коммита
	NotificationTimeout int `toml:"notification_timeout" split_words:"true"`
}

type Notification struct {
	Mode              string `toml:"mode"`
	Queue             string `toml:"queue"`
	MaxRetry          int    `toml:"max_retry" split_words:"true"`
	TaskTimeout       int    `toml:"task_timeout" split_words:"true"`
	WorkerConcurrency int    `toml:"worker_concurrency" split_words:"true"`
}

type SMTP struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type RateLimit struct {
	Enabled       bool `toml:"enabled"`
	Requests      int  `toml:"requests"`
	WindowSeconds int  `toml:"window_seconds" split_words:"true"`
}

// Lock распределенная блокировка поездки на время бронирования (требует Redis)
type Lock struct {
	Enabled       bool `toml:"enabled"`
	ExpirySeconds int  `toml:"expiry_seconds" split_words:"true"`
	Tries         int  `toml:"tries"`
	RetryDelayMs  int  `toml:"retry_delay_ms" split_words:"true"`
}

type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path"`
}

type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Load читает конфигурацию
// Порядок: значения по умолчанию, файл path (TOML), .env, переменные окружения RIDESHARE_*
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию, поверх которых накладывается файл
func Default() *Config {
	return &Config{
		App: App{Name: "ride-booking-service", Env: EnvDevelopment},
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: Redis{Host: "localhost", Port: 6379},
		Auth:  Auth{Issuer: "ride-booking-service"},
		Booking: Booking{
			RestoreSeatsOnCancel: true,
			NotificationTimeout:  10,
		},
		Notification: Notification{
			Mode:              NotificationModeInline,
			Queue:             "notifications",
			MaxRetry:          5,
			TaskTimeout:       30,
			WorkerConcurrency: 5,
		},
		SMTP:      SMTP{Port: 587},
		RateLimit: RateLimit{Requests: 10, WindowSeconds: 60},
		Lock:      Lock{ExpirySeconds: 5, Tries: 20, RetryDelayMs: 50},
		Metrics:   Metrics{ServiceName: "ride_booking_service", Path: "/metrics"},
		Logs:      Logs{Level: "info"},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Booking.NotificationTimeout <= 0 {
		problems = append(problems, "booking.notification_timeout must be positive")
	}

	switch c.Notification.Mode {
	case NotificationModeInline:
	case NotificationModeAsync:
		if !c.Redis.Enabled {
			problems = append(problems, "notification.mode=async requires redis.enabled")
		}
	default:
		problems = append(problems, fmt.Sprintf("notification.mode must be %q or %q", NotificationModeAsync, NotificationModeInline))
	}

	if c.Lock.Enabled && !c.Redis.Enabled {
		problems = append(problems, "lock.enabled requires redis.enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		problems = append(problems, "rate_limit.requests and rate_limit.window_seconds must be positive")
	}
	if c.SMTP.Enabled && (c.SMTP.Host == "" || c.SMTP.From == "") {
		problems = append(problems, "smtp.host and smtp.from are required when smtp is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
