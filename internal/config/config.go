package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig некорректные значения конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig       `toml:"server"`
	Database       DatabaseConfig     `toml:"database"`
	Logs           LogsConfig         `toml:"logs"`
	Metrics        MetricsConfig      `toml:"metrics"`
	PackageService IntegrationConfig  `toml:"package_service"`
	ClientService  IntegrationConfig  `toml:"client_service"`
	Availability   AvailabilityConfig `toml:"availability"`
	Lock           LockConfig         `toml:"lock"`
	Events         EventsConfig       `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// IntegrationConfig адрес внешнего сервиса, таймаут в секундах
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AvailabilityConfig параметры расчета доступности
type AvailabilityConfig struct {
	RangeHorizonDays     int `toml:"range_horizon_days"`
	UpcomingDefaultDays  int `toml:"upcoming_default_days"`
	UpcomingDefaultLimit int `toml:"upcoming_default_limit"`
	SerializableRetries  int `toml:"serializable_retries"`
}

// LockConfig распределенная блокировка слота в Redis (время в миллисекундах)
type LockConfig struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTL           int    `toml:"ttl_ms"`
	Wait          int    `toml:"wait_ms"`
}

// EventsConfig публикация событий бронирования в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

// Load читает конфигурацию из TOML файла.
// Секреты можно переопределить переменными окружения (в том числе из .env).
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "planner-booking-service",
			Path:        "/metrics",
		},
		PackageService: IntegrationConfig{Timeout: 5},
		ClientService:  IntegrationConfig{Timeout: 5},
		Availability: AvailabilityConfig{
			RangeHorizonDays:     100,
			UpcomingDefaultDays:  60,
			UpcomingDefaultLimit: 10,
			SerializableRetries:  3,
		},
		Lock: LockConfig{
			RedisAddr: "localhost:6379",
			TTL:       5000,
			Wait:      2000,
		},
		Events: EventsConfig{
			Exchange: "planner.bookings",
		},
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Lock.RedisPassword = v
	}
	if v, ok := os.LookupEnv("AMQP_URL"); ok {
		c.Events.AMQPURL = v
	}
	if v, ok := os.LookupEnv("HTTP_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.PackageService.URL == "" {
		return fmt.Errorf("%w: package_service.url is required", ErrInvalidConfig)
	}
	if c.ClientService.URL == "" {
		return fmt.Errorf("%w: client_service.url is required", ErrInvalidConfig)
	}
	if c.Availability.RangeHorizonDays <= 0 {
		return fmt.Errorf("%w: availability.range_horizon_days must be positive", ErrInvalidConfig)
	}
	if c.Availability.UpcomingDefaultDays <= 0 || c.Availability.UpcomingDefaultLimit <= 0 {
		return fmt.Errorf("%w: availability upcoming defaults must be positive", ErrInvalidConfig)
	}
	if c.Availability.UpcomingDefaultDays > c.Availability.RangeHorizonDays {
		return fmt.Errorf("%w: availability.upcoming_default_days must not exceed range_horizon_days", ErrInvalidConfig)
	}
	if c.Availability.SerializableRetries < 0 {
		return fmt.Errorf("%w: availability.serializable_retries must not be negative", ErrInvalidConfig)
	}
	if c.Lock.Enabled && (c.Lock.RedisAddr == "" || c.Lock.TTL <= 0) {
		return fmt.Errorf("%w: lock requires redis_addr and positive ttl_ms", ErrInvalidConfig)
	}
	if c.Events.Enabled && (c.Events.AMQPURL == "" || c.Events.Exchange == "") {
		return fmt.Errorf("%w: events require amqp_url and exchange", ErrInvalidConfig)
	}
	return nil
}
