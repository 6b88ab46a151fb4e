package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// Переменные окружения с секретами
const (
	envDBPassword           = "DB_PASSWORD"
	envRedisPassword        = "REDIS_PASSWORD"
	envEmployeeServiceToken = "EMPLOYEE_SERVICE_TOKEN"
)

// Бэкенды хранилища документов
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

type Config struct {
	Server          ServerConfig          `toml:"server"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Database        DatabaseConfig        `toml:"database"`
	Storage         StorageConfig         `toml:"storage"`
	Redis           RedisConfig           `toml:"redis"`
	EmployeeService EmployeeServiceConfig `toml:"employee_service"`
	Schedule        ScheduleConfig        `toml:"schedule"`
	Booking         BookingConfig         `toml:"booking"`
	RateLimit       RateLimitConfig       `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type StorageConfig struct {
	Backend            string `toml:"backend"`              // postgres | memory
	OperationTimeoutMs int    `toml:"operation_timeout_ms"` // таймаут одной попытки
	MaxRetries         int    `toml:"max_retries"`
	RetryBaseDelayMs   int    `toml:"retry_base_delay_ms"`
	RetryMaxDelayMs    int    `toml:"retry_max_delay_ms"`
	QueueBuffer        int    `toml:"queue_buffer"` // размер очереди одного ключа (месяц, тип)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// EmployeeServiceConfig справочник сотрудников; пустой URL отключает поиск личности
type EmployeeServiceConfig struct {
	URL      string `toml:"url"`
	Token    string `toml:"token"`
	Timeout  int    `toml:"timeout"`   // секунды
	CacheTTL int    `toml:"cache_ttl"` // секунды
}

// ScheduleConfig календарь слотов; без пути доступность считается только по вместимости
type ScheduleConfig struct {
	Path string `toml:"path"`
}

type BookingConfig struct {
	CancelCutoffHours int               `toml:"cancel_cutoff_hours"`
	CancelMode        string            `toml:"cancel_mode"` // soft | hard
	Timezone          string            `toml:"timezone"`
	SlotTimes         map[string]string `toml:"slot_times"` // "1" = "08:30"
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// Load читает .env (если есть), затем TOML-файл, применяет значения по умолчанию,
// переопределения из окружения и проверяет результат
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "class_reservation"
	}

	setDefault(&c.Database.Port, 5432)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	setDefault(&c.Database.MaxOpenConns, 10)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageBackendPostgres
	}
	setDefault(&c.Storage.OperationTimeoutMs, 5000)
	setDefault(&c.Storage.MaxRetries, 3)
	setDefault(&c.Storage.RetryBaseDelayMs, 200)
	setDefault(&c.Storage.RetryMaxDelayMs, 2000)
	setDefault(&c.Storage.QueueBuffer, 64)

	if c.Redis.Key == "" {
		c.Redis.Key = "class_reservation:employees"
	}

	setDefault(&c.EmployeeService.Timeout, 5)
	setDefault(&c.EmployeeService.CacheTTL, 300)

	setDefault(&c.Booking.CancelCutoffHours, int(domain.DefaultCancelCutoff/time.Hour))
	if c.Booking.CancelMode == "" {
		c.Booking.CancelMode = string(domain.CancelModeSoft)
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = domain.DefaultTimezone
	}
	if len(c.Booking.SlotTimes) == 0 {
		c.Booking.SlotTimes = make(map[string]string)
		for slot, start := range domain.DefaultSlotTimeTable() {
			c.Booking.SlotTimes[strconv.Itoa(slot)] = start
		}
	}

	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = 5
	}
	setDefault(&c.RateLimit.Burst, 10)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(envRedisPassword); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv(envEmployeeServiceToken); v != "" {
		c.EmployeeService.Token = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageBackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("config: database.host and database.dbname are required for postgres storage")
		}
	case StorageBackendMemory:
	default:
		return fmt.Errorf("config: unknown storage.backend %q", c.Storage.Backend)
	}

	if !domain.CancelMode(c.Booking.CancelMode).IsValid() {
		return fmt.Errorf("config: unknown booking.cancel_mode %q", c.Booking.CancelMode)
	}

	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("config: invalid booking.timezone: %w", err)
	}

	if _, err := c.SlotTimeTable(); err != nil {
		return err
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis is enabled")
	}

	return nil
}

// SlotTimeTable время начала слотов из [booking.slot_times]
func (c *Config) SlotTimeTable() (domain.SlotTimeTable, error) {
	table := make(domain.SlotTimeTable, len(c.Booking.SlotTimes))
	for key, start := range c.Booking.SlotTimes {
		slot, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("config: invalid slot number %q in booking.slot_times", key)
		}
		table[slot] = start
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("config: booking.slot_times: %w", err)
	}
	return table, nil
}

// Location часовой пояс расписания
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Booking.Timezone)
}

// CancelCutoff минимальное время до начала занятия для отмены
func (c *Config) CancelCutoff() time.Duration {
	return time.Duration(c.Booking.CancelCutoffHours) * time.Hour
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
