package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	NBRB     NBRBConfig     `toml:"nbrb"`
	Rates    RatesConfig    `toml:"rates"`
	Sessions SessionsConfig `toml:"sessions"`
}

// ServerConfig настройки HTTP сервера; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// RedisConfig кэш таблицы курсов; пустой Addr отключает кэш
type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

// NBRBConfig источник курсов Национального банка
type NBRBConfig struct {
	URL     string `toml:"url" env:"NBRB_URL"`
	Timeout int    `toml:"timeout" env:"NBRB_TIMEOUT"` // секунды
}

// RatesConfig обновление таблицы курсов; интервалы в секундах
type RatesConfig struct {
	Base            string   `toml:"base" env:"RATES_BASE"`
	Currencies      []string `toml:"currencies" env:"RATES_CURRENCIES" envSeparator:","`
	RefreshInterval int      `toml:"refresh_interval" env:"RATES_REFRESH_INTERVAL"`
	MinInterval     int      `toml:"min_interval" env:"RATES_MIN_INTERVAL"`
	CacheTTL        int      `toml:"cache_ttl" env:"RATES_CACHE_TTL"`
}

// SessionsConfig реестр форм записи
type SessionsConfig struct {
	IdleTTL       int `toml:"idle_ttl" env:"SESSIONS_IDLE_TTL"` // секунды
	MaxSessions   int `toml:"max_sessions" env:"SESSIONS_MAX"`
	InboxSize     int `toml:"inbox_size" env:"SESSIONS_INBOX_SIZE"`
	OpenPerMinute int `toml:"open_per_minute" env:"SESSIONS_OPEN_PER_MINUTE"`
}

// Default значения, если параметр не задан ни в файле, ни в окружении
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "action_centres",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc-actioncentreservice",
		},
		NBRB: NBRBConfig{
			URL:     "https://api.nbrb.by",
			Timeout: 5,
		},
		Rates: RatesConfig{
			Base:            string(domain.BaseCurrency),
			Currencies:      []string{"USD", "EUR", "BYN"},
			RefreshInterval: 3600,
			MinInterval:     60,
			CacheTTL:        3600,
		},
		Sessions: SessionsConfig{
			IdleTTL:       1800,
			MaxSessions:   10000,
			InboxSize:     64,
			OpenPerMinute: 30,
		},
	}
}

// Load читает конфигурацию: значения по умолчанию, затем файл path (если есть),
// затем .env и переменные окружения. Результат валидируется.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFile, path, err)
			}
		}
	}

	// .env необязателен; уже заданные переменные окружения не перезаписываются
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrDecodeFile, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalid, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalid)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalid)
	}
	if c.NBRB.URL == "" {
		return fmt.Errorf("%w: nbrb.url is required", ErrInvalid)
	}

	if _, err := domain.ParseCurrency(c.Rates.Base); err != nil {
		return fmt.Errorf("%w: rates.base: %v", ErrInvalid, err)
	}
	if _, err := c.Rates.ParsedCurrencies(); err != nil {
		return fmt.Errorf("%w: rates.currencies: %v", ErrInvalid, err)
	}
	if c.Rates.RefreshInterval <= 0 {
		return fmt.Errorf("%w: rates.refresh_interval must be positive", ErrInvalid)
	}

	if c.Sessions.IdleTTL <= 0 {
		return fmt.Errorf("%w: sessions.idle_ttl must be positive", ErrInvalid)
	}
	return nil
}

// ParsedCurrencies коды валют отображения
func (c RatesConfig) ParsedCurrencies() ([]domain.Currency, error) {
	out := make([]domain.Currency, 0, len(c.Currencies))
	for _, s := range c.Currencies {
		cur, err := domain.ParseCurrency(s)
		if err != nil {
			return nil, err
		}
		out = append(out, cur)
	}
	return out, nil
}

// Seconds переводит целое число секунд из конфигурации в time.Duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
