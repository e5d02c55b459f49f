package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	DataSourceMock   = "mock"
	DataSourceRemote = "remote"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string
	MigrationsDir string // пусто: встроенные миграции
	Timezone      *time.Location

	// Источник справочников
	DataSource    string
	MockLatency   bool
	LLMURL        string
	LLMModel      string
	LLMTimeout    time.Duration
	TerminalSync  bool
	FetchAttempts int
	FetchDelay    time.Duration

	// Симуляция оплаты
	PaymentIdleDelay       time.Duration
	PaymentProcessingDelay time.Duration
	PaymentSuccessDelay    time.Duration

	SessionTTL time.Duration

	// Redis пустой адрес отключает лимитер
	RedisAddr       string
	RedisPassword   string
	RateLimitWindow time.Duration
	RateLimitMax    int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}

	cfg := &Config{
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		DBDSN:         getenv("DB_DSN"),
		Environment:   r.str("ENV", "development"),
		MigrationsDir: getenv("MIGRATIONS_DIR"),

		DataSource:    r.str("DATA_SOURCE", DataSourceMock),
		MockLatency:   r.bool("MOCK_LATENCY", true),
		LLMURL:        r.str("LLM_URL", "http://localhost:11434"),
		LLMModel:      r.str("LLM_MODEL", "llama3.1"),
		LLMTimeout:    r.duration("LLM_TIMEOUT", 30*time.Second),
		TerminalSync:  r.bool("TERMINAL_SYNC", false),
		FetchAttempts: r.int("FETCH_ATTEMPTS", 3),
		FetchDelay:    r.duration("FETCH_RETRY_DELAY", time.Second),

		PaymentIdleDelay:       r.duration("PAYMENT_IDLE_DELAY", 3*time.Second),
		PaymentProcessingDelay: r.duration("PAYMENT_PROCESSING_DELAY", 4*time.Second),
		PaymentSuccessDelay:    r.duration("PAYMENT_SUCCESS_DELAY", 2*time.Second),

		SessionTTL: r.duration("SESSION_TTL", 30*time.Minute),

		RedisAddr:       getenv("REDIS_ADDR"),
		RedisPassword:   getenv("REDIS_PASSWORD"),
		RateLimitWindow: r.duration("RATE_LIMIT_WINDOW", time.Second),
		RateLimitMax:    r.int("RATE_LIMIT_MAX", 5),
	}

	tz := r.str("TIMEZONE", "Asia/Seoul")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		r.fail("TIMEZONE", err)
	}
	cfg.Timezone = loc

	if r.err != nil {
		return nil, r.err
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.DataSource != DataSourceMock && cfg.DataSource != DataSourceRemote {
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", DataSourceMock, DataSourceRemote, cfg.DataSource)
	}
	if cfg.FetchAttempts < 1 {
		return nil, fmt.Errorf("FETCH_ATTEMPTS must be at least 1")
	}

	return cfg, nil
}

// reader читает переменные с дефолтами и запоминает первую ошибку разбора
type reader struct {
	getenv func(string) string
	err    error
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func (r *reader) str(key, def string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return def
}

func (r *reader) int(key string, def int) int {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}
