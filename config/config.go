package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config armazena todas as configurações da API da Biblioteca.
// Os valores vêm de variáveis de ambiente (o .env é carregado antes, no main).
type Config struct {
	// Geral
	Port            string        `env:"PORT" envDefault:"8080"`
	Environment     string        `env:"ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Banco de Dados (PostgreSQL)
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	DBTimeout      time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`

	// Cache (Redis). Endereço vazio desativa o cache.
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Rate Limiting
	RateLimitEnabled     bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD" envDefault:"1m"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("erro de configuração: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CacheEnabled indica se um Redis foi configurado.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// IsDevelopment indica se a aplicação roda em modo de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) validate() error {
	if c.DBTimeout <= 0 {
		return fmt.Errorf("erro de configuração: DB_TIMEOUT deve ser positivo (recebido %s)", c.DBTimeout)
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("erro de configuração: DB_MAX_OPEN_CONNS deve ser >= 1 (recebido %d)", c.DBMaxOpenConns)
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		return fmt.Errorf("erro de configuração: DB_MAX_IDLE_CONNS deve estar entre 0 e %d (recebido %d)", c.DBMaxOpenConns, c.DBMaxIdleConns)
	}
	if c.RateLimitEnabled {
		if c.RateLimitMaxRequests < 1 {
			return fmt.Errorf("erro de configuração: RATE_LIMIT_MAX_REQUESTS deve ser >= 1 (recebido %d)", c.RateLimitMaxRequests)
		}
		if c.RateLimitPeriod <= 0 {
			return fmt.Errorf("erro de configuração: RATE_LIMIT_PERIOD deve ser positivo (recebido %s)", c.RateLimitPeriod)
		}
	}
	return nil
}
