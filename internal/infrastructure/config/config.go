package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Tabular data source
	SourceBaseURL    string        `env:"SOURCE_BASE_URL"     envDefault:"https://opensheet.elk.sh/changeme"`
	SourceTimeout    time.Duration `env:"SOURCE_TIMEOUT"      envDefault:"15s"`
	SourceRetryMax   time.Duration `env:"SOURCE_RETRY_MAX"    envDefault:"20s"`
	TableBalances    string        `env:"TABLE_BALANCES"      envDefault:"SHOPS BALANCE"`
	TableDeposits    string        `env:"TABLE_DEPOSITS"      envDefault:"TOTAL DEPOSIT"`
	TableWithdrawals string        `env:"TABLE_WITHDRAWALS"   envDefault:"TOTAL WITHDRAWAL"`
	TableSettlements string        `env:"TABLE_SETTLEMENTS"   envDefault:"STLM/TOPUP"`
	TableRates       string        `env:"TABLE_RATES"         envDefault:"COMM"`

	// Snapshot store (optional - leave DATABASE_URL empty to disable)
	DatabaseURL      string        `env:"DATABASE_URL"       envDefault:""`
	DatabaseMaxConns int           `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	DatabaseMinConns int           `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MigrationsPath   string        `env:"MIGRATIONS_PATH"    envDefault:"internal/infrastructure/postgres/migrations"`
	SnapshotCron     string        `env:"SNAPSHOT_CRON"      envDefault:""`
	DatabaseTimeout  time.Duration `env:"DATABASE_TIMEOUT"   envDefault:"30s"`

	// Table cache (optional - leave REDIS_URL empty to disable)
	RedisURL string        `env:"REDIS_URL"  envDefault:""`
	CacheTTL time.Duration `env:"CACHE_TTL"  envDefault:"2m"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"120s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Exports
	ExportWorkers   int `env:"EXPORT_WORKERS"    envDefault:"4"`
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
