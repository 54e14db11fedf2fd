package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// Database
	DBHost         string `env:"DB_HOST,default=localhost"`
	DBPort         string `env:"DB_PORT,default=5432"`
	DBUser         string `env:"DB_USER,default=postgres"`
	DBPassword     string `env:"DB_PASSWORD,required"`
	DBName         string `env:"DB_NAME,default=moderation_db"`
	DBSSLMode      string `env:"DB_SSLMODE,default=disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=50"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS,default=25"`

	// JWT (verification only; tokens are issued elsewhere)
	JWTSecret string `env:"JWT_SECRET,required"`

	// Admin
	AdminUserIDs string `env:"ADMIN_USER_IDS"`
	AdminToken   string `env:"ADMIN_TOKEN"`

	// Moderation
	ReportThreshold int64 `env:"REPORT_THRESHOLD,default=1"`

	// Logging
	LogRetention time.Duration `env:"LOG_RETENTION,default=720h"`

	// Server
	Port        string `env:"PORT,default=8080"`
	CORSOrigins string `env:"CORS_ORIGINS,default=*"`

	// Error tracking
	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV,default=development"`
}

func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if cfg.ReportThreshold < 1 {
		return nil, fmt.Errorf("REPORT_THRESHOLD must be at least 1, got %d", cfg.ReportThreshold)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
