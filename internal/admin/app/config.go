package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/aussiebroadwan/hoteladmin/internal/admin/session"
)

type Config struct {
	Issuer       string `env:"ADMIN_ISSUER,        default=hotel-admin"`
	DatabaseFile string `env:"ADMIN_DATABASE_FILE, default=admin.db"`
	PepperFile   string `env:"ADMIN_PEPPER_FILE,   default=pepper"`

	// SessionKey is the passphrase sealing the stored session and signing
	// key. SessionKeyFile, when set, wins over it.
	SessionKey     string        `env:"ADMIN_SESSION_KEY"`
	SessionKeyFile string        `env:"ADMIN_SESSION_KEY_FILE"`
	SessionTTL     time.Duration `env:"ADMIN_SESSION_TTL, default=12h"`

	NotificationLimit int  `env:"ADMIN_NOTIFICATION_LIMIT, default=0"` // 0 keeps everything
	LoginRateLimit    int  `env:"ADMIN_LOGIN_RATE_LIMIT,   default=5"` // per minute per IP
	SeedDemo          bool `env:"ADMIN_SEED_DEMO,          default=false"`

	Slots SlotsConfig

	Env                  string        `env:"ENV,                   default=dev"`
	LogLevel             string        `env:"LOG_LEVEL,             default=info"`
	LogFormat            string        `env:"LOG_FORMAT,            default=json"`
	Port                 int           `env:"PORT,                  default=8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL, default=1m"`
}

// SlotsConfig selects where the stored session and signing key live.
type SlotsConfig struct {
	Driver    string `env:"ADMIN_SLOT_DRIVER, default=sqlite"` // sqlite or redis
	RedisAddr string `env:"ADMIN_REDIS_ADDR,  default=localhost:6379"`
	RedisDB   int    `env:"ADMIN_REDIS_DB,    default=0"`
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return loadConfig(context.Background(), envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.SessionKey == "" {
		cfg.SessionKey = session.DefaultPassphrase
	}

	switch cfg.Slots.Driver {
	case "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("ADMIN_SLOT_DRIVER must be sqlite or redis, got %q", cfg.Slots.Driver)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("ADMIN_SESSION_TTL must be positive")
	}
	if cfg.NotificationLimit < 0 {
		return Config{}, errors.New("ADMIN_NOTIFICATION_LIMIT cannot be negative")
	}

	return cfg, nil
}

// usesDefaultSessionKey reports whether the build-embedded passphrase is in use.
func (c Config) usesDefaultSessionKey() bool {
	return c.SessionKeyFile == "" && c.SessionKey == session.DefaultPassphrase
}
