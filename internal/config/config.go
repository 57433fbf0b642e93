package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration

	// token store
	TokenStore  string
	TokenKey    string
	TokenSecret string
	DBDSN       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogPretty bool
}

const (
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Load reads .env, then chat.yaml (optional), then CHAT_* env vars, then flags.
// Later sources win.
func Load(flags *pflag.FlagSet) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("chat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "gopherchat"))
	}

	v.SetEnvPrefix("CHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://study.duyiedu.com")
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("token_store", StoreSQLite)
	v.SetDefault("token_key", "token")
	v.SetDefault("db_dsn", defaultDSN())
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_pretty", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if f.Changed {
				_ = v.BindPFlag(key, f)
			}
		})
	}

	cfg := Config{
		BaseURL:       strings.TrimRight(strings.TrimSpace(v.GetString("base_url")), "/"),
		HTTPTimeout:   v.GetDuration("http_timeout"),
		TokenStore:    strings.ToLower(strings.TrimSpace(v.GetString("token_store"))),
		TokenKey:      v.GetString("token_key"),
		TokenSecret:   v.GetString("token_secret"),
		DBDSN:         v.GetString("db_dsn"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		LogLevel:      v.GetString("log_level"),
		LogPretty:     v.GetBool("log_pretty"),
	}
	return cfg, cfg.validate()
}

// RegisterFlags declares the flags Load understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "chat API origin")
	fs.Duration("http-timeout", 0, "per-request timeout")
	fs.String("token-store", "", "token store: sqlite, mysql, redis or memory")
	fs.String("db-dsn", "", "sqlite path or mysql DSN for the token store")
	fs.String("log-level", "", "trace, debug, info, warn, error or off")
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("config: base_url must be http(s), got %q", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.TokenKey == "" {
		return errors.New("config: token_key is required")
	}
	switch c.TokenStore {
	case StoreSQLite, StoreMySQL, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("config: unsupported token_store %q", c.TokenStore)
	}
	return nil
}

func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gopherchat-session.db"
	}
	return filepath.Join(dir, "gopherchat", "session.db")
}
