package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://study.duyiedu.com" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.TokenStore != StoreSQLite || cfg.TokenKey != "token" {
		t.Fatalf("unexpected token store %q key %q", cfg.TokenStore, cfg.TokenKey)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHAT_BASE_URL", "http://localhost:9000/")
	t.Setenv("CHAT_TOKEN_STORE", "Redis")
	t.Setenv("CHAT_REDIS_DB", "3")
	t.Setenv("CHAT_HTTP_TIMEOUT", "2s")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.TokenStore != StoreRedis || cfg.RedisDB != 3 {
		t.Fatalf("unexpected redis config: %+v", cfg)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.HTTPTimeout)
	}
}

func TestLoadFlagsWinOverEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHAT_TOKEN_STORE", "redis")

	fs := pflag.NewFlagSet("chat", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--token-store", "memory"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenStore != StoreMemory {
		t.Fatalf("expected flag to win, got %q", cfg.TokenStore)
	}
}

func TestLoadRejectsBadStore(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHAT_TOKEN_STORE", "etcd")

	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for unsupported store")
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
