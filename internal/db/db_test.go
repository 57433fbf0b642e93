package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConnectSQLiteCreatesDir(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "a", "b", "session.db")
	gdb, err := Connect("SQLite", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := gdb.Exec("CREATE TABLE t (id INTEGER)").Error; err != nil {
		t.Fatalf("exec: %v", err)
	}
	sqlDB, _ := gdb.DB()
	_ = sqlDB.Close()

	if _, err := os.Stat(dsn); err != nil {
		t.Fatalf("expected db file: %v", err)
	}
}

func TestConnectUnknownDriver(t *testing.T) {
	if _, err := Connect("postgres", "x"); err == nil {
		t.Fatalf("expected error")
	}
}
