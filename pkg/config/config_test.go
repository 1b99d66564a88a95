package config

import (
	"os"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	os.Setenv("APP_ENV", "test")
	os.Setenv("HTTP_ADDR", "127.0.0.1:8080")
	os.Setenv("SHUTDOWN_TIMEOUT", "1s")
	os.Setenv("LOG_LEVEL", "info")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("MYSQLDB_HOST", "127.0.0.1")
	os.Setenv("MYSQLDB_USER", "airsense")
	os.Setenv("MYSQLDB_PASSWORD", "secret")
	os.Setenv("MYSQLDB_PORT", "3306")
	os.Setenv("MYSQLDB_DATABASE", "airsense_test")
	os.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	os.Setenv("ASYNQ_CONCURRENCY", "1")
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("SMTP_PORT", "587")
	os.Setenv("EMAIL_USER", "noreply@example.com")
	os.Setenv("EMAIL_PASS", "mailpass")
	os.Setenv("GOMAXPROCS", "1")
}

func TestLoadBindsDatabaseEnv(t *testing.T) {
	setTestEnv(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if c.DBName != "airsense_test" {
		t.Fatalf("expected database airsense_test, got %s", c.DBName)
	}
	want := "airsense:secret@tcp(127.0.0.1:3306)/airsense_test?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true"
	if got := c.DSN(); got != want {
		t.Fatalf("unexpected dsn: %s", got)
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	setTestEnv(t)
	os.Setenv("APP_ENV", "nonsense")
	defer os.Setenv("APP_ENV", "test")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for APP_ENV")
	}
}
