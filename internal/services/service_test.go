package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/airsense/platform/internal/models"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.EmailVerification{},
		&models.Gas{},
		&models.Node{},
		&models.Measurement{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// fakeMail records dispatched mail instead of enqueuing it.
type fakeMail struct {
	codes     map[string]string
	passwords map[string]string
}

func newFakeMail() *fakeMail {
	return &fakeMail{codes: map[string]string{}, passwords: map[string]string{}}
}

func (f *fakeMail) DispatchVerification(_ context.Context, email, code string) error {
	f.codes[email] = code
	return nil
}

func (f *fakeMail) DispatchNewPassword(_ context.Context, email, password string) error {
	f.passwords[email] = password
	return nil
}
