package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wems/internal/db"
)

func setupAuthServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:auth-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func TestAuthServiceAuthenticate(t *testing.T) {
	svc := NewAuthService(setupAuthServiceTestDB(t))
	if err := svc.EnsureAdmin("admin", "wems2024"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	user, err := svc.Authenticate(" admin ", "wems2024")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "admin" {
		t.Fatalf("unexpected user %q", user.Username)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "nope"},
		{name: "unknown user", username: "root", password: "wems2024"},
		{name: "empty", username: "", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestEnsureAdminKeepsExistingPassword(t *testing.T) {
	svc := NewAuthService(setupAuthServiceTestDB(t))
	if err := svc.EnsureAdmin("admin", "first"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := svc.EnsureAdmin("admin", "second"); err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}

	if _, err := svc.Authenticate("admin", "first"); err != nil {
		t.Fatalf("expected original password to remain valid: %v", err)
	}
	if _, err := svc.Authenticate("admin", "second"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected second password to be rejected, got %v", err)
	}
}
