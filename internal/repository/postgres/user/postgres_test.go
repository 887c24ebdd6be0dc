package user

import (
	"context"
	"testing"

	domain "people-monitor-go/internal/domain/user"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestUpsertProfileKeepsUnsetFields(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	if err := db.AutoMigrate(&domain.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewPostgres(db)
	ctx := context.Background()

	email := "ann@example.com"
	name := "Ann"
	if err := repo.UpsertProfile(ctx, &domain.Profile{UserID: "user-1", Email: &email, DisplayName: &name}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	avatar := "https://cdn.example.com/ann.png"
	if err := repo.UpsertProfile(ctx, &domain.Profile{UserID: "user-1", AvatarURL: &avatar}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var stored domain.Profile
	if err := db.Where("user_id = ?", "user-1").First(&stored).Error; err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if stored.Email == nil || *stored.Email != email {
		t.Fatalf("expected email kept, got %v", stored.Email)
	}
	if stored.DisplayName == nil || *stored.DisplayName != name {
		t.Fatalf("expected name kept, got %v", stored.DisplayName)
	}
	if stored.AvatarURL == nil || *stored.AvatarURL != avatar {
		t.Fatalf("expected avatar set, got %v", stored.AvatarURL)
	}
}
