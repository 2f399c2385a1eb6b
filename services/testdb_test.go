package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/naoki6532b/cat-health-log/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catlog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Food{}, &models.Meal{}, &models.Weight{}, &models.Elimination{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustFood(t *testing.T, db *gorm.DB, name string, kcalPerG float64) *models.Food {
	t.Helper()
	food, err := NewFoodService(db).Create(FoodDraft{FoodName: name, KcalPerG: kcalPerG})
	if err != nil {
		t.Fatalf("create food %s: %v", name, err)
	}
	return food
}

func mustMeal(t *testing.T, db *gorm.DB, draft MealDraft) *MealView {
	t.Helper()
	meal, err := NewMealService(db).Create(draft)
	if err != nil {
		t.Fatalf("create meal: %v", err)
	}
	return meal
}

func f(v float64) *float64 { return &v }

func at(t time.Time) time.Time { return t.Truncate(time.Second) }
