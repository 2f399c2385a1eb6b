package models

import (
	"time"

	"gorm.io/gorm"
)

// One feeding: food placed in the bowl at Dt.
//
// KcalPerGSnapshot is copied from the referenced food at write time so
// editing the catalog later never changes historical entries. It is
// rewritten only when an update changes FoodID.
type Meal struct {
	gorm.Model
	Dt               time.Time `gorm:"index;not null"`
	FoodID           *uint     `gorm:"index"` // FK → cat_foods.id, nullable
	Food             *Food     `gorm:"foreignKey:FoodID"`
	Grams            *float64  // grams placed, ≥ 0
	Kcal             *float64  // kcal placed, ≥ 0, derived or user-supplied
	KcalPerGSnapshot float64   // > 0 on valid rows; kept at 6-decimal precision
	LeftoverG        float64   `gorm:"default:0"` // 0 ≤ LeftoverG ≤ Grams
	Note             *string
}

func (Meal) TableName() string { return "cat_meals" }
