package models

import (
	"time"

	"gorm.io/gorm"
)

// One body-weight measurement. Independent of foods and meals.
type Weight struct {
	gorm.Model
	Dt       time.Time `gorm:"index;not null"`
	WeightKg float64   `gorm:"not null"` // must be > 0
	Memo     *string
}

func (Weight) TableName() string { return "cat_weights" }
