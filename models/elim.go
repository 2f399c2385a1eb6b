package models

import (
	"time"

	"gorm.io/gorm"
)

// Elimination kinds. Stored normalized; the HTTP layer also accepts the
// Japanese labels the entry form sends (うんち/おしっこ/両方).
const (
	ElimStool = "stool"
	ElimUrine = "urine"
	ElimBoth  = "both"
)

// One litter-box event.
type Elimination struct {
	gorm.Model
	Dt      time.Time `gorm:"index;not null"`
	Kind    string    `gorm:"not null"` // stool | urine | both
	Amount  *string
	UrineML *float64
	Note    *string
	Vomit   bool `gorm:"default:false"`
}

func (Elimination) TableName() string { return "cat_elims" }
