package models

import "gorm.io/gorm"

// A catalog entry for one cat food product. Referenced by meals,
// never owned by them — deleting a food does not cascade.
type Food struct {
	gorm.Model
	FoodName    string   `gorm:"uniqueIndex;not null" json:"food_name"`
	FoodType    string   `json:"food_type,omitempty"`
	KcalPerG    float64  `gorm:"not null" json:"kcal_per_g"` // must be > 0
	PackageG    *float64 `json:"package_g,omitempty"`
	PackageKcal *float64 `json:"package_kcal,omitempty"`
}

func (Food) TableName() string { return "cat_foods" }
