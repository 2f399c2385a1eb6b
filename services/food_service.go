package services

import (
	"errors"
	"fmt"

	"github.com/naoki6532b/cat-health-log/models"

	"gorm.io/gorm"
)

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

type FoodDraft struct {
	FoodName    string   `json:"food_name"`
	FoodType    string   `json:"food_type"`
	KcalPerG    float64  `json:"kcal_per_g"`
	PackageG    *float64 `json:"package_g"`
	PackageKcal *float64 `json:"package_kcal"`
}

type FoodPatch struct {
	FoodName    *string  `json:"food_name"`
	FoodType    *string  `json:"food_type"`
	KcalPerG    *float64 `json:"kcal_per_g"`
	PackageG    *float64 `json:"package_g"`
	PackageKcal *float64 `json:"package_kcal"`
}

func (s *FoodService) List() ([]models.Food, error) {
	var foods []models.Food
	err := s.db.Order("food_name ASC").Find(&foods).Error
	return foods, err
}

func (s *FoodService) Get(id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: food %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Create(in FoodDraft) (*models.Food, error) {
	if in.FoodName == "" {
		return nil, fmt.Errorf("%w: food_name is required", ErrInvalidArgument)
	}
	if in.KcalPerG <= 0 {
		return nil, fmt.Errorf("%w: kcal_per_g must be positive", ErrInvalidArgument)
	}
	food := models.Food{
		FoodName:    in.FoodName,
		FoodType:    in.FoodType,
		KcalPerG:    in.KcalPerG,
		PackageG:    in.PackageG,
		PackageKcal: in.PackageKcal,
	}
	if err := s.db.Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// Update edits the catalog entry only. Existing meals keep their
// density snapshot, so historical net values never move.
func (s *FoodService) Update(id uint, p FoodPatch) (*models.Food, error) {
	food, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if p.FoodName != nil {
		if *p.FoodName == "" {
			return nil, fmt.Errorf("%w: food_name must not be empty", ErrInvalidArgument)
		}
		food.FoodName = *p.FoodName
	}
	if p.FoodType != nil {
		food.FoodType = *p.FoodType
	}
	if p.KcalPerG != nil {
		if *p.KcalPerG <= 0 {
			return nil, fmt.Errorf("%w: kcal_per_g must be positive", ErrInvalidArgument)
		}
		food.KcalPerG = *p.KcalPerG
	}
	if p.PackageG != nil {
		food.PackageG = p.PackageG
	}
	if p.PackageKcal != nil {
		food.PackageKcal = p.PackageKcal
	}
	if err := s.db.Save(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *FoodService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	var refs int64
	if err := s.db.Model(&models.Meal{}).Where("food_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: food %d is referenced by %d meals", ErrConflict, id, refs)
	}
	return s.db.Delete(&models.Food{}, id).Error
}
