package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/naoki6532b/cat-health-log/models"

	"gorm.io/gorm"
)

type WeightService struct {
	db *gorm.DB
}

func NewWeightService(db *gorm.DB) *WeightService {
	return &WeightService{db: db}
}

type WeightDraft struct {
	Dt       time.Time `json:"dt"`
	WeightKg float64   `json:"weight_kg"`
	Memo     *string   `json:"memo"`
}

type WeightPatch struct {
	Dt       *time.Time `json:"dt"`
	WeightKg *float64   `json:"weight_kg"`
	Memo     *string    `json:"memo"`
}

// List returns measurements of the trailing window, newest first.
// Weight is logged sparsely, so the window is generous (default one
// year, capped at ten).
func (s *WeightService) List(days int) ([]models.Weight, error) {
	days = clampDays(days, 365, 3650)
	from := time.Now().AddDate(0, 0, -(days - 1))

	var rows []models.Weight
	err := s.db.
		Where("dt >= ?", from).
		Order("dt DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *WeightService) Create(in WeightDraft) (*models.Weight, error) {
	if in.Dt.IsZero() {
		return nil, fmt.Errorf("%w: dt is required", ErrInvalidArgument)
	}
	if in.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: weight_kg must be positive", ErrInvalidArgument)
	}
	w := models.Weight{Dt: in.Dt, WeightKg: in.WeightKg, Memo: normalizeNote(in.Memo)}
	if err := s.db.Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WeightService) Update(id uint, p WeightPatch) (*models.Weight, error) {
	var w models.Weight
	if err := s.db.First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: weight %d", ErrNotFound, id)
		}
		return nil, err
	}
	if p.Dt != nil {
		w.Dt = *p.Dt
	}
	if p.WeightKg != nil {
		if *p.WeightKg <= 0 {
			return nil, fmt.Errorf("%w: weight_kg must be positive", ErrInvalidArgument)
		}
		w.WeightKg = *p.WeightKg
	}
	if p.Memo != nil {
		if *p.Memo == "" {
			w.Memo = nil
		} else {
			w.Memo = p.Memo
		}
	}
	if err := s.db.Save(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WeightService) Delete(id uint) error {
	res := s.db.Delete(&models.Weight{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: weight %d", ErrNotFound, id)
	}
	return nil
}
