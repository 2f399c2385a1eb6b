package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/naoki6532b/cat-health-log/models"
	"github.com/naoki6532b/cat-health-log/utils"

	"gorm.io/gorm"
)

// display-grade rounding: grams/kcal at 0.1, the density snapshot is
// kept at higher precision so derived math stays stable
const (
	amountPlaces   = 1
	snapshotPlaces = 6
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// MealDraft is a feeding submission. Either FoodID is set (grams or
// kcal optional, the missing one is derived), or both Grams and Kcal
// are given explicitly with no food reference.
type MealDraft struct {
	Dt        time.Time `json:"dt"`
	FoodID    *uint     `json:"food_id"`
	Grams     *float64  `json:"grams"`
	Kcal      *float64  `json:"kcal"`
	LeftoverG *float64  `json:"leftover_g"`
	Note      *string   `json:"note"`
}

// MealPatch carries only the fields to change; nil means "leave as is".
type MealPatch struct {
	Dt        *time.Time `json:"dt"`
	FoodID    *uint      `json:"food_id"`
	Grams     *float64   `json:"grams"`
	Kcal      *float64   `json:"kcal"`
	LeftoverG *float64   `json:"leftover_g"`
	Note      *string    `json:"note"`
}

// MealView is the JSON shape the ledger returns for one entry. The net
// fields are derived on read, never stored.
type MealView struct {
	ID               uint      `json:"id"`
	Dt               time.Time `json:"dt"`
	FoodID           *uint     `json:"food_id"`
	FoodName         *string   `json:"food_name"`
	Grams            *float64  `json:"grams"`
	Kcal             *float64  `json:"kcal"`
	KcalPerGSnapshot float64   `json:"kcal_per_g_snapshot"`
	LeftoverG        float64   `json:"leftover_g"`
	NetGrams         float64   `json:"net_grams"`
	NetKcal          float64   `json:"net_kcal"`
	Note             *string   `json:"note"`
}

// mealNet derives the not-stored net values for one row.
// Rows without a usable snapshot (legacy data) fall back to treating
// kcal as already net — one bad row must not poison a whole report.
func mealNet(m models.Meal) (netGrams, leftoverKcal, netKcal float64) {
	var grams, kcal float64
	if m.Grams != nil {
		grams = *m.Grams
	}
	if m.Kcal != nil {
		kcal = *m.Kcal
	}

	netGrams = math.Max(0, grams-m.LeftoverG)

	if m.KcalPerGSnapshot > 0 {
		leftoverKcal = m.LeftoverG * m.KcalPerGSnapshot
		netKcal = math.Max(0, kcal-leftoverKcal)
	} else {
		netKcal = kcal
	}

	return utils.Round(netGrams, amountPlaces),
		utils.Round(leftoverKcal, amountPlaces),
		utils.Round(netKcal, amountPlaces)
}

func mealView(m models.Meal) MealView {
	v := MealView{
		ID:               m.ID,
		Dt:               m.Dt,
		FoodID:           m.FoodID,
		Grams:            m.Grams,
		Kcal:             m.Kcal,
		KcalPerGSnapshot: m.KcalPerGSnapshot,
		LeftoverG:        m.LeftoverG,
		Note:             m.Note,
	}
	if m.Food != nil {
		v.FoodName = &m.Food.FoodName
	}
	v.NetGrams, _, v.NetKcal = mealNet(m)
	return v
}

func (s *MealService) Create(in MealDraft) (*MealView, error) {
	if in.Dt.IsZero() {
		return nil, fmt.Errorf("%w: dt is required", ErrInvalidArgument)
	}

	grams, kcal := in.Grams, in.Kcal

	// 1) settle the density snapshot
	var snapshot float64
	if in.FoodID != nil {
		var food models.Food
		if err := s.db.First(&food, *in.FoodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: food %d not found", ErrInvalidArgument, *in.FoodID)
			}
			return nil, err
		}
		if food.KcalPerG <= 0 {
			return nil, fmt.Errorf("%w: food kcal_per_g is missing", ErrInvalidArgument)
		}
		snapshot = food.KcalPerG
	} else {
		if grams == nil || kcal == nil {
			return nil, fmt.Errorf("%w: select a food or provide both grams and kcal", ErrInvalidArgument)
		}
		if *grams <= 0 {
			return nil, fmt.Errorf("%w: grams must be positive", ErrInvalidArgument)
		}
		snapshot = *kcal / *grams
	}
	snapshot = utils.Round(snapshot, snapshotPlaces)
	if snapshot <= 0 {
		return nil, fmt.Errorf("%w: kcal_per_g snapshot must be positive", ErrInvalidArgument)
	}

	// 2) fill whichever of grams/kcal is missing
	if grams != nil && kcal == nil {
		v := *grams * snapshot
		kcal = &v
	} else if kcal != nil && grams == nil {
		v := *kcal / snapshot
		grams = &v
	}

	if grams != nil {
		v := utils.Round(*grams, amountPlaces)
		if v < 0 {
			return nil, fmt.Errorf("%w: grams must not be negative", ErrInvalidArgument)
		}
		grams = &v
	}
	if kcal != nil {
		v := utils.Round(*kcal, amountPlaces)
		if v < 0 {
			return nil, fmt.Errorf("%w: kcal must not be negative", ErrInvalidArgument)
		}
		kcal = &v
	}

	// 3) leftover defaults to 0 and is clamped, never rejected
	var leftover float64
	if in.LeftoverG != nil {
		leftover = *in.LeftoverG
	}
	var maxG float64
	if grams != nil {
		maxG = *grams
	}
	leftover = utils.Clamp(leftover, 0, maxG)

	m := models.Meal{
		Dt:               in.Dt,
		FoodID:           in.FoodID,
		Grams:            grams,
		Kcal:             kcal,
		KcalPerGSnapshot: snapshot,
		LeftoverG:        utils.Round(leftover, amountPlaces),
		Note:             normalizeNote(in.Note),
	}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, err
	}
	return s.Get(m.ID)
}

func (s *MealService) Get(id uint) (*MealView, error) {
	var m models.Meal
	if err := s.db.Preload("Food").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %d", ErrNotFound, id)
		}
		return nil, err
	}
	v := mealView(m)
	return &v, nil
}

func (s *MealService) List(limit int) ([]MealView, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	var rows []models.Meal
	err := s.db.Preload("Food").
		Order("dt DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]MealView, 0, len(rows))
	for _, m := range rows {
		out = append(out, mealView(m))
	}
	return out, nil
}

func (s *MealService) Recent(limit int) ([]MealView, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.List(limit)
}

func (s *MealService) Update(id uint, p MealPatch) (*MealView, error) {
	var m models.Meal
	if err := s.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %d", ErrNotFound, id)
		}
		return nil, err
	}

	if p.Dt != nil {
		m.Dt = *p.Dt
	}
	if p.Note != nil {
		if *p.Note == "" {
			m.Note = nil
		} else {
			m.Note = p.Note
		}
	}

	// food change rewrites the snapshot; a stale snapshot is a
	// correctness bug
	foodChanged := false
	if p.FoodID != nil && (m.FoodID == nil || *m.FoodID != *p.FoodID) {
		var food models.Food
		if err := s.db.First(&food, *p.FoodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: food %d not found", ErrInvalidArgument, *p.FoodID)
			}
			return nil, err
		}
		if food.KcalPerG <= 0 {
			return nil, fmt.Errorf("%w: food kcal_per_g is missing", ErrInvalidArgument)
		}
		m.FoodID = p.FoodID
		m.KcalPerGSnapshot = utils.Round(food.KcalPerG, snapshotPlaces)
		foodChanged = true
	}

	gramsChanged := false
	if p.Grams != nil {
		if *p.Grams < 0 {
			return nil, fmt.Errorf("%w: grams must not be negative", ErrInvalidArgument)
		}
		v := utils.Round(*p.Grams, amountPlaces)
		m.Grams = &v
		gramsChanged = true
	}
	if p.Kcal != nil {
		if *p.Kcal < 0 {
			return nil, fmt.Errorf("%w: kcal must not be negative", ErrInvalidArgument)
		}
		v := utils.Round(*p.Kcal, amountPlaces)
		m.Kcal = &v
	}

	// kcal not explicitly given: recompute from the current snapshot
	// when grams or the food changed
	if (gramsChanged || foodChanged) && p.Kcal == nil && m.Grams != nil && m.KcalPerGSnapshot > 0 {
		v := utils.Round(*m.Grams*m.KcalPerGSnapshot, amountPlaces)
		m.Kcal = &v
	}

	if p.LeftoverG != nil {
		m.LeftoverG = *p.LeftoverG
	}
	var maxG float64
	if m.Grams != nil {
		maxG = *m.Grams
	}
	m.LeftoverG = utils.Round(utils.Clamp(m.LeftoverG, 0, maxG), amountPlaces)

	if err := s.db.Save(&m).Error; err != nil {
		return nil, err
	}
	return s.Get(m.ID)
}

func (s *MealService) Delete(id uint) error {
	res := s.db.Delete(&models.Meal{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: meal %d", ErrNotFound, id)
	}
	return nil
}

// sessionWindow bounds how far around an anchor we look when resolving
// its session. A session drifting past this in one direction would be
// truncated; at one-cat scale that never happens.
const sessionWindow = 24 * time.Hour

// sessionMealsOf loads the meals forming the session that contains the
// anchor entry, resolved at read time via the 15-minute partition.
func (s *MealService) sessionMealsOf(db *gorm.DB, anchorID uint) ([]models.Meal, error) {
	var anchor models.Meal
	if err := db.First(&anchor, anchorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: meal %d", ErrNotFound, anchorID)
		}
		return nil, err
	}

	var rows []models.Meal
	err := db.Preload("Food").
		Where("dt BETWEEN ? AND ?", anchor.Dt.Add(-sessionWindow), anchor.Dt.Add(sessionWindow)).
		Order("dt ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ses := sessionContaining(GroupSessions(rows), anchorID)
	if ses == nil {
		return nil, fmt.Errorf("%w: meal %d", ErrNotFound, anchorID)
	}
	return ses.Entries, nil
}

// SessionOf returns the feeding session containing the anchor entry,
// as displayed rows with net values.
func (s *MealService) SessionOf(anchorID uint) ([]MealView, error) {
	meals, err := s.sessionMealsOf(s.db, anchorID)
	if err != nil {
		return nil, err
	}
	out := make([]MealView, 0, len(meals))
	for _, m := range meals {
		out = append(out, mealView(m))
	}
	return out, nil
}

// Leftover recording. Both modes operate over the session containing
// the anchor entry and run in a single transaction: the batch is
// all-or-nothing.

const (
	LeftoverModeByFood = "by_food"
	LeftoverModeRatio  = "ratio"
)

type LeftoverItem struct {
	MealID    uint    `json:"meal_id"`
	LeftoverG float64 `json:"leftover_g"`
}

type LeftoverRequest struct {
	AnchorID     uint           `json:"anchor_id"`
	Mode         string         `json:"mode"`
	Items        []LeftoverItem `json:"items,omitempty"`
	RatioPercent *float64       `json:"ratio_percent,omitempty"`
	Note         *string        `json:"note,omitempty"`
}

const leftoverNoteTag = "[LEFTOVER]"

// RecordLeftover writes leftover grams onto every affected entry of the
// anchor's session and returns the number of entries updated. Values
// are clamped to [0, grams]; an optional note is appended, tagged so it
// stays distinguishable from user notes.
func (s *MealService) RecordLeftover(req LeftoverRequest) (int, error) {
	if req.AnchorID == 0 {
		return 0, fmt.Errorf("%w: anchor_id is required", ErrInvalidArgument)
	}
	if req.Mode != LeftoverModeByFood && req.Mode != LeftoverModeRatio {
		return 0, fmt.Errorf("%w: mode must be %q or %q", ErrInvalidArgument, LeftoverModeByFood, LeftoverModeRatio)
	}
	if req.Mode == LeftoverModeByFood && len(req.Items) == 0 {
		return 0, fmt.Errorf("%w: items is required", ErrInvalidArgument)
	}
	if req.Mode == LeftoverModeRatio && req.RatioPercent == nil {
		return 0, fmt.Errorf("%w: ratio_percent is required", ErrInvalidArgument)
	}

	updated := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meals, err := s.sessionMealsOf(tx, req.AnchorID)
		if err != nil {
			return err
		}

		gramsByID := make(map[uint]float64, len(meals))
		for _, m := range meals {
			var g float64
			if m.Grams != nil {
				g = *m.Grams
			}
			gramsByID[m.ID] = g
		}

		write := func(id uint, leftover float64) error {
			leftover = utils.Round(utils.Clamp(leftover, 0, gramsByID[id]), amountPlaces)
			if err := tx.Model(&models.Meal{}).Where("id = ?", id).
				Update("leftover_g", leftover).Error; err != nil {
				return err
			}
			updated++
			return nil
		}

		switch req.Mode {
		case LeftoverModeRatio:
			frac := utils.Clamp(*req.RatioPercent, 0, 100) / 100
			for _, m := range meals {
				if err := write(m.ID, gramsByID[m.ID]*frac); err != nil {
					return err
				}
			}
		case LeftoverModeByFood:
			for _, it := range req.Items {
				if _, ok := gramsByID[it.MealID]; !ok {
					// not part of the anchor's session
					continue
				}
				if err := write(it.MealID, it.LeftoverG); err != nil {
					return err
				}
			}
		}

		// optional note, appended to every entry of the session
		if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
			suffix := leftoverNoteTag + " " + strings.TrimSpace(*req.Note)
			for _, m := range meals {
				merged := suffix
				if m.Note != nil && *m.Note != "" {
					merged = *m.Note + "\n" + suffix
				}
				if err := tx.Model(&models.Meal{}).Where("id = ?", m.ID).
					Update("note", merged).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		updated = 0
	}
	return updated, err
}

func normalizeNote(n *string) *string {
	if n == nil || *n == "" {
		return nil
	}
	return n
}
