package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/naoki6532b/cat-health-log/models"

	"gorm.io/gorm"
)

type ElimService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewElimService(db *gorm.DB, loc *time.Location) *ElimService {
	return &ElimService{db: db, loc: loc}
}

type ElimDraft struct {
	Dt      time.Time `json:"dt"`
	Kind    string    `json:"kind"`
	Amount  *string   `json:"amount"`
	UrineML *float64  `json:"urine_ml"`
	Note    *string   `json:"note"`
	Vomit   bool      `json:"vomit"`
}

type ElimPatch struct {
	Dt      *time.Time `json:"dt"`
	Kind    *string    `json:"kind"`
	Amount  *string    `json:"amount"`
	UrineML *float64   `json:"urine_ml"`
	Note    *string    `json:"note"`
	Vomit   *bool      `json:"vomit"`
}

// NormalizeKind maps the entry form's labels onto the stored enum.
// The UI historically sends Japanese labels, so both are accepted.
func NormalizeKind(raw string) (string, bool) {
	switch strings.TrimSpace(raw) {
	case models.ElimStool, "poop", "うんち":
		return models.ElimStool, true
	case models.ElimUrine, "pee", "おしっこ":
		return models.ElimUrine, true
	case models.ElimBoth, "両方":
		return models.ElimBoth, true
	}
	return "", false
}

func (s *ElimService) List(days int) ([]models.Elimination, error) {
	days = clampDays(days, 14, 90)
	from := time.Now().AddDate(0, 0, -(days - 1))

	var rows []models.Elimination
	err := s.db.
		Where("dt >= ?", from).
		Order("dt DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *ElimService) Create(in ElimDraft) (*models.Elimination, error) {
	if in.Dt.IsZero() {
		return nil, fmt.Errorf("%w: dt is required", ErrInvalidArgument)
	}
	kind, ok := NormalizeKind(in.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: kind is required (stool/urine/both)", ErrInvalidArgument)
	}
	e := models.Elimination{
		Dt:      in.Dt,
		Kind:    kind,
		Amount:  in.Amount,
		UrineML: in.UrineML,
		Note:    normalizeNote(in.Note),
		Vomit:   in.Vomit,
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ElimService) Update(id uint, p ElimPatch) (*models.Elimination, error) {
	var e models.Elimination
	if err := s.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: elimination %d", ErrNotFound, id)
		}
		return nil, err
	}
	if p.Dt != nil {
		e.Dt = *p.Dt
	}
	if p.Kind != nil {
		kind, ok := NormalizeKind(*p.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: invalid kind %q", ErrInvalidArgument, *p.Kind)
		}
		e.Kind = kind
	}
	if p.Amount != nil {
		e.Amount = p.Amount
	}
	if p.UrineML != nil {
		e.UrineML = p.UrineML
	}
	if p.Note != nil {
		if *p.Note == "" {
			e.Note = nil
		} else {
			e.Note = p.Note
		}
	}
	if p.Vomit != nil {
		e.Vomit = *p.Vomit
	}
	if err := s.db.Save(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *ElimService) Delete(id uint) error {
	res := s.db.Delete(&models.Elimination{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: elimination %d", ErrNotFound, id)
	}
	return nil
}

// ElimDay is one zero-filled day of litter-box counts.
type ElimDay struct {
	Day  string `json:"day"`
	Poop int    `json:"poop"`
	Pee  int    `json:"pee"`
}

// Daily counts stool/urine events per reporting-zone day over a
// trailing window (1..90 days, default 30), zero-filling empty days.
// "both" counts toward each.
func (s *ElimService) Daily(days int) ([]ElimDay, error) {
	days = clampDays(days, 30, 90)

	today := time.Now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).
		AddDate(0, 0, -(days - 1))

	var rows []models.Elimination
	err := s.db.
		Where("dt >= ?", start.UTC()).
		Order("dt ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	idx := map[string]*ElimDay{}
	for _, e := range rows {
		key := e.Dt.In(s.loc).Format(dayFormat)
		d := idx[key]
		if d == nil {
			d = &ElimDay{Day: key}
			idx[key] = d
		}
		if e.Kind == models.ElimStool || e.Kind == models.ElimBoth {
			d.Poop++
		}
		if e.Kind == models.ElimUrine || e.Kind == models.ElimBoth {
			d.Pee++
		}
	}

	out := make([]ElimDay, 0, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format(dayFormat)
		if d := idx[key]; d != nil {
			out = append(out, *d)
		} else {
			out = append(out, ElimDay{Day: key})
		}
	}
	return out, nil
}
