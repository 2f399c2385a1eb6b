package services

import (
	"time"

	"github.com/naoki6532b/cat-health-log/models"
	"github.com/naoki6532b/cat-health-log/utils"

	"gorm.io/gorm"
)

// SummaryService is a pure read-time pass over the feeding ledger: no
// state of its own, linear in the number of entries in range.
type SummaryService struct {
	db  *gorm.DB
	loc *time.Location // reporting timezone for day bucketing
}

func NewSummaryService(db *gorm.DB, loc *time.Location) *SummaryService {
	return &SummaryService{db: db, loc: loc}
}

// MealDay is one zero-filled daily rollup row. NetKcalAvg7 is the
// trailing 7-day mean of NetKcal over the returned range.
type MealDay struct {
	Day          string  `json:"day"` // YYYY-MM-DD in the reporting zone
	FeedKcal     float64 `json:"feed_kcal"`
	LeftoverKcal float64 `json:"leftover_kcal"`
	NetKcal      float64 `json:"net_kcal"`
	NetKcalAvg7  float64 `json:"net_kcal_avg7"`
	Grams        float64 `json:"grams"`
	NetGrams     float64 `json:"net_grams"`
}

type SessionView struct {
	Start             time.Time `json:"start"`
	EntryCount        int       `json:"entry_count"`
	TotalNetKcal      float64   `json:"total_net_kcal"`
	TotalLeftoverKcal float64   `json:"total_leftover_kcal"`
}

const dayFormat = "2006-01-02"

func clampDays(days, def, max int) int {
	if days <= 0 {
		days = def
	}
	if days < 1 {
		days = 1
	}
	if days > max {
		days = max
	}
	return days
}

// rangeFor returns the UTC query bounds and the ordered day keys for a
// trailing window of days ending today in the reporting zone.
func (s *SummaryService) rangeFor(days int) (from, to time.Time, dayKeys []string) {
	today := time.Now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).
		AddDate(0, 0, -(days - 1))
	from = start.UTC()
	to = start.AddDate(0, 0, days).UTC()

	dayKeys = make([]string, 0, days)
	for i := 0; i < days; i++ {
		dayKeys = append(dayKeys, start.AddDate(0, 0, i).Format(dayFormat))
	}
	return from, to, dayKeys
}

func (s *SummaryService) mealsBetween(from, to time.Time) ([]models.Meal, error) {
	var rows []models.Meal
	err := s.db.Preload("Food").
		Where("dt >= ? AND dt < ?", from, to).
		Order("dt ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// MealDays rolls the ledger up per reporting-zone calendar day over a
// trailing window (1..90 days, default 30). Days without entries are
// present with all totals zero.
func (s *SummaryService) MealDays(days int) ([]MealDay, error) {
	days = clampDays(days, 30, 90)
	from, to, dayKeys := s.rangeFor(days)

	rows, err := s.mealsBetween(from, to)
	if err != nil {
		return nil, err
	}

	idx := map[string]*MealDay{}
	for _, m := range rows {
		key := m.Dt.In(s.loc).Format(dayFormat)
		d := idx[key]
		if d == nil {
			d = &MealDay{Day: key}
			idx[key] = d
		}
		netGrams, leftoverKcal, netKcal := mealNet(m)
		if m.Kcal != nil {
			d.FeedKcal += *m.Kcal
		}
		if m.Grams != nil {
			d.Grams += *m.Grams
		}
		d.LeftoverKcal += leftoverKcal
		d.NetKcal += netKcal
		d.NetGrams += netGrams
	}

	out := make([]MealDay, 0, len(dayKeys))
	for _, key := range dayKeys {
		if d := idx[key]; d != nil {
			d.FeedKcal = utils.Round(d.FeedKcal, amountPlaces)
			d.LeftoverKcal = utils.Round(d.LeftoverKcal, amountPlaces)
			d.NetKcal = utils.Round(d.NetKcal, amountPlaces)
			d.Grams = utils.Round(d.Grams, amountPlaces)
			d.NetGrams = utils.Round(d.NetGrams, amountPlaces)
			out = append(out, *d)
		} else {
			out = append(out, MealDay{Day: key})
		}
	}

	nets := make([]float64, len(out))
	for i := range out {
		nets[i] = out[i].NetKcal
	}
	for i, avg := range MovingAverage(nets, 7) {
		out[i].NetKcalAvg7 = utils.Round(avg, amountPlaces)
	}
	return out, nil
}

// Sessions lists the 15-minute feeding sessions of a trailing window
// with their net totals, oldest first.
func (s *SummaryService) Sessions(days int) ([]SessionView, error) {
	days = clampDays(days, 30, 90)
	from, to, _ := s.rangeFor(days)

	rows, err := s.mealsBetween(from, to)
	if err != nil {
		return nil, err
	}

	sessions := GroupSessions(rows)
	out := make([]SessionView, 0, len(sessions))
	for _, ses := range sessions {
		out = append(out, SessionView{
			Start:             ses.Start,
			EntryCount:        len(ses.Entries),
			TotalNetKcal:      utils.Round(ses.TotalNetKcal, amountPlaces),
			TotalLeftoverKcal: utils.Round(ses.TotalLeftoverKcal, amountPlaces),
		})
	}
	return out, nil
}

// MealRows returns the flat per-entry rows for a trailing window,
// oldest first, with derived net values — the chart feed.
func (s *SummaryService) MealRows(days int) ([]MealView, error) {
	days = clampDays(days, 30, 90)
	from, to, _ := s.rangeFor(days)

	rows, err := s.mealsBetween(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]MealView, 0, len(rows))
	for _, m := range rows {
		out = append(out, mealView(m))
	}
	return out, nil
}

// MovingAverage computes the trailing n-point mean over an observed
// series. The caller passes actual observations only, so gap days are
// naturally skipped: a 7-point weight average covers the last 7
// measurements, not the last 7 calendar days.
func MovingAverage(values []float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		lo := i - n + 1
		if lo < 0 {
			lo = 0
		}
		var sum float64
		for j := lo; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(i-lo+1)
	}
	return out
}

// WeightPoint is one measurement with its trailing average.
type WeightPoint struct {
	Dt       time.Time `json:"dt"`
	WeightKg float64   `json:"weight_kg"`
	Avg      float64   `json:"avg"`
}

// WeightTrend returns the weight measurements of a trailing window
// (1..3650 days, default 365) with a moving average over the observed
// points, oldest first.
func (s *SummaryService) WeightTrend(days, window int) ([]WeightPoint, error) {
	days = clampDays(days, 365, 3650)
	if window <= 0 {
		window = 7
	}
	from, to, _ := s.rangeFor(days)

	var rows []models.Weight
	err := s.db.
		Where("dt >= ? AND dt < ?", from, to).
		Order("dt ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(rows))
	for i, w := range rows {
		values[i] = w.WeightKg
	}
	avgs := MovingAverage(values, window)

	out := make([]WeightPoint, len(rows))
	for i, w := range rows {
		out[i] = WeightPoint{Dt: w.Dt, WeightKg: w.WeightKg, Avg: utils.Round(avgs[i], 2)}
	}
	return out, nil
}
