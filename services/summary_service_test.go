package services

import (
	"math"
	"testing"
	"time"
)

var testLoc = time.FixedZone("UTC+9", 9*3600)

func TestMovingAverageTrailingWindow(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("avg[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMovingAverageWindowLargerThanSeries(t *testing.T) {
	got := MovingAverage([]float64{4, 6}, 7)
	if got[0] != 4 || got[1] != 5 {
		t.Fatalf("got %v, want [4 5]", got)
	}
	if len(MovingAverage(nil, 7)) != 0 {
		t.Fatal("empty series must yield empty result")
	}
}

func TestMealDaysZeroFill(t *testing.T) {
	db := newTestDB(t)
	food := mustFood(t, db, "Salmon", 1.2)

	now := at(time.Now())
	// entries on day 1 and day 3 of a 3-day range, nothing on day 2
	mustMeal(t, db, MealDraft{Dt: now.Add(-48 * time.Hour), FoodID: &food.ID, Grams: f(50), LeftoverG: f(10)})
	mustMeal(t, db, MealDraft{Dt: now, FoodID: &food.ID, Grams: f(30)})

	days, err := NewSummaryService(db, testLoc).MealDays(3)
	if err != nil {
		t.Fatalf("meal days: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("got %d rows, want 3 (zero-filled range)", len(days))
	}

	first, middle, last := days[0], days[1], days[2]
	if first.FeedKcal != 60 || first.LeftoverKcal != 12 || first.NetKcal != 48 {
		t.Fatalf("day 1 = %+v, want feed 60 / leftover 12 / net 48", first)
	}
	if middle.FeedKcal != 0 || middle.NetKcal != 0 || middle.Grams != 0 {
		t.Fatalf("day 2 = %+v, want an all-zero row, not an absent one", middle)
	}
	if last.FeedKcal != 36 || last.NetGrams != 30 {
		t.Fatalf("day 3 = %+v, want feed 36 / net grams 30", last)
	}

	wantDay := now.In(testLoc).Format("2006-01-02")
	if last.Day != wantDay {
		t.Fatalf("day key = %s, want reporting-zone date %s", last.Day, wantDay)
	}

	// trailing average over the zero-filled range: (48 + 0 + 36) / 3
	if last.NetKcalAvg7 != 28 {
		t.Fatalf("net_kcal_avg7 = %v, want 28", last.NetKcalAvg7)
	}
}

func TestSummarySessions(t *testing.T) {
	db := newTestDB(t)
	food := mustFood(t, db, "Salmon", 1.2)
	base := at(time.Now().Add(-3 * time.Hour))

	mustMeal(t, db, MealDraft{Dt: base, FoodID: &food.ID, Grams: f(40)})
	mustMeal(t, db, MealDraft{Dt: base.Add(10 * time.Minute), FoodID: &food.ID, Grams: f(60)})
	mustMeal(t, db, MealDraft{Dt: base.Add(2 * time.Hour), FoodID: &food.ID, Grams: f(20)})

	sessions, err := NewSummaryService(db, testLoc).Sessions(7)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].EntryCount != 2 {
		t.Fatalf("first session entry_count = %d, want 2", sessions[0].EntryCount)
	}
	// 40g + 60g at density 1.2, nothing left over
	if sessions[0].TotalNetKcal != 120 {
		t.Fatalf("first session total_net_kcal = %v, want 120", sessions[0].TotalNetKcal)
	}
}

func TestWeightTrendAveragesObservedPoints(t *testing.T) {
	db := newTestDB(t)
	wsvc := NewWeightService(db)

	now := at(time.Now())
	// sparse measurements with gap days in between
	for i, w := range []struct {
		daysAgo int
		kg      float64
	}{{20, 4.0}, {10, 4.2}, {0, 4.6}} {
		if _, err := wsvc.Create(WeightDraft{Dt: now.AddDate(0, 0, -w.daysAgo), WeightKg: w.kg}); err != nil {
			t.Fatalf("create weight %d: %v", i, err)
		}
	}

	points, err := NewSummaryService(db, testLoc).WeightTrend(30, 2)
	if err != nil {
		t.Fatalf("weight trend: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	// trailing average spans the last 2 measurements, not the last 2
	// calendar days
	if got, want := points[2].Avg, 4.4; math.Abs(got-want) > 1e-9 {
		t.Fatalf("avg = %v, want %v over the two latest measurements", got, want)
	}
	if points[0].Avg != 4.0 {
		t.Fatalf("first avg = %v, want the lone measurement 4.0", points[0].Avg)
	}
}
