package services

import (
	"testing"
	"time"

	"github.com/naoki6532b/cat-health-log/models"
)

func mealAt(id uint, dt time.Time, grams, kcal, snapshot, leftover float64) models.Meal {
	m := models.Meal{
		Dt:               dt,
		Grams:            &grams,
		Kcal:             &kcal,
		KcalPerGSnapshot: snapshot,
		LeftoverG:        leftover,
	}
	m.ID = id
	return m
}

func TestGroupSessionsSplitsOnGap(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		mealAt(1, base, 50, 60, 1.2, 0),
		mealAt(2, base.Add(10*time.Minute), 30, 36, 1.2, 0),
		mealAt(3, base.Add(30*time.Minute), 20, 24, 1.2, 0),
	}

	sessions := GroupSessions(meals)
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if len(sessions[0].Entries) != 2 {
		t.Fatalf("first session has %d entries, want 2 (10:00 and 10:10)", len(sessions[0].Entries))
	}
	if len(sessions[1].Entries) != 1 {
		t.Fatalf("second session has %d entries, want 1 (10:30)", len(sessions[1].Entries))
	}
	if !sessions[1].Start.Equal(base.Add(30 * time.Minute)) {
		t.Fatalf("second session starts at %v, want 10:30", sessions[1].Start)
	}
}

func TestGroupSessionsGapAgainstPreviousEntry(t *testing.T) {
	// entries drifting 10 minutes apart never split, even though the
	// last one is far past the session start
	base := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	var meals []models.Meal
	for i := 0; i < 6; i++ {
		meals = append(meals, mealAt(uint(i+1), base.Add(time.Duration(i)*10*time.Minute), 10, 12, 1.2, 0))
	}

	sessions := GroupSessions(meals)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1 long drifting session", len(sessions))
	}
	if len(sessions[0].Entries) != 6 {
		t.Fatalf("session has %d entries, want 6", len(sessions[0].Entries))
	}
}

func TestGroupSessionsTotals(t *testing.T) {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		mealAt(1, base, 50, 60, 1.2, 10),                    // leftover 12 kcal, net 48
		mealAt(2, base.Add(5*time.Minute), 30, 36, 1.2, 0),  // net 36
	}

	sessions := GroupSessions(meals)
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if got := sessions[0].TotalNetKcal; got != 84 {
		t.Fatalf("TotalNetKcal = %v, want 84", got)
	}
	if got := sessions[0].TotalLeftoverKcal; got != 12 {
		t.Fatalf("TotalLeftoverKcal = %v, want 12", got)
	}
}

func TestGroupSessionsEmpty(t *testing.T) {
	if got := GroupSessions(nil); len(got) != 0 {
		t.Fatalf("got %d sessions for empty input, want 0", len(got))
	}
}

func TestMealNetLegacyRowFallback(t *testing.T) {
	// a row without a snapshot cannot subtract leftovers; kcal is
	// treated as already net instead of failing
	m := mealAt(1, time.Now(), 50, 60, 0, 10)
	netGrams, leftoverKcal, netKcal := mealNet(m)
	if netGrams != 40 {
		t.Fatalf("netGrams = %v, want 40", netGrams)
	}
	if leftoverKcal != 0 {
		t.Fatalf("leftoverKcal = %v, want 0 on legacy row", leftoverKcal)
	}
	if netKcal != 60 {
		t.Fatalf("netKcal = %v, want kcal as-is (60)", netKcal)
	}
}

func TestMealNetClampsToZero(t *testing.T) {
	// leftover kcal exceeding kcal (density drifted) must not go negative
	m := mealAt(1, time.Now(), 50, 30, 1.2, 50)
	_, _, netKcal := mealNet(m)
	if netKcal != 0 {
		t.Fatalf("netKcal = %v, want clamp at 0", netKcal)
	}
}
