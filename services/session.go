package services

import (
	"time"

	"github.com/naoki6532b/cat-health-log/models"
)

// SessionGap is the maximum gap between consecutive meals of one
// feeding session.
const SessionGap = 15 * time.Minute

// Session is a maximal run of meals where consecutive entries are at
// most SessionGap apart. Computed at read time, never stored.
type Session struct {
	Start             time.Time
	Entries           []models.Meal
	TotalNetKcal      float64
	TotalLeftoverKcal float64
}

// GroupSessions partitions meals, which must already be sorted by dt
// ascending, into feeding sessions. A meal joins the current session
// when it is within SessionGap of the previous meal in that session;
// otherwise it starts a new one. Single pass, ties keep input order.
//
// Note the gap is measured against the previous entry, not the session
// start, so a slow drift of entries can stretch a session arbitrarily.
func GroupSessions(meals []models.Meal) []Session {
	var out []Session
	for _, m := range meals {
		_, leftoverKcal, netKcal := mealNet(m)

		if n := len(out); n > 0 {
			cur := &out[n-1]
			prev := cur.Entries[len(cur.Entries)-1]
			if m.Dt.Sub(prev.Dt) <= SessionGap {
				cur.Entries = append(cur.Entries, m)
				cur.TotalNetKcal += netKcal
				cur.TotalLeftoverKcal += leftoverKcal
				continue
			}
		}
		out = append(out, Session{
			Start:             m.Dt,
			Entries:           []models.Meal{m},
			TotalNetKcal:      netKcal,
			TotalLeftoverKcal: leftoverKcal,
		})
	}
	return out
}

// sessionContaining returns the session holding the meal with the given
// id, or nil.
func sessionContaining(sessions []Session, id uint) *Session {
	for i := range sessions {
		for _, m := range sessions[i].Entries {
			if m.ID == id {
				return &sessions[i]
			}
		}
	}
	return nil
}
