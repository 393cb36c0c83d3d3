package notify

import (
	"context"
	"time"

	"metalwatch/internal/store"
)

// DailyGate deduplicates the once-per-day summary notification. Days compare
// by calendar date in the user's local time.
type DailyGate struct {
	kv  store.KVStore
	now func() time.Time
}

// NewDailyGate creates a gate over the given store.
func NewDailyGate(kv store.KVStore) *DailyGate {
	return &DailyGate{kv: kv, now: time.Now}
}

// ShouldSend reports whether the daily notification has not yet gone out
// today. Store errors read as "not sent" so a broken store cannot suppress
// the notification forever.
func (g *DailyGate) ShouldSend(ctx context.Context) bool {
	last, ok, err := g.kv.Get(ctx, store.KeyLastDailyNotified)
	if err != nil || !ok {
		return true
	}
	return last != g.today()
}

// MarkSent records that today's notification went out.
func (g *DailyGate) MarkSent(ctx context.Context) error {
	return g.kv.Set(ctx, store.KeyLastDailyNotified, g.today())
}

func (g *DailyGate) today() string {
	return g.now().Local().Format("2006-01-02")
}
