// Package alerts holds the alert rule engine: rule lifecycle, per-rule
// cooldown and the evaluation pass that runs on every fresh price
// observation.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "metalwatch/internal/errors"
	"metalwatch/internal/logging"
	"metalwatch/internal/models"
	"metalwatch/internal/notify"
	"metalwatch/internal/store"
	"metalwatch/pkg/utils"
)

// Cooldown is the minimum interval between successive triggers of one rule.
const Cooldown = 60 * time.Minute

// targetTolerance is the ±1% band around a target price. Feed prices
// fluctuate continuously; exact equality would almost never fire.
const targetTolerance = 0.01

// Engine owns the alert rule set. All mutation happens on the caller's
// single logical thread; the mutex only guards against accidental concurrent
// use, an evaluation pass always runs to completion without interleaving.
type Engine struct {
	kv         store.KVStore
	dispatcher notify.Dispatcher
	logger     zerolog.Logger
	now        func() time.Time

	mu    sync.Mutex
	rules []models.AlertRule
}

// NewEngine creates an engine over the given store and dispatcher.
func NewEngine(kv store.KVStore, dispatcher notify.Dispatcher, logger zerolog.Logger) *Engine {
	return &Engine{
		kv:         kv,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the engine's time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Load reads the persisted rule set. An absent key is an empty set.
func (e *Engine) Load(ctx context.Context) error {
	raw, ok, err := e.kv.Get(ctx, store.KeyAlertRules)
	if err != nil {
		return apperrors.Wrap(err, "loading alert rules")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !ok || raw == "" {
		e.rules = nil
		return nil
	}

	var rules []models.AlertRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return apperrors.Wrap(err, "parsing alert rules")
	}
	e.rules = rules
	return nil
}

// persist writes the full rule set back to the store. Callers hold e.mu.
func (e *Engine) persist(ctx context.Context) error {
	raw, err := json.Marshal(e.rules)
	if err != nil {
		return apperrors.Wrap(err, "encoding alert rules")
	}
	return e.kv.Set(ctx, store.KeyAlertRules, string(raw))
}

// Add creates and persists a new enabled rule.
func (e *Engine) Add(ctx context.Context, metal string, t models.AlertType, value float64) (models.AlertRule, error) {
	if metal == "" {
		return models.AlertRule{}, apperrors.Wrap(apperrors.ErrInvalidRule, "metal is required")
	}
	if t != models.AlertTargetPrice && t != models.AlertPercentChange {
		return models.AlertRule{}, apperrors.Wrapf(apperrors.ErrInvalidRule, "unknown type %q", t)
	}
	if value <= 0 {
		return models.AlertRule{}, apperrors.Wrap(apperrors.ErrInvalidRule, "value must be positive")
	}

	rule := models.AlertRule{
		ID:        uuid.NewString(),
		Metal:     metal,
		Type:      t,
		Value:     value,
		Enabled:   true,
		CreatedAt: e.now(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rule)
	if err := e.persist(ctx); err != nil {
		e.rules = e.rules[:len(e.rules)-1]
		return models.AlertRule{}, err
	}
	return rule, nil
}

// Toggle enables or disables a rule and persists the set.
func (e *Engine) Toggle(ctx context.Context, id string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules[i].Enabled = enabled
			return e.persist(ctx)
		}
	}
	return apperrors.ErrRuleNotFound
}

// Delete removes a rule and persists the set.
func (e *Engine) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.rules {
		if e.rules[i].ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			return e.persist(ctx)
		}
	}
	return apperrors.ErrRuleNotFound
}

// Rules returns a copy of the current rule set.
func (e *Engine) Rules() []models.AlertRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.AlertRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Evaluation is the outcome of evaluating one rule against one observation.
type Evaluation struct {
	Triggered bool
	Message   string
}

// Evaluate checks one rule against a fresh price observation. It is pure:
// the caller supplies the clock and applies any state change. A rule is
// skipped when disabled, when it watches a different metal, or while its
// cooldown window is open.
func Evaluate(rule models.AlertRule, metalName string, current float64, yesterday *float64, now time.Time) Evaluation {
	if !rule.Enabled || rule.Metal != metalName {
		return Evaluation{}
	}

	if rule.LastTriggeredAt != nil {
		if now.Sub(*rule.LastTriggeredAt) < Cooldown {
			return Evaluation{}
		}
	}

	switch rule.Type {
	case models.AlertTargetPrice:
		lo := rule.Value * (1 - targetTolerance)
		hi := rule.Value * (1 + targetTolerance)
		if current >= lo && current <= hi {
			return Evaluation{
				Triggered: true,
				Message: fmt.Sprintf("%s reached your target of %s (current: %s)",
					metalName, utils.FormatINR(rule.Value), utils.FormatINR(current)),
			}
		}
	case models.AlertPercentChange:
		// Cannot divide safely without a positive yesterday price.
		if yesterday == nil || *yesterday <= 0 {
			return Evaluation{}
		}
		pct := (current - *yesterday) / *yesterday * 100
		if pct >= rule.Value || -pct >= rule.Value {
			word := "rose"
			if pct < 0 {
				word = "fell"
			}
			return Evaluation{
				Triggered: true,
				Message: fmt.Sprintf("%s %s %.2f%% since yesterday (current: %s)",
					metalName, word, abs(pct), utils.FormatINR(current)),
			}
		}
	}

	return Evaluation{}
}

// EvaluateAll runs one synchronous evaluation pass for a fresh observation
// of one metal. Every rule for the metal is evaluated independently against
// its own cooldown. On trigger the message is dispatched and the cooldown is
// committed and persisted unconditionally, even when dispatch fails:
// at-most-one-attempt-per-window wins over exactly-one-delivery.
func (e *Engine) EvaluateAll(ctx context.Context, metalName string, current float64, yesterday *float64) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	triggered := 0

	for i := range e.rules {
		ev := Evaluate(e.rules[i], metalName, current, yesterday, now)
		if !ev.Triggered {
			continue
		}

		title := fmt.Sprintf("Price alert: %s", metalName)
		if err := e.dispatcher.NotifyLocal(ctx, title, ev.Message); err != nil {
			e.logger.Warn().Err(err).Str("rule_id", e.rules[i].ID).Msg("Local dispatch failed")
		}
		if err := e.dispatcher.NotifyRemote(ctx, title, ev.Message); err != nil {
			e.logger.Warn().Err(err).Str("rule_id", e.rules[i].ID).Msg("Remote dispatch failed")
		}

		ts := now
		e.rules[i].LastTriggeredAt = &ts
		if err := e.persist(ctx); err != nil {
			e.logger.Error().Err(err).Str("rule_id", e.rules[i].ID).Msg("Persisting cooldown failed")
		}

		logging.LogAlert(e.logger, e.rules[i].ID, metalName, string(e.rules[i].Type), current)
		triggered++
	}

	return triggered
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
