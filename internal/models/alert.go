package models

import "time"

// AlertType is the kind of condition an alert rule evaluates.
type AlertType string

const (
	// AlertTargetPrice triggers when the price reaches a target band.
	AlertTargetPrice AlertType = "target_price"
	// AlertPercentChange triggers on a day-over-day move of at least N percent.
	AlertPercentChange AlertType = "percentage_change"
)

// AlertRule is a user-defined price alert. Rules survive across sessions in
// the key-value store until explicitly deleted.
type AlertRule struct {
	ID              string     `json:"id"`
	Metal           string     `json:"metal"`
	Type            AlertType  `json:"type"`
	Value           float64    `json:"value"`
	Enabled         bool       `json:"enabled"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastTriggeredAt *time.Time `json:"lastTriggeredAt"`
}
