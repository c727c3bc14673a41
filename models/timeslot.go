package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is an admin-managed, ordered time window gating which product
// categories are sellable. Start/end are local wall-clock "HH:MM" strings;
// an end numerically before the start means the window wraps past midnight
// (22:00-06:00).
type TimeSlot struct {
	ID        uuid.UUID `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`   // internal key, e.g. "morning"
	Label     string    `json:"label" bson:"label"` // display label
	Icon      string    `json:"icon,omitempty" bson:"icon,omitempty"`
	StartTime string    `json:"start_time" bson:"start_time"`
	EndTime   string    `json:"end_time" bson:"end_time"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	Order     int       `json:"order" bson:"order"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TimeRule is the saved snapshot of which categories are sellable during
// one slot. Its start/end copies are taken at save time and may drift from
// the slot's current definition until the rules are re-saved.
type TimeRule struct {
	TimeSlotName      string      `json:"time_slot_name" bson:"time_slot_name"`
	StartTime         string      `json:"start_time" bson:"start_time"`
	EndTime           string      `json:"end_time" bson:"end_time"`
	AllowedCategories []Reference `json:"allowed_categories" bson:"allowed_categories"`
	IsActive          bool        `json:"is_active" bson:"is_active"`
}

// TimeRulesConfig maps a TimeSlot id (string form) to its rule. Keys may
// reference slots that no longer exist; readers ignore orphaned entries.
type TimeRulesConfig map[string]TimeRule

// Clone returns a deep copy, so rule edits never alias the stored map.
func (c TimeRulesConfig) Clone() TimeRulesConfig {
	out := make(TimeRulesConfig, len(c))
	for id, rule := range c {
		cats := make([]Reference, len(rule.AllowedCategories))
		copy(cats, rule.AllowedCategories)
		rule.AllowedCategories = cats
		out[id] = rule
	}
	return out
}
