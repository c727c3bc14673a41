package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// parseClock converts a local wall-clock "HH:MM" string to minutes since
// midnight. ok is false for anything that does not parse; callers skip
// such slots rather than guessing.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// slotContains reports whether the minute-of-day now falls inside the
// slot's window. An end at or before the start means the window wraps
// past midnight (22:00-06:00 covers 23:30 but not 07:00).
func slotContains(slot *models.TimeSlot, now int) bool {
	start, ok := parseClock(slot.StartTime)
	if !ok {
		return false
	}
	end, ok := parseClock(slot.EndTime)
	if !ok {
		return false
	}
	if end <= start {
		return now >= start || now <= end
	}
	return now >= start && now < end
}

// ResolveActiveSlot returns the first active slot whose window contains
// now, evaluating slots in ascending Order. Overlapping windows are not
// disambiguated beyond that ordering. Returns nil when no slot matches.
func ResolveActiveSlot(now time.Time, slots []models.TimeSlot) *models.TimeSlot {
	minute := now.Hour()*60 + now.Minute()

	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	for i := range sorted {
		slot := &sorted[i]
		if !slot.IsActive {
			continue
		}
		if slotContains(slot, minute) {
			return slot
		}
	}
	return nil
}

// AvailableCategories returns the categories sellable during slot, or an
// empty list when the slot has no rule entry yet. Rule keys referencing
// deleted slots are simply never looked up, so orphans are harmless.
func AvailableCategories(slot *models.TimeSlot, rules models.TimeRulesConfig) []models.Reference {
	if slot == nil {
		return nil
	}
	rule, ok := rules[slot.ID.String()]
	if !ok {
		return []models.Reference{}
	}
	return rule.AllowedCategories
}

// ToggleCategoryForSlot returns a new config with category added to or
// removed from the slot's rule. Adding is idempotent: a category already
// present is not duplicated. A missing rule entry is synthesized from the
// slot's current definition before the toggle is applied.
func ToggleCategoryForSlot(rules models.TimeRulesConfig, slot *models.TimeSlot, category models.Reference, included bool) models.TimeRulesConfig {
	out := rules.Clone()
	key := slot.ID.String()

	rule, ok := out[key]
	if !ok {
		rule = models.TimeRule{
			TimeSlotName:      slot.Label,
			StartTime:         slot.StartTime,
			EndTime:           slot.EndTime,
			AllowedCategories: []models.Reference{},
			IsActive:          slot.IsActive,
		}
	}

	if included {
		for _, c := range rule.AllowedCategories {
			if c.ID == category.ID {
				out[key] = rule
				return out
			}
		}
		rule.AllowedCategories = append(rule.AllowedCategories, category)
	} else {
		kept := rule.AllowedCategories[:0]
		for _, c := range rule.AllowedCategories {
			if c.ID != category.ID {
				kept = append(kept, c)
			}
		}
		rule.AllowedCategories = kept
	}

	out[key] = rule
	return out
}

// Availability is what the storefront asks for: the slot active at a
// given time and the categories it allows.
type Availability struct {
	Slot       *models.TimeSlot   `json:"slot"`
	Categories []models.Reference `json:"categories"`
}

type TimeRulesService interface {
	ListSlots(ctx context.Context) ([]models.TimeSlot, error)
	CreateSlot(ctx context.Context, slot *models.TimeSlot) error
	UpdateSlot(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	GetRules(ctx context.Context) (models.TimeRulesConfig, error)
	SaveRules(ctx context.Context, rules models.TimeRulesConfig) error
	ToggleCategory(ctx context.Context, slotID uuid.UUID, category models.Reference, included bool) (models.TimeRulesConfig, error)
	AvailabilityAt(ctx context.Context, at time.Time) (*Availability, error)
}

type timeRulesService struct {
	slots  repository.TimeSlotRepo
	rules  repository.TimeRulesRepo
	logger *zap.Logger
}

func NewTimeRulesService(slots repository.TimeSlotRepo, rules repository.TimeRulesRepo, logger *zap.Logger) TimeRulesService {
	return &timeRulesService{slots: slots, rules: rules, logger: logger}
}

func (s *timeRulesService) ListSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return s.slots.FindAll(ctx)
}

func (s *timeRulesService) CreateSlot(ctx context.Context, slot *models.TimeSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	return s.slots.Create(ctx, slot)
}

func (s *timeRulesService) UpdateSlot(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return s.slots.Update(ctx, id, updates)
}

// DeleteSlot removes the slot, then best-effort removes its rule entry.
// The second write is not transactional with the first: if it fails the
// config keeps an orphaned key, which the evaluator ignores.
func (s *timeRulesService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		return err
	}

	rules, err := s.rules.Get(ctx)
	if err != nil {
		s.logger.Warn("time rules cleanup read failed, leaving orphaned entry",
			zap.String("slot_id", id.String()), zap.Error(err))
		return nil
	}
	if _, ok := rules[id.String()]; !ok {
		return nil
	}
	cleaned := rules.Clone()
	delete(cleaned, id.String())
	if err := s.rules.Save(ctx, cleaned); err != nil {
		s.logger.Warn("time rules cleanup write failed, leaving orphaned entry",
			zap.String("slot_id", id.String()), zap.Error(err))
	}
	return nil
}

func (s *timeRulesService) GetRules(ctx context.Context) (models.TimeRulesConfig, error) {
	return s.rules.Get(ctx)
}

func (s *timeRulesService) SaveRules(ctx context.Context, rules models.TimeRulesConfig) error {
	return s.rules.Save(ctx, rules)
}

func (s *timeRulesService) ToggleCategory(ctx context.Context, slotID uuid.UUID, category models.Reference, included bool) (models.TimeRulesConfig, error) {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}
	rules, err := s.rules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("toggle category: %w", err)
	}
	return ToggleCategoryForSlot(rules, slot, category, included), nil
}

func (s *timeRulesService) AvailabilityAt(ctx context.Context, at time.Time) (*Availability, error) {
	slots, err := s.slots.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	slot := ResolveActiveSlot(at, slots)
	return &Availability{
		Slot:       slot,
		Categories: AvailableCategories(slot, rules),
	}, nil
}
