package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

// --- Mock repositories ---

type mockSlotRepo struct {
	slots     map[uuid.UUID]*models.TimeSlot
	deleteErr error
}

func newMockSlotRepo(slots ...models.TimeSlot) *mockSlotRepo {
	m := &mockSlotRepo{slots: make(map[uuid.UUID]*models.TimeSlot)}
	for i := range slots {
		s := slots[i]
		m.slots[s.ID] = &s
	}
	return m
}

func (m *mockSlotRepo) FindByID(_ context.Context, id uuid.UUID) (*models.TimeSlot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (m *mockSlotRepo) FindAll(_ context.Context) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	for _, s := range m.slots {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSlotRepo) Create(_ context.Context, slot *models.TimeSlot) error {
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockSlotRepo) Update(_ context.Context, id uuid.UUID, _ map[string]interface{}) error {
	if _, ok := m.slots[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.slots[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.slots, id)
	return nil
}

type mockRulesRepo struct {
	rules   models.TimeRulesConfig
	saveErr error
	saves   int
}

func (m *mockRulesRepo) Get(_ context.Context) (models.TimeRulesConfig, error) {
	if m.rules == nil {
		return models.TimeRulesConfig{}, nil
	}
	return m.rules, nil
}

func (m *mockRulesRepo) Save(_ context.Context, rules models.TimeRulesConfig) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rules = rules
	m.saves++
	return nil
}

// --- Helpers ---

func slot(label, start, end string, order int, active bool) models.TimeSlot {
	return models.TimeSlot{
		ID:        uuid.New(),
		Name:      label,
		Label:     label,
		StartTime: start,
		EndTime:   end,
		IsActive:  active,
		Order:     order,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

// --- Slot resolution ---

func TestResolveActiveSlot_WrapsPastMidnight(t *testing.T) {
	night := slot("night", "22:00", "06:00", 3, true)
	slots := []models.TimeSlot{night}

	assert.NotNil(t, services.ResolveActiveSlot(at(23, 30), slots))
	assert.NotNil(t, services.ResolveActiveSlot(at(2, 0), slots))
	assert.Nil(t, services.ResolveActiveSlot(at(7, 0), slots))
	assert.Nil(t, services.ResolveActiveSlot(at(12, 0), slots))
}

func TestResolveActiveSlot_PrefersLowerOrderOnOverlap(t *testing.T) {
	morning := slot("morning", "06:00", "12:00", 1, true)
	brunch := slot("brunch", "10:00", "14:00", 2, true)

	got := services.ResolveActiveSlot(at(11, 0), []models.TimeSlot{brunch, morning})
	assert.NotNil(t, got)
	assert.Equal(t, morning.ID, got.ID)
}

func TestResolveActiveSlot_SkipsInactiveAndMalformed(t *testing.T) {
	inactive := slot("morning", "06:00", "12:00", 1, false)
	broken := slot("broken", "6am", "noon", 2, true)
	evening := slot("evening", "06:00", "23:00", 3, true)

	got := services.ResolveActiveSlot(at(11, 0), []models.TimeSlot{inactive, broken, evening})
	assert.NotNil(t, got)
	assert.Equal(t, evening.ID, got.ID)
}

func TestResolveActiveSlot_NoMatch(t *testing.T) {
	morning := slot("morning", "06:00", "12:00", 1, true)
	assert.Nil(t, services.ResolveActiveSlot(at(13, 0), []models.TimeSlot{morning}))
}

// --- Category availability ---

func TestAvailableCategories_NilSlotAndMissingRule(t *testing.T) {
	assert.Nil(t, services.AvailableCategories(nil, models.TimeRulesConfig{}))

	s := slot("morning", "06:00", "12:00", 1, true)
	got := services.AvailableCategories(&s, models.TimeRulesConfig{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAvailableCategories_ReturnsRuleCategories(t *testing.T) {
	s := slot("morning", "06:00", "12:00", 1, true)
	dairy := models.Reference{ID: uuid.New(), Name: "Dairy"}
	rules := models.TimeRulesConfig{
		s.ID.String(): {
			TimeSlotName:      s.Label,
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			AllowedCategories: []models.Reference{dairy},
			IsActive:          true,
		},
	}

	got := services.AvailableCategories(&s, rules)
	assert.Equal(t, []models.Reference{dairy}, got)
}

// --- Toggling ---

func TestToggleCategoryForSlot_AddIsIdempotent(t *testing.T) {
	s := slot("morning", "06:00", "12:00", 1, true)
	dairy := models.Reference{ID: uuid.New(), Name: "Dairy"}

	rules := services.ToggleCategoryForSlot(models.TimeRulesConfig{}, &s, dairy, true)
	rules = services.ToggleCategoryForSlot(rules, &s, dairy, true)

	rule := rules[s.ID.String()]
	assert.Len(t, rule.AllowedCategories, 1)
	assert.Equal(t, dairy, rule.AllowedCategories[0])
	assert.Equal(t, s.Label, rule.TimeSlotName)
	assert.Equal(t, s.StartTime, rule.StartTime)
}

func TestToggleCategoryForSlot_RemoveIsIdempotent(t *testing.T) {
	s := slot("morning", "06:00", "12:00", 1, true)
	dairy := models.Reference{ID: uuid.New(), Name: "Dairy"}
	snacks := models.Reference{ID: uuid.New(), Name: "Snacks"}

	rules := services.ToggleCategoryForSlot(models.TimeRulesConfig{}, &s, dairy, true)
	rules = services.ToggleCategoryForSlot(rules, &s, snacks, true)
	rules = services.ToggleCategoryForSlot(rules, &s, dairy, false)
	rules = services.ToggleCategoryForSlot(rules, &s, dairy, false)

	rule := rules[s.ID.String()]
	assert.Len(t, rule.AllowedCategories, 1)
	assert.Equal(t, snacks, rule.AllowedCategories[0])
}

func TestToggleCategoryForSlot_DoesNotMutateInput(t *testing.T) {
	s := slot("morning", "06:00", "12:00", 1, true)
	dairy := models.Reference{ID: uuid.New(), Name: "Dairy"}
	original := models.TimeRulesConfig{
		s.ID.String(): {
			TimeSlotName:      s.Label,
			AllowedCategories: []models.Reference{dairy},
		},
	}

	_ = services.ToggleCategoryForSlot(original, &s, dairy, false)
	assert.Len(t, original[s.ID.String()].AllowedCategories, 1)
}

// --- Service level ---

func TestAvailabilityAt_ToleratesOrphanedRuleKeys(t *testing.T) {
	morning := slot("morning", "06:00", "12:00", 1, true)
	dairy := models.Reference{ID: uuid.New(), Name: "Dairy"}

	slotRepo := newMockSlotRepo(morning)
	rulesRepo := &mockRulesRepo{rules: models.TimeRulesConfig{
		morning.ID.String():     {TimeSlotName: "morning", AllowedCategories: []models.Reference{dairy}},
		uuid.New().String():     {TimeSlotName: "deleted slot"},
		"not-even-a-valid-uuid": {TimeSlotName: "garbage"},
	}}
	svc := services.NewTimeRulesService(slotRepo, rulesRepo, zap.NewNop())

	avail, err := svc.AvailabilityAt(context.Background(), at(9, 0))
	assert.NoError(t, err)
	assert.NotNil(t, avail.Slot)
	assert.Equal(t, morning.ID, avail.Slot.ID)
	assert.Equal(t, []models.Reference{dairy}, avail.Categories)
}

func TestDeleteSlot_CleansRuleEntry(t *testing.T) {
	morning := slot("morning", "06:00", "12:00", 1, true)
	slotRepo := newMockSlotRepo(morning)
	rulesRepo := &mockRulesRepo{rules: models.TimeRulesConfig{
		morning.ID.String(): {TimeSlotName: "morning"},
	}}
	svc := services.NewTimeRulesService(slotRepo, rulesRepo, zap.NewNop())

	err := svc.DeleteSlot(context.Background(), morning.ID)
	assert.NoError(t, err)
	assert.NotContains(t, rulesRepo.rules, morning.ID.String())
}

func TestDeleteSlot_CleanupFailureLeavesOrphan(t *testing.T) {
	morning := slot("morning", "06:00", "12:00", 1, true)
	slotRepo := newMockSlotRepo(morning)
	rulesRepo := &mockRulesRepo{
		rules:   models.TimeRulesConfig{morning.ID.String(): {TimeSlotName: "morning"}},
		saveErr: assert.AnError,
	}
	svc := services.NewTimeRulesService(slotRepo, rulesRepo, zap.NewNop())

	// The slot delete itself succeeded, so the call must not error.
	err := svc.DeleteSlot(context.Background(), morning.ID)
	assert.NoError(t, err)
	assert.Contains(t, rulesRepo.rules, morning.ID.String())
}

func TestToggleCategory_UnknownSlot(t *testing.T) {
	svc := services.NewTimeRulesService(newMockSlotRepo(), &mockRulesRepo{}, zap.NewNop())

	_, err := svc.ToggleCategory(context.Background(), uuid.New(), models.Reference{ID: uuid.New()}, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveRules_RoundTrip(t *testing.T) {
	morning := slot("morning", "06:00", "12:00", 1, true)
	rulesRepo := &mockRulesRepo{}
	svc := services.NewTimeRulesService(newMockSlotRepo(morning), rulesRepo, zap.NewNop())

	dairy := models.Reference{ID: uuid.New(), Name: "Dairy"}
	toggled, err := svc.ToggleCategory(context.Background(), morning.ID, dairy, true)
	assert.NoError(t, err)

	// Toggle returns the updated config; nothing is stored until saved.
	assert.Equal(t, 0, rulesRepo.saves)

	assert.NoError(t, svc.SaveRules(context.Background(), toggled))
	assert.Equal(t, 1, rulesRepo.saves)

	got, err := svc.GetRules(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, toggled, got)
}
