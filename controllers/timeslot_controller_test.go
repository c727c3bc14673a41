package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sufal54/bolpurmart-admin-sub000/controllers"
	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockTimeRulesService struct {
	listSlotsFn    func(ctx context.Context) ([]models.TimeSlot, error)
	createSlotFn   func(ctx context.Context, slot *models.TimeSlot) error
	updateSlotFn   func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	deleteSlotFn   func(ctx context.Context, id uuid.UUID) error
	getRulesFn     func(ctx context.Context) (models.TimeRulesConfig, error)
	saveRulesFn    func(ctx context.Context, rules models.TimeRulesConfig) error
	toggleFn       func(ctx context.Context, slotID uuid.UUID, category models.Reference, included bool) (models.TimeRulesConfig, error)
	availabilityFn func(ctx context.Context, at time.Time) (*services.Availability, error)
}

func (m *mockTimeRulesService) ListSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return m.listSlotsFn(ctx)
}

func (m *mockTimeRulesService) CreateSlot(ctx context.Context, slot *models.TimeSlot) error {
	return m.createSlotFn(ctx, slot)
}

func (m *mockTimeRulesService) UpdateSlot(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return m.updateSlotFn(ctx, id, updates)
}

func (m *mockTimeRulesService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	return m.deleteSlotFn(ctx, id)
}

func (m *mockTimeRulesService) GetRules(ctx context.Context) (models.TimeRulesConfig, error) {
	return m.getRulesFn(ctx)
}

func (m *mockTimeRulesService) SaveRules(ctx context.Context, rules models.TimeRulesConfig) error {
	return m.saveRulesFn(ctx, rules)
}

func (m *mockTimeRulesService) ToggleCategory(ctx context.Context, slotID uuid.UUID, category models.Reference, included bool) (models.TimeRulesConfig, error) {
	return m.toggleFn(ctx, slotID, category, included)
}

func (m *mockTimeRulesService) AvailabilityAt(ctx context.Context, at time.Time) (*services.Availability, error) {
	return m.availabilityFn(ctx, at)
}

// setupTimeRulesRouter mounts the time-slot and time-rules groups with the
// same paths the admin router registers.
func setupTimeRulesRouter(svc services.TimeRulesService) *gin.Engine {
	ctrl := controllers.NewTimeSlotController(svc)
	r := gin.New()

	slots := r.Group("/time-slots")
	{
		slots.GET("/", ctrl.GetTimeSlots)
		slots.POST("/", ctrl.CreateTimeSlot)
		slots.PUT("/:id", ctrl.UpdateTimeSlot)
		slots.DELETE("/:id", ctrl.DeleteTimeSlot)
	}

	rules := r.Group("/time-rules")
	{
		rules.GET("/", ctrl.GetTimeRules)
		rules.PUT("/", ctrl.SaveTimeRules)
		rules.POST("/:id/toggle", ctrl.ToggleCategory)
		rules.GET("/availability", ctrl.GetAvailability)
	}

	return r
}

func TestToggleCategory_PassesSlotIDFromPath(t *testing.T) {
	slotID := uuid.New()
	category := models.Reference{ID: uuid.New(), Name: "Vegetables"}

	var gotSlotID uuid.UUID
	var gotCategory models.Reference
	var gotIncluded bool
	svc := &mockTimeRulesService{
		toggleFn: func(ctx context.Context, id uuid.UUID, cat models.Reference, included bool) (models.TimeRulesConfig, error) {
			gotSlotID = id
			gotCategory = cat
			gotIncluded = included
			return models.TimeRulesConfig{
				slotID.String(): {
					TimeSlotName:      "morning",
					AllowedCategories: []models.Reference{cat},
					IsActive:          true,
				},
			}, nil
		},
	}
	r := setupTimeRulesRouter(svc)

	body, _ := json.Marshal(gin.H{"category": category, "included": true})
	req, _ := http.NewRequest(http.MethodPost, "/time-rules/"+slotID.String()+"/toggle", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, slotID, gotSlotID)
	assert.Equal(t, category, gotCategory)
	assert.True(t, gotIncluded)

	var resp models.TimeRulesConfig
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, slotID.String())
	assert.Equal(t, []models.Reference{category}, resp[slotID.String()].AllowedCategories)
}

func TestToggleCategory_InvalidSlotID(t *testing.T) {
	called := false
	svc := &mockTimeRulesService{
		toggleFn: func(ctx context.Context, id uuid.UUID, cat models.Reference, included bool) (models.TimeRulesConfig, error) {
			called = true
			return nil, nil
		},
	}
	r := setupTimeRulesRouter(svc)

	body, _ := json.Marshal(gin.H{"category": models.Reference{ID: uuid.New(), Name: "Snacks"}})
	req, _ := http.NewRequest(http.MethodPost, "/time-rules/not-a-uuid/toggle", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestToggleCategory_UnknownSlot(t *testing.T) {
	svc := &mockTimeRulesService{
		toggleFn: func(ctx context.Context, id uuid.UUID, cat models.Reference, included bool) (models.TimeRulesConfig, error) {
			return nil, repository.ErrNotFound
		},
	}
	r := setupTimeRulesRouter(svc)

	body, _ := json.Marshal(gin.H{"category": models.Reference{ID: uuid.New(), Name: "Dairy"}})
	req, _ := http.NewRequest(http.MethodPost, "/time-rules/"+uuid.NewString()+"/toggle", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTimeRules_ReturnsStoredConfig(t *testing.T) {
	slotID := uuid.New()
	svc := &mockTimeRulesService{
		getRulesFn: func(ctx context.Context) (models.TimeRulesConfig, error) {
			return models.TimeRulesConfig{
				slotID.String(): {
					TimeSlotName: "evening",
					StartTime:    "17:00",
					EndTime:      "21:00",
					IsActive:     true,
				},
			}, nil
		},
	}
	r := setupTimeRulesRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/time-rules/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.TimeRulesConfig
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "evening", resp[slotID.String()].TimeSlotName)
}

func TestSaveTimeRules_PassesBodyToService(t *testing.T) {
	slotID := uuid.New()
	var saved models.TimeRulesConfig
	svc := &mockTimeRulesService{
		saveRulesFn: func(ctx context.Context, rules models.TimeRulesConfig) error {
			saved = rules
			return nil
		},
	}
	r := setupTimeRulesRouter(svc)

	payload := models.TimeRulesConfig{
		slotID.String(): {
			TimeSlotName: "morning",
			StartTime:    "06:00",
			EndTime:      "11:00",
			IsActive:     true,
		},
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPut, "/time-rules/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, saved)
}

func TestGetAvailability_ParsesAtQuery(t *testing.T) {
	at := time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC)
	category := models.Reference{ID: uuid.New(), Name: "Late Night Snacks"}

	var gotAt time.Time
	svc := &mockTimeRulesService{
		availabilityFn: func(ctx context.Context, t time.Time) (*services.Availability, error) {
			gotAt = t
			return &services.Availability{
				Slot:       &models.TimeSlot{ID: uuid.New(), Name: "night", StartTime: "22:00", EndTime: "02:00", IsActive: true},
				Categories: []models.Reference{category},
			}, nil
		},
	}
	r := setupTimeRulesRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/time-rules/availability?at="+at.Format(time.RFC3339), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, at.Equal(gotAt))

	var resp services.Availability
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Slot)
	assert.Equal(t, "night", resp.Slot.Name)
	assert.Equal(t, []models.Reference{category}, resp.Categories)
}

func TestGetAvailability_RejectsMalformedTimestamp(t *testing.T) {
	svc := &mockTimeRulesService{
		availabilityFn: func(ctx context.Context, t time.Time) (*services.Availability, error) {
			return &services.Availability{}, nil
		},
	}
	r := setupTimeRulesRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/time-rules/availability?at=yesterday", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
