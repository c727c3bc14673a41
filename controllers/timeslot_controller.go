package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

type TimeSlotController struct {
	service services.TimeRulesService
}

func NewTimeSlotController(service services.TimeRulesService) *TimeSlotController {
	return &TimeSlotController{service: service}
}

type timeSlotRequest struct {
	Name      string `json:"name" validate:"required"`
	Label     string `json:"label" validate:"required"`
	Icon      string `json:"icon"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	IsActive  *bool  `json:"is_active"`
	Order     int    `json:"order"`
}

func (ctrl *TimeSlotController) GetTimeSlots(c *gin.Context) {
	slots, err := ctrl.service.ListSlots(c.Request.Context())
	if err != nil {
		zap.L().Error("Service failed to list time slots", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time slots"})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (ctrl *TimeSlotController) CreateTimeSlot(c *gin.Context) {
	var req timeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	slot := &models.TimeSlot{
		Name:      req.Name,
		Label:     req.Label,
		Icon:      req.Icon,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  active,
		Order:     req.Order,
	}
	if err := ctrl.service.CreateSlot(c.Request.Context(), slot); err != nil {
		zap.L().Error("Service failed to create time slot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create time slot"})
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (ctrl *TimeSlotController) UpdateTimeSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time slot ID format"})
		return
	}

	var req timeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"label":      req.Label,
		"icon":       req.Icon,
		"start_time": req.StartTime,
		"end_time":   req.EndTime,
		"order":      req.Order,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := ctrl.service.UpdateSlot(c.Request.Context(), id, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
			return
		}
		zap.L().Error("Service failed to update time slot", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update time slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot updated successfully"})
}

func (ctrl *TimeSlotController) DeleteTimeSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time slot ID format"})
		return
	}

	if err := ctrl.service.DeleteSlot(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
			return
		}
		zap.L().Error("Service failed to delete time slot", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete time slot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time slot deleted successfully"})
}

func (ctrl *TimeSlotController) GetTimeRules(c *gin.Context) {
	rules, err := ctrl.service.GetRules(c.Request.Context())
	if err != nil {
		zap.L().Error("Service failed to load time rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time rules"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

// SaveTimeRules replaces the whole rules document with the submitted map.
// Last writer wins; a concurrent save by another operator is overwritten.
func (ctrl *TimeSlotController) SaveTimeRules(c *gin.Context) {
	var rules models.TimeRulesConfig
	if err := c.ShouldBindJSON(&rules); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := ctrl.service.SaveRules(c.Request.Context(), rules); err != nil {
		zap.L().Error("Service failed to save time rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save time rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time rules saved successfully"})
}

type toggleCategoryRequest struct {
	Category models.Reference `json:"category" validate:"required"`
	Included bool             `json:"included"`
}

// ToggleCategory returns the rules map with one category toggled for one
// slot. Nothing is persisted until the operator saves.
func (ctrl *TimeSlotController) ToggleCategory(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time slot ID format"})
		return
	}

	var req toggleCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	rules, err := ctrl.service.ToggleCategory(c.Request.Context(), slotID, req.Category, req.Included)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
			return
		}
		zap.L().Error("Service failed to toggle category", zap.String("slot_id", slotID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle category"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

// GetAvailability answers which categories are sellable at a given time
// (defaulting to now).
func (ctrl *TimeSlotController) GetAvailability(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' timestamp, expected RFC3339"})
			return
		}
		at = parsed
	}

	availability, err := ctrl.service.AvailabilityAt(c.Request.Context(), at)
	if err != nil {
		zap.L().Error("Service failed to resolve availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve availability"})
		return
	}
	c.JSON(http.StatusOK, availability)
}
