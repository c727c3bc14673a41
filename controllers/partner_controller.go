package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

type DeliveryPartnerController struct {
	service services.DeliveryPartnerService
}

func NewDeliveryPartnerController(service services.DeliveryPartnerService) *DeliveryPartnerController {
	return &DeliveryPartnerController{service: service}
}

type partnerRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Vehicle  string `json:"vehicle"`
	IsActive *bool  `json:"is_active"`
}

func (ctrl *DeliveryPartnerController) GetPartners(c *gin.Context) {
	partners, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		zap.L().Error("Service failed to list delivery partners", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery partners"})
		return
	}
	c.JSON(http.StatusOK, partners)
}

func (ctrl *DeliveryPartnerController) CreatePartner(c *gin.Context) {
	var req partnerRequest
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
	partner := &models.DeliveryPartner{
		Name:     req.Name,
		Phone:    req.Phone,
		Vehicle:  req.Vehicle,
		IsActive: active,
	}
	if err := ctrl.service.Create(c.Request.Context(), partner); err != nil {
		zap.L().Error("Service failed to create delivery partner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create delivery partner"})
		return
	}
	c.JSON(http.StatusCreated, partner)
}

func (ctrl *DeliveryPartnerController) UpdatePartner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery partner ID format"})
		return
	}

	var req partnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":    req.Name,
		"phone":   req.Phone,
		"vehicle": req.Vehicle,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := ctrl.service.Update(c.Request.Context(), id, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery partner not found"})
			return
		}
		zap.L().Error("Service failed to update delivery partner", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery partner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery partner updated successfully"})
}

func (ctrl *DeliveryPartnerController) DeletePartner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery partner ID format"})
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Delivery partner not found"})
			return
		}
		zap.L().Error("Service failed to delete delivery partner", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete delivery partner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery partner deleted successfully"})
}
