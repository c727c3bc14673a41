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

type UPIMethodController struct {
	service services.UPIMethodService
}

func NewUPIMethodController(service services.UPIMethodService) *UPIMethodController {
	return &UPIMethodController{service: service}
}

type upiMethodRequest struct {
	PayeeName string `json:"payee_name" validate:"required"`
	VPA       string `json:"vpa" validate:"required"`
	QRCodeURL string `json:"qr_code_url"`
	IsActive  *bool  `json:"is_active"`
}

func (ctrl *UPIMethodController) GetUPIMethods(c *gin.Context) {
	methods, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		zap.L().Error("Service failed to list UPI methods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch UPI methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (ctrl *UPIMethodController) CreateUPIMethod(c *gin.Context) {
	var req upiMethodRequest
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
	method := &models.UPIMethod{
		PayeeName: req.PayeeName,
		VPA:       req.VPA,
		QRCodeURL: req.QRCodeURL,
		IsActive:  active,
	}
	if err := ctrl.service.Create(c.Request.Context(), method); err != nil {
		zap.L().Error("Service failed to create UPI method", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create UPI method"})
		return
	}
	c.JSON(http.StatusCreated, method)
}

func (ctrl *UPIMethodController) UpdateUPIMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UPI method ID format"})
		return
	}

	var req upiMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"payee_name":  req.PayeeName,
		"vpa":         req.VPA,
		"qr_code_url": req.QRCodeURL,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := ctrl.service.Update(c.Request.Context(), id, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "UPI method not found"})
			return
		}
		zap.L().Error("Service failed to update UPI method", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update UPI method"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "UPI method updated successfully"})
}

func (ctrl *UPIMethodController) DeleteUPIMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UPI method ID format"})
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "UPI method not found"})
			return
		}
		zap.L().Error("Service failed to delete UPI method", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete UPI method"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "UPI method deleted successfully"})
}
