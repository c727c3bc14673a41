package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

type OrderController struct {
	service services.OrderService
}

func NewOrderController(service services.OrderService) *OrderController {
	return &OrderController{service: service}
}

func (ctrl *OrderController) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	f := services.OrderFilter{
		Status:        models.OrderStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
		Method:        models.PaymentMethod(c.Query("payment_method")),
		Page:          page,
		Limit:         limit,
	}

	orders, total, err := ctrl.service.List(c.Request.Context(), f)
	if err != nil {
		zap.L().Error("Service failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	order, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		zap.L().Error("Service failed to get order", zap.String("id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
	// LastSeenUpdatedAt, when supplied, makes the write conditional: a
	// stale session gets 409 instead of silently overwriting another
	// operator's transition.
	LastSeenUpdatedAt *time.Time `json:"last_seen_updated_at"`
}

func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	order, svcErr := ctrl.service.UpdateStatus(c.Request.Context(), id, req.Status, req.LastSeenUpdatedAt)
	if svcErr != nil {
		// order carries the rolled-back snapshot when the write failed.
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "order": order})
		return
	}
	c.JSON(http.StatusOK, order)
}

type paymentVerificationRequest struct {
	Status            models.VerificationStatus `json:"status" validate:"required,oneof=verified rejected"`
	Reason            string                    `json:"reason"`
	LastSeenUpdatedAt *time.Time                `json:"last_seen_updated_at"`
}

func (ctrl *OrderController) VerifyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req paymentVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	order, svcErr := ctrl.service.VerifyPayment(c.Request.Context(), id, req.Status, req.Reason, req.LastSeenUpdatedAt)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "order": order})
		return
	}
	c.JSON(http.StatusOK, order)
}

type assignPartnerRequest struct {
	PartnerID uuid.UUID `json:"partner_id" validate:"required"`
}

func (ctrl *OrderController) AssignDeliveryPartner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req assignPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, svcErr := ctrl.service.AssignDeliveryPartner(c.Request.Context(), id, req.PartnerID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}
