package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// NotificationController exposes the customer notification feed and the
// relational delivery log so operators can audit what was sent.
type NotificationController struct {
	notifications repository.NotificationRepo
	logs          repository.NotificationLogRepo
}

func NewNotificationController(notifications repository.NotificationRepo, logs repository.NotificationLogRepo) *NotificationController {
	return &NotificationController{notifications: notifications, logs: logs}
}

func (ctrl *NotificationController) GetUserNotifications(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, err := ctrl.notifications.FindByUser(c.Request.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		zap.L().Error("Failed to fetch user notifications", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "page": page, "limit": limit})
}

func (ctrl *NotificationController) GetDeliveryLog(c *gin.Context) {
	if ctrl.logs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notification delivery log is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	logs, err := ctrl.logs.Recent(c.Request.Context(), limit)
	if err != nil {
		zap.L().Error("Failed to fetch notification delivery log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery log"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
