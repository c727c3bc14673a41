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
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

type mockOrderService struct {
	listFn          func(ctx context.Context, f services.OrderFilter) ([]models.Order, int64, error)
	getFn           func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	updateStatusFn  func(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError)
	verifyPaymentFn func(ctx context.Context, id uuid.UUID, status models.VerificationStatus, reason string, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError)
	assignPartnerFn func(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*models.Order, *services.ServiceError)
}

func (m *mockOrderService) List(ctx context.Context, f services.OrderFilter) ([]models.Order, int64, error) {
	return m.listFn(ctx, f)
}

func (m *mockOrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return m.getFn(ctx, id)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
	return m.updateStatusFn(ctx, id, status, expectedUpdatedAt)
}

func (m *mockOrderService) VerifyPayment(ctx context.Context, id uuid.UUID, status models.VerificationStatus, reason string, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
	return m.verifyPaymentFn(ctx, id, status, reason, expectedUpdatedAt)
}

func (m *mockOrderService) AssignDeliveryPartner(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*models.Order, *services.ServiceError) {
	return m.assignPartnerFn(ctx, id, partnerID)
}

func setupOrderRouter(svc services.OrderService) *gin.Engine {
	ctrl := controllers.NewOrderController(svc)
	r := gin.New()

	orders := r.Group("/orders")
	{
		orders.GET("/", ctrl.GetOrders)
		orders.GET("/:id", ctrl.GetOrderByID)
		orders.PATCH("/:id/status", ctrl.UpdateOrderStatus)
		orders.PATCH("/:id/payment", ctrl.VerifyPayment)
		orders.PATCH("/:id/partner", ctrl.AssignDeliveryPartner)
	}

	return r
}

func sampleOrder(id uuid.UUID, status models.OrderStatus) *models.Order {
	return &models.Order{
		ID:            id,
		OrderNumber:   "BM-2026-000123",
		CustomerName:  "Anirban Das",
		Status:        status,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentCashOnDelivery,
		Total:         450,
		UpdatedAt:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestUpdateOrderStatus_Success(t *testing.T) {
	orderID := uuid.New()

	var gotStatus models.OrderStatus
	var gotGuard *time.Time
	svc := &mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
			gotStatus = status
			gotGuard = expectedUpdatedAt
			return sampleOrder(id, status), nil
		},
	}
	r := setupOrderRouter(svc)

	lastSeen := time.Date(2026, 2, 1, 9, 55, 0, 0, time.UTC)
	body, _ := json.Marshal(gin.H{"status": "confirmed", "last_seen_updated_at": lastSeen.Format(time.RFC3339)})
	req, _ := http.NewRequest(http.MethodPatch, "/orders/"+orderID.String()+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderConfirmed, gotStatus)
	if assert.NotNil(t, gotGuard) {
		assert.True(t, lastSeen.Equal(*gotGuard))
	}

	var resp models.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderConfirmed, resp.Status)
	assert.Equal(t, "BM-2026-000123", resp.OrderNumber)
}

func TestUpdateOrderStatus_ConflictReturnsSnapshot(t *testing.T) {
	orderID := uuid.New()
	svc := &mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
			return sampleOrder(id, models.OrderPreparing), &services.ServiceError{
				StatusCode: http.StatusConflict,
				Message:    "Order was modified by another session",
			}
		},
	}
	r := setupOrderRouter(svc)

	body, _ := json.Marshal(gin.H{"status": "confirmed"})
	req, _ := http.NewRequest(http.MethodPatch, "/orders/"+orderID.String()+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error string       `json:"error"`
		Order models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Order was modified by another session", resp.Error)
	assert.Equal(t, models.OrderPreparing, resp.Order.Status)
}

func TestUpdateOrderStatus_InvalidOrderID(t *testing.T) {
	called := false
	svc := &mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
			called = true
			return nil, nil
		},
	}
	r := setupOrderRouter(svc)

	body, _ := json.Marshal(gin.H{"status": "confirmed"})
	req, _ := http.NewRequest(http.MethodPatch, "/orders/not-a-uuid/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestUpdateOrderStatus_MissingStatus(t *testing.T) {
	called := false
	svc := &mockOrderService{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
			called = true
			return nil, nil
		},
	}
	r := setupOrderRouter(svc)

	req, _ := http.NewRequest(http.MethodPatch, "/orders/"+uuid.NewString()+"/status", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestVerifyPayment_Rejected(t *testing.T) {
	orderID := uuid.New()

	var gotStatus models.VerificationStatus
	var gotReason string
	svc := &mockOrderService{
		verifyPaymentFn: func(ctx context.Context, id uuid.UUID, status models.VerificationStatus, reason string, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
			gotStatus = status
			gotReason = reason
			order := sampleOrder(id, models.OrderConfirmed)
			order.PaymentStatus = models.PaymentFailed
			return order, nil
		},
	}
	r := setupOrderRouter(svc)

	body, _ := json.Marshal(gin.H{"status": "rejected", "reason": "blurry screenshot"})
	req, _ := http.NewRequest(http.MethodPatch, "/orders/"+orderID.String()+"/payment", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.VerificationRejected, gotStatus)
	assert.Equal(t, "blurry screenshot", gotReason)
}

func TestVerifyPayment_InvalidStatusValue(t *testing.T) {
	called := false
	svc := &mockOrderService{
		verifyPaymentFn: func(ctx context.Context, id uuid.UUID, status models.VerificationStatus, reason string, expectedUpdatedAt *time.Time) (*models.Order, *services.ServiceError) {
			called = true
			return nil, nil
		},
	}
	r := setupOrderRouter(svc)

	body, _ := json.Marshal(gin.H{"status": "pending"})
	req, _ := http.NewRequest(http.MethodPatch, "/orders/"+uuid.NewString()+"/payment", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestAssignDeliveryPartner_UnknownPartner(t *testing.T) {
	svc := &mockOrderService{
		assignPartnerFn: func(ctx context.Context, id uuid.UUID, partnerID uuid.UUID) (*models.Order, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Delivery partner not found"}
		},
	}
	r := setupOrderRouter(svc)

	body, _ := json.Marshal(gin.H{"partner_id": uuid.NewString()})
	req, _ := http.NewRequest(http.MethodPatch, "/orders/"+uuid.NewString()+"/partner", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Delivery partner not found", resp["error"])
}

func TestGetOrders_AppliesFilters(t *testing.T) {
	var gotFilter services.OrderFilter
	svc := &mockOrderService{
		listFn: func(ctx context.Context, f services.OrderFilter) ([]models.Order, int64, error) {
			gotFilter = f
			return []models.Order{*sampleOrder(uuid.New(), models.OrderPlaced)}, 1, nil
		},
	}
	r := setupOrderRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/orders/?status=placed&payment_method=upi_online&page=2&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderPlaced, gotFilter.Status)
	assert.Equal(t, models.PaymentUPIOnline, gotFilter.Method)
	assert.Equal(t, 2, gotFilter.Page)
	assert.Equal(t, 10, gotFilter.Limit)

	var resp struct {
		Orders []models.Order `json:"orders"`
		Total  int64          `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, int64(1), resp.Total)
}
