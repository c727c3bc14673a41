package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
	"github.com/sufal54/bolpurmart-admin-sub000/services"
)

// --- Mock order repository ---

type mockOrderRepo struct {
	orders     map[uuid.UUID]*models.Order
	replaceErr error
	replaced   *models.Order
}

func newMockOrderRepo(orders ...*models.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: make(map[uuid.UUID]*models.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o.Clone(), nil
}

func (m *mockOrderRepo) Find(_ context.Context, _ map[string]interface{}, _, _ int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrderRepo) Count(_ context.Context, _ map[string]interface{}) (int64, error) {
	return int64(len(m.orders)), nil
}

func (m *mockOrderRepo) Replace(_ context.Context, order *models.Order, _ *time.Time) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.orders[order.ID] = order.Clone()
	m.replaced = order
	return nil
}

type mockPartnerRepo struct {
	partners map[uuid.UUID]*models.DeliveryPartner
}

func (m *mockPartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.DeliveryPartner, error) {
	p, ok := m.partners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockPartnerRepo) FindAll(_ context.Context) ([]models.DeliveryPartner, error) { return nil, nil }
func (m *mockPartnerRepo) Create(_ context.Context, _ *models.DeliveryPartner) error { return nil }
func (m *mockPartnerRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}
func (m *mockPartnerRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type mockNotifier struct {
	notes []*services.NotificationCopy
}

func (m *mockNotifier) Notify(_ context.Context, _ *models.Order, note *services.NotificationCopy) {
	if note != nil {
		m.notes = append(m.notes, note)
	}
}

// --- Helpers ---

func placedOrder() *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "BM-2026-000123",
		CustomerID:    uuid.New(),
		Status:        models.OrderPlaced,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentUPIOnline,
		PaymentDetails: models.PaymentDetails{
			UPITransactionID:   "TXN123",
			VerificationStatus: models.VerificationPending,
		},
		IsCancellable: true,
		OrderTracking: models.OrderTracking{PlacedAt: time.Now().UTC().Add(-time.Hour)},
		CreatedAt:     time.Now().UTC().Add(-time.Hour),
		UpdatedAt:     time.Now().UTC().Add(-time.Hour),
	}
}

func newOrderService(repo *mockOrderRepo, partners *mockPartnerRepo, notifier *mockNotifier) services.OrderService {
	if partners == nil {
		partners = &mockPartnerRepo{partners: map[uuid.UUID]*models.DeliveryPartner{}}
	}
	return services.NewOrderService(repo, partners, notifier, zap.NewNop())
}

// --- Status transitions ---

func TestApplyStatusTransition_StampsAreFirstWriteWins(t *testing.T) {
	order := placedOrder()

	first := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	services.ApplyStatusTransition(order, models.OrderConfirmed, first)
	assert.NotNil(t, order.OrderTracking.ConfirmedAt)
	assert.Equal(t, first, *order.OrderTracking.ConfirmedAt)

	// Bouncing out and back in keeps the original stamp.
	later := first.Add(2 * time.Hour)
	services.ApplyStatusTransition(order, models.OrderPreparing, later)
	services.ApplyStatusTransition(order, models.OrderConfirmed, later.Add(time.Hour))
	assert.Equal(t, first, *order.OrderTracking.ConfirmedAt)
	assert.Equal(t, later, *order.OrderTracking.PreparingAt)
}

func TestApplyStatusTransition_DeliveredCompletesPayment(t *testing.T) {
	order := placedOrder()
	order.PaymentStatus = models.PaymentPending

	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	note := services.ApplyStatusTransition(order, models.OrderDelivered, now)

	assert.Equal(t, models.OrderDelivered, order.Status)
	assert.Equal(t, models.PaymentCompleted, order.PaymentStatus)
	assert.NotNil(t, order.OrderTracking.DeliveredAt)
	assert.NotNil(t, order.DeliverySlot.ActualDeliveryTime)
	assert.Equal(t, now, *order.DeliverySlot.ActualDeliveryTime)

	assert.NotNil(t, note)
	assert.Equal(t, models.PriorityHigh, note.Priority)
	assert.Contains(t, note.Message, order.OrderNumber)
}

func TestApplyStatusTransition_CancelledFlipsFlags(t *testing.T) {
	order := placedOrder()

	note := services.ApplyStatusTransition(order, models.OrderCancelled, time.Now().UTC())

	assert.False(t, order.IsCancellable)
	assert.True(t, order.IsRefundable)
	assert.NotNil(t, note)
	assert.Equal(t, models.PriorityHigh, note.Priority)
}

func TestApplyStatusTransition_PlacedIsSilent(t *testing.T) {
	order := placedOrder()
	note := services.ApplyStatusTransition(order, models.OrderPlaced, time.Now().UTC())
	assert.Nil(t, note)
}

// --- Payment verification ---

func TestApplyPaymentVerification_Verified(t *testing.T) {
	order := placedOrder()

	now := time.Now().UTC()
	note := services.ApplyPaymentVerification(order, models.VerificationVerified, "", now)

	assert.Equal(t, models.VerificationVerified, order.PaymentDetails.VerificationStatus)
	assert.Equal(t, models.PaymentCompleted, order.PaymentStatus)
	assert.NotNil(t, order.PaymentDetails.VerifiedAt)
	assert.NotNil(t, note)
	assert.Equal(t, models.PriorityNormal, note.Priority)
}

func TestApplyPaymentVerification_RejectedKeepsReason(t *testing.T) {
	order := placedOrder()

	note := services.ApplyPaymentVerification(order, models.VerificationRejected, "blurry screenshot", time.Now().UTC())

	assert.Equal(t, models.VerificationRejected, order.PaymentDetails.VerificationStatus)
	assert.Equal(t, models.PaymentFailed, order.PaymentStatus)
	assert.Equal(t, "blurry screenshot", order.PaymentDetails.RejectionReason)
	assert.NotNil(t, note)
	assert.Contains(t, note.Message, "blurry screenshot")
	assert.Equal(t, models.PriorityHigh, note.Priority)
}

// --- Service level ---

func TestUpdateStatus_HappyPathNotifies(t *testing.T) {
	order := placedOrder()
	repo := newMockOrderRepo(order)
	notifier := &mockNotifier{}
	svc := newOrderService(repo, nil, notifier)

	committed, svcErr := svc.UpdateStatus(context.Background(), order.ID, models.OrderConfirmed, nil)
	assert.Nil(t, svcErr)
	assert.Equal(t, models.OrderConfirmed, committed.Status)
	assert.Len(t, notifier.notes, 1)
	assert.Equal(t, "Order Confirmed", notifier.notes[0].Title)

	// The stored document carries the transition too.
	stored, err := repo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, stored.Status)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	order := placedOrder()
	svc := newOrderService(newMockOrderRepo(order), nil, &mockNotifier{})

	_, svcErr := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatus("shipped"), nil)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestUpdateStatus_PersistFailureRollsBack(t *testing.T) {
	order := placedOrder()
	repo := newMockOrderRepo(order)
	repo.replaceErr = assert.AnError
	notifier := &mockNotifier{}
	svc := newOrderService(repo, nil, notifier)

	returned, svcErr := svc.UpdateStatus(context.Background(), order.ID, models.OrderConfirmed, nil)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)

	// Caller gets the pre-transition snapshot back, and nobody is notified.
	assert.Equal(t, models.OrderPlaced, returned.Status)
	assert.Nil(t, returned.OrderTracking.ConfirmedAt)
	assert.Empty(t, notifier.notes)
}

func TestUpdateStatus_ConflictMapsTo409(t *testing.T) {
	order := placedOrder()
	repo := newMockOrderRepo(order)
	repo.replaceErr = repository.ErrConflict
	svc := newOrderService(repo, nil, &mockNotifier{})

	returned, svcErr := svc.UpdateStatus(context.Background(), order.ID, models.OrderConfirmed, &order.UpdatedAt)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, models.OrderPlaced, returned.Status)
}

func TestVerifyPayment_InvalidStatus(t *testing.T) {
	order := placedOrder()
	svc := newOrderService(newMockOrderRepo(order), nil, &mockNotifier{})

	_, svcErr := svc.VerifyPayment(context.Background(), order.ID, models.VerificationPending, "", nil)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestVerifyPayment_IndependentOfFulfillment(t *testing.T) {
	order := placedOrder()
	repo := newMockOrderRepo(order)
	svc := newOrderService(repo, nil, &mockNotifier{})

	committed, svcErr := svc.VerifyPayment(context.Background(), order.ID, models.VerificationVerified, "", nil)
	assert.Nil(t, svcErr)
	assert.Equal(t, models.PaymentCompleted, committed.PaymentStatus)
	// Fulfillment state is untouched by payment verification.
	assert.Equal(t, models.OrderPlaced, committed.Status)
}

func TestAssignDeliveryPartner_SnapshotsPartner(t *testing.T) {
	order := placedOrder()
	partner := &models.DeliveryPartner{ID: uuid.New(), Name: "Ravi", IsActive: true}
	repo := newMockOrderRepo(order)
	partners := &mockPartnerRepo{partners: map[uuid.UUID]*models.DeliveryPartner{partner.ID: partner}}
	svc := newOrderService(repo, partners, &mockNotifier{})

	committed, svcErr := svc.AssignDeliveryPartner(context.Background(), order.ID, partner.ID)
	assert.Nil(t, svcErr)
	assert.NotNil(t, committed.DeliveryPartner)
	assert.Equal(t, partner.ID, committed.DeliveryPartner.ID)
	assert.Equal(t, "Ravi", committed.DeliveryPartner.Name)
}

func TestAssignDeliveryPartner_UnknownPartner(t *testing.T) {
	order := placedOrder()
	svc := newOrderService(newMockOrderRepo(order), nil, &mockNotifier{})

	_, svcErr := svc.AssignDeliveryPartner(context.Background(), order.ID, uuid.New())
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestUpdateStatus_FullLifecycle(t *testing.T) {
	order := placedOrder()
	repo := newMockOrderRepo(order)
	notifier := &mockNotifier{}
	svc := newOrderService(repo, nil, notifier)

	for _, status := range []models.OrderStatus{
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	} {
		_, svcErr := svc.UpdateStatus(context.Background(), order.ID, status, nil)
		assert.Nil(t, svcErr)
	}

	final, err := repo.FindByID(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, final.Status)
	assert.Equal(t, models.PaymentCompleted, final.PaymentStatus)
	assert.NotNil(t, final.OrderTracking.ConfirmedAt)
	assert.NotNil(t, final.OrderTracking.PreparingAt)
	assert.NotNil(t, final.OrderTracking.OutForDeliveryAt)
	assert.NotNil(t, final.OrderTracking.DeliveredAt)
	assert.Len(t, notifier.notes, 4)
}
