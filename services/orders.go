package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// NotificationCopy is the canned customer-facing message a transition
// produces. A nil copy means the transition is silent.
type NotificationCopy struct {
	Type     string
	Title    string
	Message  string
	Priority models.NotificationPriority
}

// statusCopy is the fixed lookup table keyed on the new fulfillment
// status. Statuses without an entry (placed) notify nobody.
var statusCopy = map[models.OrderStatus]struct {
	title    string
	message  string // fmt template taking the order number
	priority models.NotificationPriority
}{
	models.OrderConfirmed:      {"Order Confirmed", "Your order %s has been confirmed.", models.PriorityNormal},
	models.OrderPreparing:      {"Order Being Prepared", "Your order %s is being prepared.", models.PriorityNormal},
	models.OrderOutForDelivery: {"Out For Delivery", "Your order %s is out for delivery.", models.PriorityNormal},
	models.OrderDelivered:      {"Order Delivered", "Your order %s has been delivered. Thank you for shopping with us!", models.PriorityHigh},
	models.OrderCancelled:      {"Order Cancelled", "Your order %s has been cancelled.", models.PriorityHigh},
	models.OrderRefunded:       {"Order Refunded", "Your order %s has been refunded.", models.PriorityHigh},
}

// ApplyStatusTransition moves order to newStatus. Any source state may
// reach any target: the engine trusts the operator, and the openness is
// deliberate. Tracking timestamps are first-write-wins per field, so
// re-entering a status never rewrites history. The returned copy is the
// customer notification the transition produces, nil when the status has
// no canned copy.
func ApplyStatusTransition(order *models.Order, newStatus models.OrderStatus, now time.Time) *NotificationCopy {
	order.Status = newStatus
	order.UpdatedAt = now

	stamp := func(field **time.Time) {
		if *field == nil {
			t := now
			*field = &t
		}
	}

	switch newStatus {
	case models.OrderConfirmed:
		stamp(&order.OrderTracking.ConfirmedAt)
	case models.OrderPreparing:
		stamp(&order.OrderTracking.PreparingAt)
	case models.OrderOutForDelivery:
		stamp(&order.OrderTracking.OutForDeliveryAt)
	case models.OrderDelivered:
		stamp(&order.OrderTracking.DeliveredAt)
		order.PaymentStatus = models.PaymentCompleted
		t := now
		order.DeliverySlot.ActualDeliveryTime = &t
	case models.OrderCancelled:
		order.IsCancellable = false
		order.IsRefundable = true
	}

	copyEntry, ok := statusCopy[newStatus]
	if !ok {
		return nil
	}
	return &NotificationCopy{
		Type:     models.NotificationTypeOrderStatus,
		Title:    copyEntry.title,
		Message:  fmt.Sprintf(copyEntry.message, order.OrderNumber),
		Priority: copyEntry.priority,
	}
}

// ApplyPaymentVerification records the operator's manual judgement on a
// claimed payment. Verified completes the payment; rejected fails it and
// keeps the reason when one was given. No guard prevents re-verification.
func ApplyPaymentVerification(order *models.Order, status models.VerificationStatus, reason string, now time.Time) *NotificationCopy {
	order.PaymentDetails.VerificationStatus = status
	t := now
	order.PaymentDetails.VerifiedAt = &t
	order.UpdatedAt = now

	if status == models.VerificationVerified {
		order.PaymentStatus = models.PaymentCompleted
		return &NotificationCopy{
			Type:     models.NotificationTypePaymentVerified,
			Title:    "Payment Verified",
			Message:  fmt.Sprintf("Payment for order %s has been verified.", order.OrderNumber),
			Priority: models.PriorityNormal,
		}
	}

	order.PaymentStatus = models.PaymentFailed
	msg := fmt.Sprintf("Payment for order %s could not be verified.", order.OrderNumber)
	if reason != "" {
		order.PaymentDetails.RejectionReason = reason
		msg = fmt.Sprintf("Payment for order %s could not be verified: %s", order.OrderNumber, reason)
	}
	return &NotificationCopy{
		Type:     models.NotificationTypePaymentRejected,
		Title:    "Payment Rejected",
		Message:  msg,
		Priority: models.PriorityHigh,
	}
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status        models.OrderStatus
	PaymentStatus models.PaymentStatus
	Method        models.PaymentMethod
	Page          int
	Limit         int
}

type OrderService interface {
	List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// UpdateStatus and VerifyPayment apply the transition optimistically
	// and return the committed order, or the untouched pre-transition
	// order together with the error when persistence fails.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *ServiceError)
	VerifyPayment(ctx context.Context, id uuid.UUID, status models.VerificationStatus, reason string, expectedUpdatedAt *time.Time) (*models.Order, *ServiceError)
	AssignDeliveryPartner(ctx context.Context, id, partnerID uuid.UUID) (*models.Order, *ServiceError)
}

type orderService struct {
	orders   repository.OrderRepo
	partners repository.DeliveryPartnerRepo
	notifier Notifier
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrderRepo, partners repository.DeliveryPartnerRepo, notifier Notifier, logger *zap.Logger) OrderService {
	return &orderService{orders: orders, partners: partners, notifier: notifier, logger: logger}
}

func (s *orderService) List(ctx context.Context, f OrderFilter) ([]models.Order, int64, error) {
	filter := map[string]interface{}{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PaymentStatus != "" {
		filter["payment_status"] = f.PaymentStatus
	}
	if f.Method != "" {
		filter["payment_method"] = f.Method
	}

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Page < 1 {
		f.Page = 1
	}
	skip := (f.Page - 1) * f.Limit

	orders, err := s.orders.Find(ctx, filter, f.Limit, skip)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, expectedUpdatedAt *time.Time) (*models.Order, *ServiceError) {
	if !status.Valid() {
		return nil, NewServiceError(http.StatusBadRequest, fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "order")
	}

	now := time.Now().UTC()
	var note *NotificationCopy
	committed, err := RunOptimistic(ctx, order,
		(*models.Order).Clone,
		func(o *models.Order) *models.Order {
			note = ApplyStatusTransition(o, status, now)
			return o
		},
		func(ctx context.Context, o *models.Order) error {
			return s.orders.Replace(ctx, o, expectedUpdatedAt)
		},
	)
	if err != nil {
		s.logger.Error("order status update failed, state rolled back",
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
			zap.Error(err))
		return committed, writeError(err)
	}

	s.notifier.Notify(ctx, committed, note)
	return committed, nil
}

func (s *orderService) VerifyPayment(ctx context.Context, id uuid.UUID, status models.VerificationStatus, reason string, expectedUpdatedAt *time.Time) (*models.Order, *ServiceError) {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return nil, NewServiceError(http.StatusBadRequest, fmt.Sprintf("verification status must be %q or %q", models.VerificationVerified, models.VerificationRejected))
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "order")
	}

	now := time.Now().UTC()
	var note *NotificationCopy
	committed, err := RunOptimistic(ctx, order,
		(*models.Order).Clone,
		func(o *models.Order) *models.Order {
			note = ApplyPaymentVerification(o, status, reason, now)
			return o
		},
		func(ctx context.Context, o *models.Order) error {
			return s.orders.Replace(ctx, o, expectedUpdatedAt)
		},
	)
	if err != nil {
		s.logger.Error("payment verification failed, state rolled back",
			zap.String("order_id", id.String()),
			zap.String("verification", string(status)),
			zap.Error(err))
		return committed, writeError(err)
	}

	s.notifier.Notify(ctx, committed, note)
	return committed, nil
}

func (s *orderService) AssignDeliveryPartner(ctx context.Context, id, partnerID uuid.UUID) (*models.Order, *ServiceError) {
	partner, err := s.partners.FindByID(ctx, partnerID)
	if err != nil {
		return nil, lookupError(err, "delivery partner")
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "order")
	}

	committed, err := RunOptimistic(ctx, order,
		(*models.Order).Clone,
		func(o *models.Order) *models.Order {
			ref := partner.Ref()
			o.DeliveryPartner = &ref
			o.UpdatedAt = time.Now().UTC()
			return o
		},
		func(ctx context.Context, o *models.Order) error {
			return s.orders.Replace(ctx, o, nil)
		},
	)
	if err != nil {
		return committed, writeError(err)
	}
	return committed, nil
}

func lookupError(err error, what string) *ServiceError {
	if errors.Is(err, repository.ErrNotFound) {
		return NewServiceError(http.StatusNotFound, what+" not found")
	}
	return NewServiceError(http.StatusInternalServerError, "failed to load "+what)
}

func writeError(err error) *ServiceError {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return NewServiceError(http.StatusConflict, "order was modified by another session")
	case errors.Is(err, repository.ErrNotFound):
		return NewServiceError(http.StatusNotFound, "order not found")
	default:
		return NewServiceError(http.StatusInternalServerError, "failed to persist order")
	}
}
