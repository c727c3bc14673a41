package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/models"
	awspkg "github.com/sufal54/bolpurmart-admin-sub000/pkg/aws"
	"github.com/sufal54/bolpurmart-admin-sub000/repository"
)

// Notifier fans a transition's customer notification out to the document
// store, the SQL delivery log and the event topic. Every leg is
// best-effort: a notification must never fail the transition that
// produced it.
type Notifier interface {
	Notify(ctx context.Context, order *models.Order, note *NotificationCopy)
}

type notifier struct {
	repo        repository.NotificationRepo
	logRepo     repository.NotificationLogRepo // nil when no SQL log is configured
	sns         awspkg.SNSPublisher            // nil when no topic is configured
	snsTopicArn string
	logger      *zap.Logger
}

func NewNotifier(repo repository.NotificationRepo, logRepo repository.NotificationLogRepo, sns awspkg.SNSPublisher, snsTopicArn string, logger *zap.Logger) Notifier {
	return &notifier{repo: repo, logRepo: logRepo, sns: sns, snsTopicArn: snsTopicArn, logger: logger}
}

type orderEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (n *notifier) Notify(ctx context.Context, order *models.Order, note *NotificationCopy) {
	if note == nil {
		return
	}

	orderID := order.ID
	doc := &models.Notification{
		ID:        uuid.New(),
		UserID:    order.CustomerID,
		OrderID:   &orderID,
		Type:      note.Type,
		Title:     note.Title,
		Message:   note.Message,
		Priority:  note.Priority,
		CreatedAt: time.Now().UTC(),
	}

	status := models.DeliveryStatusSent
	errMsg := ""
	if err := n.repo.Create(ctx, doc); err != nil {
		status = models.DeliveryStatusFailed
		errMsg = err.Error()
		n.logger.Error("failed to write customer notification",
			zap.String("order_id", order.ID.String()),
			zap.String("type", note.Type),
			zap.Error(err))
	}

	if n.logRepo != nil {
		logRow := &models.NotificationLog{
			UserID:  order.CustomerID.String(),
			OrderID: order.ID.String(),
			Type:    note.Type,
			Title:   note.Title,
			Status:  status,
			Error:   errMsg,
		}
		if err := n.logRepo.Append(ctx, logRow); err != nil {
			n.logger.Warn("failed to append notification log", zap.Error(err))
		}
	}

	if n.sns != nil && n.snsTopicArn != "" {
		event := orderEvent{
			EventType:   note.Type,
			OrderID:     order.ID.String(),
			OrderNumber: order.OrderNumber,
			CustomerID:  order.CustomerID.String(),
			Title:       note.Title,
			Message:     note.Message,
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err == nil {
			err = n.sns.Publish(ctx, n.snsTopicArn, payload)
		}
		if err != nil {
			n.logger.Warn("failed to publish order event",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}
}
