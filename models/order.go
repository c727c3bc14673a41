package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPlaced         OrderStatus = "placed"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
	OrderRefunded       OrderStatus = "refunded"
)

// Valid reports whether s is one of the known fulfillment states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPlaced, OrderConfirmed, OrderPreparing, OrderOutForDelivery,
		OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// PaymentStatus tracks whether money actually moved, independent of
// fulfillment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentUPIOnline      PaymentMethod = "upi_online"
)

// VerificationStatus is the operator's manual judgement on a claimed UPI
// payment.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id" bson:"product_id"`
	ProductName string    `json:"product_name" bson:"product_name"` // snapshot at order time
	Quantity    int       `json:"quantity" bson:"quantity"`
	Price       float64   `json:"price" bson:"price"` // snapshot at order time
	Total       float64   `json:"total" bson:"total"`
}

// PaymentDetails is a tagged union discriminated by Order.PaymentMethod:
// UPI orders carry the transaction id, screenshot and VPA; COD orders
// carry only the verification status.
type PaymentDetails struct {
	UPITransactionID   string             `json:"upi_transaction_id,omitempty" bson:"upi_transaction_id,omitempty"`
	PaymentScreenshot  string             `json:"payment_screenshot,omitempty" bson:"payment_screenshot,omitempty"`
	UPIID              string             `json:"upi_id,omitempty" bson:"upi_id,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status" bson:"verification_status"`
	RejectionReason    string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	VerifiedAt         *time.Time         `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
}

type DeliverySlot struct {
	Type               string     `json:"type" bson:"type"`
	EstimatedTime      string     `json:"estimated_time,omitempty" bson:"estimated_time,omitempty"`
	ActualDeliveryTime *time.Time `json:"actual_delivery_time,omitempty" bson:"actual_delivery_time,omitempty"`
	Fee                float64    `json:"fee" bson:"fee"`
	ScheduledDate      string     `json:"scheduled_date,omitempty" bson:"scheduled_date,omitempty"`
	ScheduledTime      string     `json:"scheduled_time,omitempty" bson:"scheduled_time,omitempty"`
}

// OrderTracking stamps when the order first entered each state. Each field
// is written once; repeated transitions into the same state keep the
// original timestamp.
type OrderTracking struct {
	PlacedAt         time.Time  `json:"placed_at" bson:"placed_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	PreparingAt      *time.Time `json:"preparing_at,omitempty" bson:"preparing_at,omitempty"`
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at,omitempty" bson:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
}

type Order struct {
	ID              uuid.UUID   `json:"_id" bson:"_id"`
	OrderNumber     string      `json:"order_number" bson:"order_number"`
	CustomerID      uuid.UUID   `json:"customer_id" bson:"customer_id"`
	CustomerName    string      `json:"customer_name" bson:"customer_name"`
	CustomerPhone   string      `json:"customer_phone" bson:"customer_phone"`
	DeliveryAddress string      `json:"delivery_address" bson:"delivery_address"`
	Items           []OrderItem `json:"items" bson:"items"`

	Subtotal    float64 `json:"subtotal" bson:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee" bson:"delivery_fee"`
	Taxes       float64 `json:"taxes" bson:"taxes"`
	Discount    float64 `json:"discount" bson:"discount"`
	Total       float64 `json:"total" bson:"total"`

	Status         OrderStatus    `json:"status" bson:"status"`
	PaymentStatus  PaymentStatus  `json:"payment_status" bson:"payment_status"`
	PaymentMethod  PaymentMethod  `json:"payment_method" bson:"payment_method"`
	PaymentDetails PaymentDetails `json:"payment_details" bson:"payment_details"`

	DeliverySlot    DeliverySlot  `json:"delivery_slot" bson:"delivery_slot"`
	OrderTracking   OrderTracking `json:"order_tracking" bson:"order_tracking"`
	DeliveryPartner *Reference    `json:"delivery_partner,omitempty" bson:"delivery_partner,omitempty"`

	IsCancellable bool `json:"is_cancellable" bson:"is_cancellable"`
	IsRefundable  bool `json:"is_refundable" bson:"is_refundable"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Clone returns a deep copy used as the rollback snapshot for optimistic
// mutations.
func (o *Order) Clone() *Order {
	out := *o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	if o.DeliveryPartner != nil {
		ref := *o.DeliveryPartner
		out.DeliveryPartner = &ref
	}
	out.PaymentDetails.VerifiedAt = copyTime(o.PaymentDetails.VerifiedAt)
	out.DeliverySlot.ActualDeliveryTime = copyTime(o.DeliverySlot.ActualDeliveryTime)
	out.OrderTracking.ConfirmedAt = copyTime(o.OrderTracking.ConfirmedAt)
	out.OrderTracking.PreparingAt = copyTime(o.OrderTracking.PreparingAt)
	out.OrderTracking.OutForDeliveryAt = copyTime(o.OrderTracking.OutForDeliveryAt)
	out.OrderTracking.DeliveredAt = copyTime(o.OrderTracking.DeliveredAt)
	return &out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
