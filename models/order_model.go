package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusType is the order lifecycle state. Pending is the only
// non-terminal state; every resolved state is final.
type OrderStatusType string

const (
	OrderPending OrderStatusType = "pending"
	OrderSuccess OrderStatusType = "success"
	OrderFail    OrderStatusType = "fail"
	OrderCancel  OrderStatusType = "cancel"
)

// CanTransition reports whether an order may move from t to next.
func (t OrderStatusType) CanTransition(next OrderStatusType) bool {
	if t != OrderPending {
		return false
	}
	switch next {
	case OrderSuccess, OrderFail, OrderCancel:
		return true
	}
	return false
}

// PaymentStatus is how much of the grand total the gateway confirmed.
// It stays unset until a callback resolves the order.
type PaymentStatus string

const (
	PaymentUnset   PaymentStatus = ""
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
)

const (
	MethodSSLCommerce    = "ssl commerce"
	MethodCashOnDelivery = "cash on delivery"
)

type PaymentAmount struct {
	Amount float64 `json:"amount" bson:"amount"`
	Method string  `json:"method" bson:"method"`
}

// Payment correlates an order with exactly one gateway session via
// TransactionID, assigned once at creation and never reused.
type Payment struct {
	TransactionID string        `json:"transactionId" bson:"transactionId"`
	SSLSessionKey string        `json:"sslSessionKey" bson:"sslSessionKey"`
	Status        PaymentStatus `json:"status,omitempty" bson:"status,omitempty"`
	Paid          PaymentAmount `json:"paid,omitempty" bson:"paid,omitempty"`
	Payable       PaymentAmount `json:"payable,omitempty" bson:"payable,omitempty"`
}

type OrderStatus struct {
	Type    OrderStatusType `json:"type" bson:"type"`
	Message string          `json:"message" bson:"message"`
}

// CartItem is a line item with the product snapshotted at order time,
// independent of later catalog changes.
type CartItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Product   Product            `json:"product" bson:"product"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
}

// Order represents one checkout attempt and its payment resolution.
type Order struct {
	ID              primitive.ObjectID `json:"orderId" bson:"_id"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	GrandTotal      float64            `json:"grandTotal" bson:"grandTotal"`
	DeliveryAddress DeliveryAddress    `json:"deliveryAddress" bson:"deliveryAddress"`
	Carts           []CartItem         `json:"carts" bson:"carts"`
	Payment         Payment            `json:"payment" bson:"payment"`
	OrderStatus     OrderStatus        `json:"orderStatus" bson:"orderStatus"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
