package models

import "time"

// OrderStatus is the lifecycle state of an order. Callers may set any non-empty value;
// the constants name the states the kitchen and delivery flows use.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Order is an immutable snapshot of a checked-out cart. Only Status changes after creation.
type Order struct {
	ID              string      `json:"_id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"userId" bson:"userId" gorm:"index;type:varchar(64)"`
	Items           []CartLine  `json:"items" bson:"items" gorm:"serializer:json"`
	Total           float64     `json:"total" bson:"total"`
	Status          OrderStatus `json:"status" bson:"status" gorm:"type:varchar(32)"`
	Type            string      `json:"type" bson:"type"`
	PaymentMethod   string      `json:"paymentMethod" bson:"paymentMethod"`
	MobileNumber    string      `json:"mobileNumber" bson:"mobileNumber"`
	DeliveryAddress *string     `json:"deliveryAddress,omitempty" bson:"deliveryAddress,omitempty"`
	NumberOfPeople  *int        `json:"numberOfPeople,omitempty" bson:"numberOfPeople,omitempty"`
	PickupTime      *string     `json:"pickupTime,omitempty" bson:"pickupTime,omitempty"`
	CustomerName    string      `json:"customerName" bson:"customerName"`
	CustomerEmail   string      `json:"customerEmail" bson:"customerEmail"`
	CustomerAddress string      `json:"customerAddress" bson:"customerAddress"`
	CreatedAt       time.Time   `json:"createdAt" bson:"createdAt"`
}

// AdminStats is the dashboard summary over users and orders.
type AdminStats struct {
	TotalUsers  int64   `json:"totalUsers"`
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int64   `json:"totalOrders"`
}
