package models

import "time"

// OrderStatus represents all possible states of a bento order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	UserID       uint        `json:"user_id" gorm:"not null;index"`
	User         *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	MenuID       uint        `json:"menu_id" gorm:"not null;index"`
	Menu         *Menu       `json:"menu,omitempty" gorm:"foreignKey:MenuID"`
	StoreID      uint        `json:"store_id" gorm:"not null;index"`
	Quantity     int         `json:"quantity" gorm:"not null"`
	TotalPrice   int         `json:"total_price" gorm:"not null"` // snapshot: menu.price × quantity at order time
	Status       OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	DeliveryTime *string     `json:"delivery_time"`
	Notes        string      `json:"notes"`
	OrderedAt    time.Time   `json:"ordered_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
