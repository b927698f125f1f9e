package models

import "time"

// Store is the tenant root: menus, orders and staff all hang off one store.
type Store struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	Menus       []Menu    `json:"menus,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Orders      []Order   `json:"orders,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Users       []User    `json:"users,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Menu struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StoreID     uint      `json:"store_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Price       int       `json:"price" gorm:"not null"` // integer yen
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
