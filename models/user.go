package models

import (
	"time"
)

// UserRole is the primary role tag separating customers from store staff
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStore    UserRole = "store"
)

// Fine-grained role names held by store staff via user_roles
const (
	RoleNameOwner   = "owner"
	RoleNameManager = "manager"
	RoleNameStaff   = "staff"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	StoreID      *uint     `json:"store_id"`
	Store        *Store    `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Roles        []Role    `json:"roles,omitempty" gorm:"many2many:user_roles;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleNames returns the names of the user's fine-grained roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Role is a fine-grained permission tier (owner/manager/staff) for store staff
type Role struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleAssignment is the timestamped join row between a staff user and a role
type RoleAssignment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	RoleID     uint      `json:"role_id" gorm:"not null;index"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`
}

func (RoleAssignment) TableName() string {
	return "user_roles"
}
