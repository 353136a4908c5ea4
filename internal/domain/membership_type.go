package domain

import (
	"time"

	"gorm.io/gorm"
)

// MembershipType is a sellable plan. Rows are soft-deleted through DeletedAt and never removed.
type MembershipType struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:128;not null"`
	// minor units
	MonthlyPrice int64 `json:"monthly_price" gorm:"not null"`
	// 0 = unlimited
	ClassLimit int  `json:"class_limit" gorm:"not null;default:0"`
	IsActive   bool `json:"is_active" gorm:"not null;default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (MembershipType) TableName() string { return "membership_types" }

// Unlimited reports whether members on this plan may book any number of classes.
func (m *MembershipType) Unlimited() bool {
	return m.ClassLimit <= 0
}
