package domain

import "time"

// Member is a gym client. ID never changes once the row exists.
type Member struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UserID           *int64    `json:"user_id,omitempty" gorm:"uniqueIndex"`
	FullName         string    `json:"full_name" gorm:"size:255;not null"`
	Email            string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone            string    `json:"phone,omitempty" gorm:"size:32"`
	MembershipTypeID *int64    `json:"membership_type_id,omitempty" gorm:"index"`
	IsActive         bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	MembershipType *MembershipType `json:"membership_type,omitempty" gorm:"foreignKey:MembershipTypeID"`
}

func (Member) TableName() string { return "members" }
