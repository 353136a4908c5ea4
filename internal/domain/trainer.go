package domain

import "time"

type Trainer struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	UserID          *int64    `json:"user_id,omitempty" gorm:"uniqueIndex"`
	FullName        string    `json:"full_name" gorm:"size:255;not null"`
	Specialization  *string   `json:"specialization,omitempty" gorm:"size:255"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	IsActive        bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Trainer) TableName() string { return "trainers" }
