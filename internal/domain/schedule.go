package domain

import "time"

// Schedule is one class session that members book into.
type Schedule struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TrainerID int64     `json:"trainer_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	StartsAt  time.Time `json:"starts_at" gorm:"index;not null"`
	EndsAt    time.Time `json:"ends_at" gorm:"not null"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Trainer *Trainer `json:"trainer,omitempty" gorm:"foreignKey:TrainerID"`
}

func (Schedule) TableName() string { return "schedules" }
