package schedule

import "time"

type CreateScheduleRequest struct {
	TrainerID int64     `json:"trainer_id" binding:"required,gt=0"`
	Title     string    `json:"title" binding:"required,notblank,min=2,max=255"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
	Capacity  int       `json:"capacity" binding:"required,min=1,max=500"`
}
