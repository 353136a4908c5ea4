package trainer

// UpdateTrainerProfileRequest is shared by the admin edit and the trainer's own edit.
type UpdateTrainerProfileRequest struct {
	FullName        string  `json:"full_name" binding:"required,notblank"`
	Specialization  *string `json:"specialization" binding:"omitempty,max=255"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0"`
}

type CreateTrainerRequest struct {
	FullName        string  `json:"full_name" binding:"required,notblank,min=2"`
	Specialization  *string `json:"specialization" binding:"omitempty,max=255"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0"`
	// links an existing login with role trainer
	UserID *int64 `json:"user_id" binding:"omitempty,gt=0"`
}
