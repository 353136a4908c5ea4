package member

import "gymstudio/internal/domain"

// UpdateMemberProfileRequest is what a member may change about themselves.
// A nil phone leaves the stored number untouched; an empty one clears it.
type UpdateMemberProfileRequest struct {
	FullName string  `json:"full_name" binding:"required,notblank"`
	Phone    *string `json:"phone" binding:"omitempty,phone"`
}

type CreateMemberRequest struct {
	FullName         string  `json:"full_name" binding:"required,notblank,min=2"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            *string `json:"phone" binding:"omitempty,phone"`
	MembershipTypeID *int64  `json:"membership_type_id" binding:"omitempty,gt=0"`
	IsActive         *bool   `json:"is_active"`
}

type UpdateMemberRequest struct {
	FullName         string  `json:"full_name" binding:"required,notblank,min=2"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            *string `json:"phone" binding:"omitempty,phone"`
	MembershipTypeID *int64  `json:"membership_type_id" binding:"omitempty,gt=0"`
	IsActive         *bool   `json:"is_active"`
}

type ListFilter struct {
	Active *bool
	Page   int
	Limit  int
}

type ListResponse struct {
	Members []domain.Member `json:"members"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}
