package booking

import "gymstudio/internal/domain"

type CreateBookingRequest struct {
	ScheduleID    int64 `json:"schedule_id" binding:"required,gt=0"`
	UsedFreeClass bool  `json:"used_free_class"`
}

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required,oneof=confirmed cancelled attended"`
}

type SetAttendanceRequest struct {
	IsAttended *bool `json:"is_attended" binding:"required"`
}

type ListFilter struct {
	ScheduleID *int64
	Status     *domain.BookingStatus
	Page       int
	Limit      int
}

type ListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
