package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/authctx"
	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/response"
	"gymstudio/internal/pkg/utils"
	"gymstudio/internal/pkg/validator"
	"gymstudio/pkg/envelope"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterMemberRoutes mounts the client-portal routes. The group must already require the member role.
func (h *Handler) RegisterMemberRoutes(members *gin.RouterGroup) {
	members.POST("/bookings", h.Create)
	members.GET("/bookings/me", h.ListMine)
	members.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/bookings")
	{
		g.GET("", h.List)
		g.PATCH("/:id/status", h.UpdateStatus)
		g.PATCH("/:id/attendance", h.SetAttendance)
	}
}

// Create books the caller into a class.
// @Summary		Book a class
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"Class to book"
// @Success		201	{object}	envelope.Envelope[domain.Booking]
// @Failure		409	{object}	envelope.Envelope[any] "Full, duplicate or over the monthly limit"
// @Router		/bookings [POST]
func (h *Handler) Create(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), caller.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// @Summary		My bookings
// @Tags		Bookings
// @Security	BearerAuth
// @Success		200	{object}	envelope.Envelope[[]domain.Booking]
// @Router		/bookings/me [GET]
func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.service.ListMine(c.Request.Context(), caller.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Summary		Cancel my booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success		200	{object}	envelope.Envelope[domain.Booking]
// @Router		/bookings/{id}/cancel [POST]
func (h *Handler) Cancel(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), caller.ID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// @Summary		List bookings
// @Tags		Admin
// @Security	BearerAuth
// @Param		schedule_id	query	int		false	"Class"
// @Param		status		query	string	false	"confirmed|cancelled|attended"
// @Param		page		query	int		false	"Page (default 1)"	default(1)
// @Param		limit		query	int		false	"Page size (default 20)"	default(20)
// @Success		200	{object}	envelope.Envelope[ListResponse]
// @Router		/admin/bookings [GET]
func (h *Handler) List(c *gin.Context) {
	f := ListFilter{
		Page:  utils.ParseIntDefault(c.Query("page"), 1),
		Limit: utils.ParseIntDefault(c.Query("limit"), 20),
	}
	if raw := c.Query("schedule_id"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "schedule_id must be a positive integer")
			return
		}
		f.ScheduleID = &id
	}
	if raw := c.Query("status"); raw != "" {
		st := domain.BookingStatus(raw)
		if !st.Valid() {
			response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Unknown booking status")
			return
		}
		f.Status = &st
	}

	out, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// @Summary		Change booking status
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int					true	"Booking ID"
// @Param		request	body	UpdateStatusRequest	true	"New status"
// @Success		200	{object}	envelope.Envelope[domain.Booking]
// @Failure		409	{object}	envelope.Envelope[any] "INVALID_STATUS_TRANSITION"
// @Router		/admin/bookings/{id}/status [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req UpdateStatusRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// @Summary		Mark attendance
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int						true	"Booking ID"
// @Param		request	body	SetAttendanceRequest	true	"Attendance"
// @Success		200	{object}	envelope.Envelope[domain.Booking]
// @Router		/admin/bookings/{id}/attendance [PATCH]
func (h *Handler) SetAttendance(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req SetAttendanceRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	b, err := h.service.SetAttendance(c.Request.Context(), id, *req.IsAttended)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrScheduleNotFound):
		response.Error(c, http.StatusNotFound, "SCHEDULE_NOT_FOUND", "Class not found")
	case errors.Is(err, ErrNoMemberProfile):
		response.Error(c, http.StatusForbidden, "PROFILE_NOT_FOUND", "No member profile for this account")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "This booking belongs to another member")
	case errors.Is(err, ErrMemberInactive):
		response.Error(c, http.StatusForbidden, "MEMBER_INACTIVE", "Your membership is not active")
	case errors.Is(err, ErrClassStarted):
		response.Error(c, http.StatusBadRequest, "CLASS_STARTED", "The class has already started")
	case errors.Is(err, ErrAlreadyBooked):
		response.Error(c, http.StatusConflict, "ALREADY_BOOKED", "You already booked this class")
	case errors.Is(err, ErrClassFull):
		response.Error(c, http.StatusConflict, "CLASS_FULL", "The class is full")
	case errors.Is(err, ErrClassLimitReached):
		response.ErrorWithShowType(c, http.StatusConflict, "CLASS_LIMIT_REACHED", "Monthly class limit reached", envelope.ShowNotification)
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Booking cannot move to that status")
	default:
		log.Error().Err(err).Msg("booking request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
