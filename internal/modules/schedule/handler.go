package schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/pkg/response"
	"gymstudio/internal/pkg/utils"
	"gymstudio/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/schedules", h.List)
	v1.GET("/schedules/:id", h.Get)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/schedules", h.Create)
	admin.DELETE("/schedules/:id", h.Delete)
}

// List returns classes in a date window with their booked counts.
// @Summary		List classes
// @Tags		Schedules
// @Param		from	query	string	false	"YYYY-MM-DD, default today"
// @Param		to		query	string	false	"YYYY-MM-DD exclusive, default from+7d"
// @Success		200	{object}	envelope.Envelope[[]repository.ScheduleSlot]
// @Router		/schedules [GET]
func (h *Handler) List(c *gin.Context) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	start, end, err := h.service.Window(from, to)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Summary		Get class
// @Tags		Schedules
// @Param		id	path	int	true	"Schedule ID"
// @Success		200	{object}	envelope.Envelope[domain.Schedule]
// @Router		/schedules/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid schedule id")
		return
	}

	sc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sc)
}

// @Summary		Create class
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	CreateScheduleRequest	true	"Class"
// @Success		201	{object}	envelope.Envelope[domain.Schedule]
// @Router		/admin/schedules [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	sc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sc)
}

// @Summary		Delete class
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Schedule ID"
// @Success		200	{object}	envelope.Envelope[any]
// @Failure		409	{object}	envelope.Envelope[any] "Class has bookings"
// @Router		/admin/schedules/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid schedule id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func parseDateParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := utils.ParseDate(raw, time.Time{})
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", name+" must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "SCHEDULE_NOT_FOUND", "Class not found")
	case errors.Is(err, ErrTrainerNotFound):
		response.Error(c, http.StatusBadRequest, "TRAINER_NOT_FOUND", "Trainer not found")
	case errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_TIME_RANGE", "Invalid time range")
	case errors.Is(err, ErrInPast):
		response.Error(c, http.StatusBadRequest, "CLASS_IN_PAST", "Class cannot start in the past")
	case errors.Is(err, ErrHasBookings):
		response.Error(c, http.StatusConflict, "CLASS_HAS_BOOKINGS", "Cancel the bookings before deleting this class")
	default:
		log.Error().Err(err).Msg("schedule request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
