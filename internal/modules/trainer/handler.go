package trainer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/authctx"
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
	v1.GET("/trainers", h.List)
	v1.GET("/trainers/:id", h.Get)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/trainers", h.Create)
	admin.PUT("/trainers/:id", h.Update)
}

// RegisterTrainerRoutes mounts self-service routes. The group must already require the trainer role.
func (h *Handler) RegisterTrainerRoutes(trainers *gin.RouterGroup) {
	trainers.PUT("/trainers/me", h.UpdateMyProfile)
}

// @Summary		List trainers
// @Tags		Trainers
// @Success		200	{object}	envelope.Envelope[[]domain.Trainer]
// @Router		/trainers [GET]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Summary		Get trainer
// @Tags		Trainers
// @Param		id	path	int	true	"Trainer ID"
// @Success		200	{object}	envelope.Envelope[domain.Trainer]
// @Failure		404	{object}	envelope.Envelope[any]
// @Router		/trainers/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid trainer id")
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// @Summary		Create trainer
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	CreateTrainerRequest	true	"Trainer"
// @Success		201	{object}	envelope.Envelope[domain.Trainer]
// @Failure		400	{object}	envelope.Envelope[any] "Linked user missing or not a trainer"
// @Router		/admin/trainers [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

// @Summary		Update trainer
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int							true	"Trainer ID"
// @Param		request	body	UpdateTrainerProfileRequest	true	"Profile"
// @Success		200	{object}	envelope.Envelope[domain.Trainer]
// @Router		/admin/trainers/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid trainer id")
		return
	}

	var req UpdateTrainerProfileRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// UpdateMyProfile lets a trainer edit their own card.
// @Summary		Update my trainer profile
// @Tags		Trainers
// @Security	BearerAuth
// @Param		request	body	UpdateTrainerProfileRequest	true	"Profile"
// @Success		200	{object}	envelope.Envelope[domain.Trainer]
// @Failure		422	{object}	envelope.Envelope[any]
// @Router		/trainers/me [PUT]
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateTrainerProfileRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	t, err := h.service.UpdateMyProfile(c.Request.Context(), caller.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "TRAINER_NOT_FOUND", "Trainer not found")
	case errors.Is(err, ErrNoProfile):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "No trainer profile for this account")
	case errors.Is(err, ErrUserAssigned):
		response.Error(c, http.StatusConflict, "TRAINER_EXISTS", "This user already has a trainer profile")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusBadRequest, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrNotTrainer):
		response.Error(c, http.StatusBadRequest, "USER_NOT_TRAINER", "User must have the trainer role")
	default:
		log.Error().Err(err).Msg("trainer request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
