package membership

import (
	"errors"
	"net/http"

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
	v1.GET("/membership-types", h.ListPublic)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/membership-types")
	{
		g.GET("", h.ListAdmin)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// @Summary		List membership plans
// @Tags		Membership types
// @Success		200	{object}	envelope.Envelope[[]domain.MembershipType]
// @Router		/membership-types [GET]
func (h *Handler) ListPublic(c *gin.Context) {
	items, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Summary		List membership plans (admin)
// @Tags		Admin
// @Security	BearerAuth
// @Param		with_deleted	query	bool	false	"Include soft-deleted plans"
// @Success		200	{object}	envelope.Envelope[[]domain.MembershipType]
// @Router		/admin/membership-types [GET]
func (h *Handler) ListAdmin(c *gin.Context) {
	withDeleted := false
	if v := utils.ParseBoolPtr(c.Query("with_deleted")); v != nil {
		withDeleted = *v
	}

	items, err := h.service.ListAdmin(c.Request.Context(), withDeleted)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Summary		Create membership plan
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	MembershipTypeRequest	true	"Plan"
// @Success		201	{object}	envelope.Envelope[domain.MembershipType]
// @Router		/admin/membership-types [POST]
func (h *Handler) Create(c *gin.Context) {
	var req MembershipTypeRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	mt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, mt)
}

// @Summary		Update membership plan
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int						true	"Plan ID"
// @Param		request	body	MembershipTypeRequest	true	"Plan"
// @Success		200	{object}	envelope.Envelope[domain.MembershipType]
// @Router		/admin/membership-types/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid membership type id")
		return
	}

	var req MembershipTypeRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	mt, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mt)
}

// Delete soft-deletes a plan.
// @Summary		Delete membership plan
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Plan ID"
// @Success		200	{object}	envelope.Envelope[any]
// @Router		/admin/membership-types/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid membership type id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "MEMBERSHIP_TYPE_NOT_FOUND", "Membership type not found")
		return
	}
	log.Error().Err(err).Msg("membership type request failed")
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}
