package member

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

// RegisterAdminRoutes mounts front-desk member management. The group must already require admin.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/members")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.POST("/:id/deactivate", h.Deactivate)
	}
}

// RegisterClientRoutes mounts the member's own profile. The group must already require the member role.
func (h *Handler) RegisterClientRoutes(client *gin.RouterGroup) {
	client.GET("/members/me", h.GetMyProfile)
	client.PUT("/members/me", h.UpdateMyProfile)
}

// List returns members page by page.
// @Summary		List members
// @Tags		Admin
// @Security	BearerAuth
// @Param		active	query	bool	false	"Filter by active flag"
// @Param		page	query	int		false	"Page (default 1)"	default(1)
// @Param		limit	query	int		false	"Page size (default 20)"	default(20)
// @Success		200	{object}	envelope.Envelope[ListResponse]
// @Router		/admin/members [GET]
func (h *Handler) List(c *gin.Context) {
	out, err := h.service.List(c.Request.Context(), ListFilter{
		Active: utils.ParseBoolPtr(c.Query("active")),
		Page:   utils.ParseIntDefault(c.Query("page"), 1),
		Limit:  utils.ParseIntDefault(c.Query("limit"), 20),
	})
	if err != nil {
		log.Error().Err(err).Msg("list members")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load members")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// @Summary		Get member
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Member ID"
// @Success		200	{object}	envelope.Envelope[domain.Member]
// @Failure		404	{object}	envelope.Envelope[any]
// @Router		/admin/members/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid member id")
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// @Summary		Create member
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	CreateMemberRequest	true	"Member"
// @Success		201	{object}	envelope.Envelope[domain.Member]
// @Failure		409	{object}	envelope.Envelope[any] "Email taken"
// @Failure		422	{object}	envelope.Envelope[any]
// @Router		/admin/members [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// @Summary		Update member
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int					true	"Member ID"
// @Param		request	body	UpdateMemberRequest	true	"Member"
// @Success		200	{object}	envelope.Envelope[domain.Member]
// @Router		/admin/members/{id} [PUT]
func (h *Handler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid member id")
		return
	}

	var req UpdateMemberRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// @Summary		Deactivate member
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Member ID"
// @Success		200	{object}	envelope.Envelope[any]
// @Router		/admin/members/{id}/deactivate [POST]
func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid member id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": false})
}

// GetMyProfile returns the caller's member profile.
// @Summary		My profile
// @Tags		Members
// @Security	BearerAuth
// @Success		200	{object}	envelope.Envelope[domain.Member]
// @Router		/members/me [GET]
func (h *Handler) GetMyProfile(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	m, err := h.service.GetMyProfile(c.Request.Context(), caller.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// UpdateMyProfile lets a member change their name and phone.
// @Summary		Update my profile
// @Tags		Members
// @Security	BearerAuth
// @Param		request	body	UpdateMemberProfileRequest	true	"Profile"
// @Success		200	{object}	envelope.Envelope[domain.Member]
// @Failure		422	{object}	envelope.Envelope[any]
// @Router		/members/me [PUT]
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateMemberProfileRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	m, err := h.service.UpdateMyProfile(c.Request.Context(), caller.ID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found")
	case errors.Is(err, ErrNoProfile):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "No member profile for this account")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already used by another member")
	case errors.Is(err, ErrMembershipTypeNotFound):
		response.Error(c, http.StatusBadRequest, "MEMBERSHIP_TYPE_NOT_FOUND", "Membership type not found")
	case errors.Is(err, validator.ErrInvalidPhone):
		response.ValidationError(c, map[string]string{"phone": "phone"})
	default:
		log.Error().Err(err).Msg("member request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
