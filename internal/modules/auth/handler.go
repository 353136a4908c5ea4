package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/authctx"
	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/response"
	"gymstudio/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

func (h *Handler) tokenResponse(res *LoginResult) TokenResponse {
	return TokenResponse{
		Token:     res.Token,
		ExpiresIn: int64(h.service.TokenTTL().Seconds()),
		User:      toUserPublic(res.User),
	}
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, Role: string(u.Role)}
}

// Register creates a member account and signs it in.
// @Summary		Register a member
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"Member details"
// @Success		201	{object}	envelope.Envelope[TokenResponse]
// @Failure		409	{object}	envelope.Envelope[any] "Email already registered"
// @Failure		422	{object}	envelope.Envelope[any]
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, validator.ErrInvalidPhone):
			response.ValidationError(c, map[string]string{"phone": "phone"})
		default:
			log.Error().Err(err).Msg("register member")
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, h.tokenResponse(res))
}

// Login signs a user in and issues a JWT.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Credentials"
// @Success		200	{object}	envelope.Envelope[TokenResponse]
// @Failure		401	{object}	envelope.Envelope[any] "Wrong email or password"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !validator.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		log.Error().Err(err).Msg("login")
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, h.tokenResponse(res))
}

// Me returns the authenticated user.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	envelope.Envelope[UserPublic]
// @Router		/auth/me [GET]
func (h *Handler) Me(c *gin.Context) {
	caller, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.Me(c.Request.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User no longer exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return
	}

	response.Success(c, http.StatusOK, toUserPublic(user))
}
