package statistics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/jwt"
	"gymstudio/internal/pkg/response"
	"gymstudio/internal/pkg/utils"
)

const pongWait = 60 * time.Second

type Handler struct {
	service  *Service
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler wires the REST endpoints and the websocket stream. allowedOrigins
// gates browser websocket handshakes; requests without an Origin header pass.
func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		service: service,
		hub:     hub,
		jwt:     jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/statistics/dashboard", h.Dashboard)
	admin.GET("/statistics/export-attendance", h.ExportAttendance)
}

// RegisterStreamRoutes mounts the websocket outside the JWT middleware: browsers
// can't set headers on the handshake, so the token travels in the query.
func (h *Handler) RegisterStreamRoutes(v1 *gin.RouterGroup) {
	v1.GET("/statistics/dashboard/ws", h.Stream)
}

// Dashboard returns the headline numbers for the admin portal.
// @Summary		Dashboard statistics
// @Tags		Statistics
// @Security	BearerAuth
// @Success		200	{object}	envelope.Envelope[Dashboard]
// @Router		/statistics/dashboard [GET]
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("dashboard")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}
	response.Success(c, http.StatusOK, d)
}

// ExportAttendance streams a CSV of bookings for classes in the range.
// @Summary		Export attendance
// @Tags		Statistics
// @Security	BearerAuth
// @Produce		text/csv
// @Param		from	query	string	false	"YYYY-MM-DD, default first day of this month"
// @Param		to		query	string	false	"YYYY-MM-DD inclusive, default end of from's month"
// @Success		200	{file}	file
// @Failure		400	{object}	envelope.Envelope[any]
// @Router		/statistics/export-attendance [GET]
func (h *Handler) ExportAttendance(c *gin.Context) {
	var bounds [2]*time.Time
	for i, name := range []string{"from", "to"} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := utils.ParseDate(raw, time.Time{})
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_QUERY", name+" must be YYYY-MM-DD")
			return
		}
		bounds[i] = &t
	}

	from, to, err := h.service.ExportWindow(bounds[0], bounds[1])
	if errors.Is(err, ErrInvalidRange) {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "to must not be before from, and the range must not exceed a year")
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv",
		from.Format(utils.DateLayout), to.AddDate(0, 0, -1).Format(utils.DateLayout))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := h.service.ExportAttendance(c.Request.Context(), c.Writer, from, to); err != nil {
		// headers are gone by now; log and cut the body short
		log.Error().Err(err).Msg("export attendance")
		_ = c.Error(err)
	}
}

// Stream pushes dashboard snapshots over a websocket.
//
// Endpoint: GET /statistics/dashboard/ws?token=JWT
func (h *Handler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}
	if domain.UserRole(claims.Role) != domain.RoleAdmin {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("dashboard websocket upgrade failed")
		return
	}

	if err := h.hub.Register(c.Request.Context(), conn); err != nil {
		log.Warn().Err(err).Int64("user_id", claims.UserID).Msg("dashboard websocket register failed")
		_ = conn.Close()
		return
	}
	log.Info().Int64("user_id", claims.UserID).Int("viewers", h.hub.Count()).Msg("dashboard viewer connected")
	defer h.hub.Unregister(conn)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	// the client never sends anything useful; reading drives pong and close handling
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("dashboard websocket closed")
			}
			return
		}
	}
}

func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pongWait / 2)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
