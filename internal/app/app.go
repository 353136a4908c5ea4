// Package app assembles repositories, services and handlers into the HTTP API.
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gymstudio/internal/config"
	"gymstudio/internal/domain"
	"gymstudio/internal/middleware"
	"gymstudio/internal/modules/auth"
	"gymstudio/internal/modules/booking"
	"gymstudio/internal/modules/member"
	"gymstudio/internal/modules/membership"
	"gymstudio/internal/modules/schedule"
	"gymstudio/internal/modules/statistics"
	"gymstudio/internal/modules/trainer"
	"gymstudio/internal/notification"
	"gymstudio/internal/pkg/jwt"
	"gymstudio/internal/pkg/metrics"
	"gymstudio/internal/pkg/response"
	"gymstudio/internal/pkg/validator"
	"gymstudio/internal/repository"
	"gymstudio/internal/scheduler"
)

// APIPrefixes are the mount points of the same route tree. The dev proxy strips
// /api, so the backend answers on both.
var APIPrefixes = []string{"/api/v1", "/v1"}

type App struct {
	Router    *gin.Engine
	JWT       *jwt.Service
	Hub       *statistics.Hub
	Reminders *scheduler.Reminders
	Metrics   *metrics.Metrics
}

type handlers struct {
	auth       *auth.Handler
	member     *member.Handler
	membership *membership.Handler
	trainer    *trainer.Handler
	schedule   *schedule.Handler
	booking    *booking.Handler
	statistics *statistics.Handler

	jwt         *jwt.Service
	authLimiter *middleware.IPRateLimiter
}

func New(cfg *config.Config, db *gorm.DB) *App {
	validator.SetPhoneRegion(cfg.PhoneRegion)

	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	planRepo := repository.NewMembershipTypeRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	m := metrics.New()

	statsService := statistics.NewService(statsRepo, bookingRepo)
	hub := statistics.NewHub(statsService.Dashboard)
	hub.TrackViewers(m.DashboardViewers)

	h := handlers{
		auth:       auth.NewHandler(auth.NewService(userRepo, jwtService, cfg.JWTTTL)),
		member:     member.NewHandler(member.NewService(memberRepo, planRepo)),
		membership: membership.NewHandler(membership.NewService(planRepo)),
		trainer:    trainer.NewHandler(trainer.NewService(trainerRepo, userRepo)),
		schedule:   schedule.NewHandler(schedule.NewService(scheduleRepo, trainerRepo)),
		booking:    booking.NewHandler(booking.NewService(bookingRepo, memberRepo, scheduleRepo)),
		statistics: statistics.NewHandler(statsService, hub, jwtService, cfg.CORSAllowedOrigins),

		jwt:         jwtService,
		authLimiter: middleware.NewIPRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Metrics(m))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	for _, prefix := range APIPrefixes {
		h.mount(r.Group(prefix))
	}

	return &App{
		Router:    r,
		JWT:       jwtService,
		Hub:       hub,
		Reminders: scheduler.NewReminders(bookingRepo, notification.NewLogNotifier(), cfg.ReminderWindow).CountSent(m.RemindersSent),
		Metrics:   m,
	}
}

func (h handlers) mount(v1 *gin.RouterGroup) {
	// public
	h.auth.RegisterPublicRoutes(v1.Group("", middleware.RateLimit(h.authLimiter)))
	h.membership.RegisterPublicRoutes(v1)
	h.trainer.RegisterPublicRoutes(v1)
	h.schedule.RegisterPublicRoutes(v1)
	h.statistics.RegisterStreamRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(h.jwt))
	{
		h.auth.RegisterProtectedRoutes(protected)

		members := protected.Group("")
		members.Use(middleware.RequireRole(domain.RoleMember))
		{
			h.member.RegisterClientRoutes(members)
			h.booking.RegisterMemberRoutes(members)
		}

		trainers := protected.Group("")
		trainers.Use(middleware.RequireRole(domain.RoleTrainer))
		{
			h.trainer.RegisterTrainerRoutes(trainers)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOnly())
		{
			h.member.RegisterAdminRoutes(adminGroup)
			h.membership.RegisterAdminRoutes(adminGroup)
			h.trainer.RegisterAdminRoutes(adminGroup)
			h.schedule.RegisterAdminRoutes(adminGroup)
			h.booking.RegisterAdminRoutes(adminGroup)
		}

		stats := protected.Group("")
		stats.Use(middleware.AdminOnly())
		{
			h.statistics.RegisterAdminRoutes(stats)
		}
	}
}
