package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gymstudio/internal/config"
	"gymstudio/internal/database"
	"gymstudio/internal/domain"
	"gymstudio/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.Setup(cfg.AppEnv, cfg.LogLevel)
	if cfg.IsProd() {
		log.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	log.Info().Msg("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	if err := db.Transaction(seed); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("Seed completed")
}

func seed(tx *gorm.DB) error {
	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Info().Msg("Cleaning old data...")
	for _, table := range []string{"bookings", "schedules", "trainers", "members", "membership_types", "users"} {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	// ================== USERS ==================
	admin, err := user(tx, "admin@gym.kz", "admin123", domain.RoleAdmin)
	if err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("Admin created (password admin123)")

	// ================== PLANS ==================
	plans := []domain.MembershipType{
		{Name: "Basic", MonthlyPrice: 1500000, ClassLimit: 8, IsActive: true},
		{Name: "Standard", MonthlyPrice: 2500000, ClassLimit: 16, IsActive: true},
		{Name: "Unlimited", MonthlyPrice: 4000000, ClassLimit: 0, IsActive: true},
	}
	if err := tx.Create(&plans).Error; err != nil {
		return fmt.Errorf("create plans: %w", err)
	}

	// ================== TRAINERS ==================
	focuses := []string{"Yoga", "CrossFit", "Pilates"}
	trainers := make([]domain.Trainer, 0, len(focuses))
	for i, focus := range focuses {
		u, err := user(tx, fmt.Sprintf("coach%d@gym.kz", i+1), "coach123", domain.RoleTrainer)
		if err != nil {
			return err
		}
		years := 2 + i*3
		tr := domain.Trainer{
			UserID:          &u.ID,
			FullName:        fmt.Sprintf("Coach %d", i+1),
			Specialization:  &focus,
			ExperienceYears: &years,
			IsActive:        true,
		}
		if err := tx.Create(&tr).Error; err != nil {
			return fmt.Errorf("create trainer: %w", err)
		}
		trainers = append(trainers, tr)
	}

	// ================== MEMBERS ==================
	names := []string{"Asel Nurlanovna", "Bekzat Omarov", "Dina Kim"}
	members := make([]domain.Member, 0, len(names))
	for i, name := range names {
		u, err := user(tx, fmt.Sprintf("member%d@gym.kz", i+1), "member123", domain.RoleMember)
		if err != nil {
			return err
		}
		m := domain.Member{
			UserID:           &u.ID,
			FullName:         name,
			Email:            u.Email,
			Phone:            fmt.Sprintf("+7701123456%d", i+1),
			MembershipTypeID: &plans[i%len(plans)].ID,
			IsActive:         true,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		members = append(members, m)
	}

	// ================== SCHEDULES ==================
	today := time.Now().UTC().Truncate(24 * time.Hour)
	schedules := make([]domain.Schedule, 0, 14)
	for day := 1; day <= 7; day++ {
		for _, hour := range []int{9, 19} {
			tr := trainers[rand.IntN(len(trainers))]
			starts := today.AddDate(0, 0, day).Add(time.Duration(hour) * time.Hour)
			sc := domain.Schedule{
				TrainerID: tr.ID,
				Title:     *tr.Specialization,
				StartsAt:  starts,
				EndsAt:    starts.Add(time.Hour),
				Capacity:  10 + rand.IntN(10),
			}
			if err := tx.Create(&sc).Error; err != nil {
				return fmt.Errorf("create schedule: %w", err)
			}
			schedules = append(schedules, sc)
		}
	}

	// ================== BOOKINGS ==================
	now := time.Now().UTC()
	for _, m := range members {
		for _, i := range rand.Perm(len(schedules))[:3] {
			b := domain.Booking{
				MemberID:   m.ID,
				ScheduleID: schedules[i].ID,
				BookedAt:   now,
				Status:     domain.BookingConfirmed,
			}
			if err := tx.Create(&b).Error; err != nil {
				return fmt.Errorf("create booking: %w", err)
			}
		}
	}
	log.Info().
		Int("trainers", len(trainers)).
		Int("members", len(members)).
		Int("schedules", len(schedules)).
		Msg("Demo data created")
	return nil
}

// user upserts a login by email.
func user(tx *gorm.DB, email, password string, role domain.UserRole) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, PasswordHash: string(hash), Role: role}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}
	return u, nil
}
