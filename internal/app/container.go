package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/api"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/auth"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/booking"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/config"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/file"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/storage"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	UploadDir      string
	UploadMaxBytes int64

	// Redis is optional; nil disables the settings cache.
	Redis            *redis.Client
	SettingsCacheTTL time.Duration

	Booking config.BookingConfig
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	// User Module
	userService := user.NewService(user.NewPgxRepository(cfg.DBPool), passwordHasher)

	// File Module
	fileService := file.NewService(file.NewPgxRepository(cfg.DBPool), store)

	// Setting Module
	var settingsCache setting.Cache
	if cfg.Redis != nil {
		settingsCache = setting.NewRedisCache(cfg.Redis, cfg.SettingsCacheTTL)
	}
	settingService := setting.NewService(setting.NewPgxRepository(cfg.DBPool), settingsCache)

	// Cabin & Guest Modules
	cabinService := cabin.NewService(cabin.NewPgxRepository(cfg.DBPool))
	guestService := guest.NewService(guest.NewPgxRepository(cfg.DBPool))

	// Booking Module
	bookingService := booking.NewService(
		booking.NewPgxRepository(cfg.DBPool),
		cabinService,
		guestService,
		settingService,
		BookingOptions(cfg.Booking),
	)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UploadMaxBytes: cfg.UploadMaxBytes,
		UserService:    userService,
		FileService:    fileService,
		CabinService:   cabinService,
		GuestService:   guestService,
		SettingService: settingService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}, nil
}

// BookingOptions maps the environment toggles onto the booking engine options.
func BookingOptions(bc config.BookingConfig) booking.Options {
	opts := booking.Options{
		PricingMode:       booking.PricingMode(bc.PricingMode),
		PreventOverlap:    bc.PreventOverlap,
		SettingsBreakfast: bc.SettingsBreakfast,
	}
	if bc.StrictTransitions {
		opts.Transitions = booking.StrictTransitions{}
	}
	return opts
}
