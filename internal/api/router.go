package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/auth"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/booking"
	bookingHttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/booking/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin"
	cabinHttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/file"
	fileHttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/file/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest"
	guestHttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting"
	settingHttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/setting/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/user"
	userHttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/user/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UploadMaxBytes int64

	UserService    user.Service
	FileService    file.Service
	CabinService   cabin.Service
	GuestService   guest.Service
	SettingService setting.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// devOrigins are the dashboard dev servers allowed outside production.
var devOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://localhost:8081",
}

// NewRouter assembles middleware and registers every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), RecoveryJSON())
	r.Use(cors.New(corsConfig(cfg)))
	r.NoRoute(NotFound)

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	fileHandler := fileHttp.NewHandler(cfg.FileService)
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	cabinHandler := cabinHttp.NewHandler(cfg.CabinService, fileHandler, cfg.UploadMaxBytes)
	guestHandler := guestHttp.NewHandler(cfg.GuestService, fileHandler, cfg.UploadMaxBytes)
	settingHandler := settingHttp.NewHandler(cfg.SettingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler)
		cabinHttp.RegisterRoutes(v1, cabinHandler, authMiddleware)
		guestHttp.RegisterRoutes(v1, guestHandler, authMiddleware)
		settingHttp.RegisterRoutes(v1, settingHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	config.AllowOrigins = devOrigins
	if cfg.IsProduction {
		config.AllowOrigins = splitOrigins(cfg.ProdOrigins)
		if len(config.AllowOrigins) == 0 {
			// same-origin only
			config.AllowOriginFunc = func(string) bool { return false }
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return config
}

func splitOrigins(v string) []string {
	var origins []string
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
