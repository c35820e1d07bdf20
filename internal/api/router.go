package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
	"github.com/nekogravitycat/locaux-booking-backend/internal/blackout"
	blackoutHttp "github.com/nekogravitycat/locaux-booking-backend/internal/blackout/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/file"
	fileHttp "github.com/nekogravitycat/locaux-booking-backend/internal/file/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/logger"
	"github.com/nekogravitycat/locaux-booking-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/locaux-booking-backend/internal/reservation/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/locaux-booking-backend/internal/room/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/site"
	siteHttp "github.com/nekogravitycat/locaux-booking-backend/internal/site/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/locaux-booking-backend/internal/user/http"
)

// Config carries the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService        user.Service
	SiteService        site.Service
	RoomService        room.Service
	FileService        file.Service
	BlackoutService    blackout.Service
	ReservationService reservation.Service
	AuditService       audit.Service
	JWTManager         *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, auth) and registers every module's routes.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := reservationHttp.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(logger.Middleware(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
		if len(corsConfig.AllowOrigins) == 0 {
			return nil, errors.New("PROD_ORIGINS must list at least one origin in production")
		}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	roleMiddleware := ResolveRole(cfg.UserService)
	adminMiddleware := RequireAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	siteHandler := siteHttp.NewHandler(cfg.SiteService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, fileHandler)
	blackoutHandler := blackoutHttp.NewHandler(cfg.BlackoutService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService, cfg.AuditService)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		siteHttp.RegisterRoutes(v1, siteHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
		blackoutHttp.RegisterRoutes(v1, blackoutHandler, authMiddleware, adminMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, roleMiddleware, adminMiddleware)
	}

	return r, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
