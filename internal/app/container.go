package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/locaux-booking-backend/internal/api"
	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
	"github.com/nekogravitycat/locaux-booking-backend/internal/blackout"
	"github.com/nekogravitycat/locaux-booking-backend/internal/file"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/locaux-booking-backend/internal/reservation"
	"github.com/nekogravitycat/locaux-booking-backend/internal/room"
	"github.com/nekogravitycat/locaux-booking-backend/internal/site"
	"github.com/nekogravitycat/locaux-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StorageDir   string

	Location                *time.Location
	EnforceBlackoutForAdmin bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Site Module
	siteService := site.NewService(site.NewPgxRepository(cfg.DBPool))

	// Room Module
	roomService := room.NewService(room.NewPgxRepository(cfg.DBPool), siteService)

	// File Module
	store, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return nil, err
	}
	fileService := file.NewService(file.NewRepository(cfg.DBPool), store)

	// Blackout Module
	blackoutService := blackout.NewService(blackout.NewPgxRepository(cfg.DBPool))

	// Audit Module
	auditRepo := audit.NewPgxRepository(cfg.DBPool)
	auditService := audit.NewService(auditRepo)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool, auditRepo)
	reservationService := reservation.NewService(reservationRepo, roomService, blackoutService, reservation.Options{
		Location:                cfg.Location,
		EnforceBlackoutForAdmin: cfg.EnforceBlackoutForAdmin,
	})

	router, err := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		UserService:        userService,
		SiteService:        siteService,
		RoomService:        roomService,
		FileService:        fileService,
		BlackoutService:    blackoutService,
		ReservationService: reservationService,
		AuditService:       auditService,
		JWTManager:         jwtManager,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
