// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinereserve/internal/auditoriums"
	"cinereserve/internal/auth"
	"cinereserve/internal/genres"
	"cinereserve/internal/movies"
	"cinereserve/internal/notifications"
	"cinereserve/internal/reports"
	"cinereserve/internal/reservations"
	"cinereserve/internal/shared/config"
	"cinereserve/internal/shared/database"
	"cinereserve/internal/showtimes"
	"cinereserve/internal/users"
	"cinereserve/pkg/cache"
	"cinereserve/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	publisher notifications.Publisher
	seatLock  *reservations.SeatLockManager
	log       *logger.Logger
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheSvc cache.Service, publisher notifications.Publisher, seatLock *reservations.SeatLockManager, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cacheSvc,
		publisher: publisher,
		seatLock:  seatLock,
		log:       log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupGenreRoutes(api)
		r.setupMovieRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupReservationRoutes(api)
		r.setupReportRoutes(api)
		r.setupUserRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinereserve-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinereserve-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupGenreRoutes(rg *gin.RouterGroup) {
	genreRepo := genres.NewRepository(r.db.GetPostgreSQL())
	genreService := genres.NewService(genreRepo, r.cache, r.config.Redis.CacheTTL)
	genreController := genres.NewController(genreService)

	genres.SetupGenreRoutes(rg, genreController, r.config)
}

func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo, r.cache, r.config.Redis.CacheTTL)
	movieController := movies.NewController(movieService)

	movies.SetupMovieRoutes(rg, movieController, r.config)
}

func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	auditoriumRepo := auditoriums.NewRepository(r.db.GetPostgreSQL())
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo, auditoriumRepo)
	showtimeController := showtimes.NewController(showtimeService)

	showtimes.SetupShowtimeRoutes(rg, showtimeController, r.config)
}

func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	reservationService := reservations.NewService(reservationRepo, r.seatLock, r.publisher, r.log)
	reservationController := reservations.NewController(reservationService)

	reservations.SetupReservationRoutes(rg, reservationController, r.config)
}

func (r *Router) setupReportRoutes(rg *gin.RouterGroup) {
	reportRepo := reports.NewRepository(r.db.GetPostgreSQL())
	reportService := reports.NewService(reportRepo)
	reportController := reports.NewController(reportService)

	reports.SetupReportRoutes(rg, reportController, r.config)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, userController, r.config)
}
