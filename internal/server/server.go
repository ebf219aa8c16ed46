package server

import (
	"fmt"
	"net/http"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/database"
	custommiddleware "inventory-api/internal/middleware"
	"inventory-api/internal/repository"
	"inventory-api/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(middleware.Recoverer)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware())

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		if health["status"] != "up" {
			custommiddleware.RespondWithJSON(w, http.StatusServiceUnavailable, health)
			return
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, health)
	})

	productRepo := repository.NewProductRepository(db.DB())
	productHandler := transport.NewProductHandler(productRepo, logger)
	productHandler.RegisterRoutes(router)

	// Anything the API does not claim comes from the static assets directory
	router.Handle("/*", http.FileServer(http.Dir(cfg.Server.StaticDir)))

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
			return err
		}
	}

	return nil
}
