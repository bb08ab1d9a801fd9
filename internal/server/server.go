package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aved-sa/aved-web/internal/api/handlers"
	"github.com/aved-sa/aved-web/internal/api/middleware"
	"github.com/aved-sa/aved-web/internal/api/views"
	"github.com/aved-sa/aved-web/internal/config"
	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/server/routes"
	"github.com/aved-sa/aved-web/internal/service"
	"github.com/aved-sa/aved-web/internal/tasks"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router     *gin.Engine
	cfg        *config.Config
	httpServer *http.Server
	warmer     *tasks.ContentWarmer
	logger     *logging.Logger
}

// NewServer creates a new server instance with every route wired
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Cache == nil || deps.Backend == nil {
		return nil, errors.New("cache and backend are required")
	}
	if deps.Recaptcha == nil {
		deps.Recaptcha = service.NewRecaptchaService(cfg.RecaptchaSecretKey, cfg.RecaptchaMinScore)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}
	router.HTMLRender = renderer

	logger := logging.GetLogger()
	routes.SetupGlobalMiddleware(router, cfg, logger)

	router.StaticFS("/static", http.FS(views.Static()))
	if imagesDir := filepath.Join(cfg.PublicDir, "images"); dirExists(imagesDir) {
		router.Static("/images", imagesDir)
	}

	contentService := content.NewService(deps.Backend, deps.Cache, cfg.ContentCacheTTL, deps.Metrics)
	site := handlers.Site{
		RecaptchaSiteKey: cfg.RecaptchaSiteKey,
		Support: views.Support{
			Email:    cfg.Support.Email,
			Phones:   cfg.Support.Phones,
			Location: cfg.Support.Location,
			MapEmbed: template.URL(cfg.Support.MapEmbed),
		},
		SecureCookies: cfg.IsProduction(),
	}

	h := &routes.Handlers{
		Health: handlers.NewHealthHandler(deps.Cache),
		Pages:  handlers.NewPageHandler(contentService, site),
		Contact: handlers.NewContactHandler(handlers.ContactDeps{
			Submitter: deps.Backend,
			Content:   contentService,
			Guard:     service.NewSubmissionGuard(deps.Cache, cfg.SubmitGuardTTL),
			Recaptcha: deps.Recaptcha,
			Metrics:   deps.Metrics,
			Site:      site,
			Leads:     service.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramChatID),
		}),
		Content: handlers.NewContentHandler(contentService),
		Site:    site,
		Metrics: deps.Metrics.Handler(),
	}
	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		CSRF:       middleware.CSRFMiddleware(service.NewCSRFService(), cfg.IsProduction()),
		ContactRate: middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			RPS:   cfg.ContactRateRPS,
			Burst: cfg.ContactRateBurst,
		}),
	}
	routes.Setup(router, h, m)

	return &Server{
		router: router,
		cfg:    cfg,
		warmer: tasks.NewContentWarmer(contentService, cfg.ContentWarmInterval),
		logger: logger,
	}, nil
}

// Handler exposes the router, e.g. for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.warmer.Start()

	s.logger.Info("Starting server on port %s", s.cfg.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.warmer.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
