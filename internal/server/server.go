// Пакет server — HTTP-сервер Web Module с graceful shutdown.
// Без TLS — HTTP за CDN/обратным прокси, TLS termination снаружи.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/agasobanuye/web-module/internal/api/handlers"
	"github.com/agasobanuye/web-module/internal/config"
)

// Handlers — обработчики маршрутов сервера.
type Handlers struct {
	Site   *handlers.SiteHandler
	Health *handlers.HealthHandler
}

// Server — HTTP-сервер Web Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// middlewares — добавляются в порядке переданного среза
// (metrics, request id, logging).
func New(cfg *config.Config, logger *slog.Logger, h *Handlers, middlewares ...func(http.Handler) http.Handler) *Server {
	router := chi.NewRouter()

	// Применяем переданные middleware
	for _, mw := range middlewares {
		router.Use(mw)
	}

	// --- Страницы сайта ---

	router.Get("/", h.Site.Home)

	// --- Карты сайта и RSS ---

	router.Get("/sitemap.xml", h.Site.Sitemap)
	router.Get("/sitemap-videos-{n}.xml", h.Site.SitemapVideoChunk)
	router.Get("/sitemap-static.xml", h.Site.SitemapStatic)
	router.Get("/sitemap-categories.xml", h.Site.SitemapCategories)
	router.Get("/feed.xml", h.Site.Feed)
	router.Get("/robots.txt", h.Site.Robots)

	// --- JSON API ---
	// Read-only, открыт для браузерных клиентов с любых origin.

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/videos", h.Site.ListVideos)
	})

	// --- Health и метрики ---

	router.Get("/health/live", h.Health.HealthLive)
	router.Get("/health/ready", h.Health.HealthReady)
	router.Get("/metrics", h.Health.GetMetrics)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
