// Точка входа Web Module — публичный веб-фасад каталога Agasobanuye.
// Загружает конфигурацию, создаёт GitHub клиент с выбранным режимом
// аутентификации, сервис каталога с LRU-кэшем, рендерер страниц и
// генераторы sitemap/RSS, запускает мониторинг зависимостей
// (topologymetrics) и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/agasobanuye/web-module/internal/api/handlers"
	"github.com/agasobanuye/web-module/internal/api/middleware"
	"github.com/agasobanuye/web-module/internal/config"
	"github.com/agasobanuye/web-module/internal/ghclient"
	"github.com/agasobanuye/web-module/internal/ingest"
	"github.com/agasobanuye/web-module/internal/render"
	"github.com/agasobanuye/web-module/internal/server"
	"github.com/agasobanuye/web-module/internal/service"
	"github.com/agasobanuye/web-module/internal/sitemap"
)

func main() {
	// .env опционален — в кластере конфигурация приходит из окружения
	_ = godotenv.Load()

	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Web Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("content_repo", cfg.GitHubOwner+"/"+cfg.GitHubRepo),
	)

	// Предупреждение о дефолтном значении topologymetrics
	if os.Getenv("WM_DEPHEALTH_GROUP") == "" {
		logger.Warn("WM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Источник токена GitHub по режиму аутентификации
	var tokens ghclient.TokenProvider
	switch cfg.GitHubAuth {
	case config.GitHubAuthToken:
		tokens = ghclient.StaticTokenProvider(cfg.GitHubToken)
		logger.Info("GitHub аутентификация: personal access token")
	case config.GitHubAuthApp:
		appAuth, appErr := ghclient.NewAppAuth(
			cfg.GitHubAPIURL,
			cfg.GitHubAppID,
			cfg.GitHubAppInstallationID,
			cfg.GitHubAppPrivateKeyPath,
			cfg.UserAgent,
			cfg.GitHubTimeout,
			logger,
		)
		if appErr != nil {
			logger.Error("Ошибка инициализации GitHub App", slog.String("error", appErr.Error()))
			os.Exit(1)
		}
		tokens = appAuth.Token
		logger.Info("GitHub аутентификация: GitHub App",
			slog.String("app_id", cfg.GitHubAppID),
		)
	default:
		// анонимный доступ к публичному репозиторию
		logger.Info("GitHub аутентификация: отключена")
	}

	// 4. GitHub клиент контент-репозитория
	ghClient := ghclient.New(
		cfg.GitHubAPIURL,
		cfg.GitHubOwner,
		cfg.GitHubRepo,
		cfg.GitHubBranch,
		cfg.UserAgent,
		cfg.GitHubTimeout,
		tokens,
		logger,
	)

	// 5. Нормализатор front matter → записи каталога
	normalizer := ingest.NewNormalizer(logger)

	// 6. LRU-кэш каталогов (опционально)
	var cache *service.CacheService
	if cfg.CacheTTL > 0 {
		cache = service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)
		logger.Info("Кэш каталогов включен",
			slog.Int("size", cfg.CacheSize),
			slog.String("ttl", cfg.CacheTTL.String()),
		)
	} else {
		logger.Info("Кэш каталогов выключен (WM_CACHE_TTL=0) — каждый запрос загружает каталог заново")
	}

	// 7. Сервис каталога
	catalog := service.NewCatalogService(ghClient, normalizer, cache, cfg.FetchConcurrency, logger)

	// 8. Рендерер страниц и генераторы sitemap/RSS
	renderer := render.NewRenderer(cfg.SiteName)
	sitemaps := sitemap.NewBuilder(cfg.SiteBaseURL)
	feed := sitemap.NewFeedBuilder(cfg.SiteBaseURL, cfg.SiteName)

	// 9. API handlers
	siteHandler := handlers.NewSiteHandler(
		catalog,
		renderer,
		sitemaps,
		feed,
		cfg.ContentDir,
		cfg.SitemapDirs,
		cfg.HomeSectionLimit,
		logger,
	)
	healthHandler := handlers.NewHealthHandler(ghClient)

	// 10. topologymetrics — мониторинг зависимости GitHub API
	ctx := context.Background()
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"web-module",
		cfg.DephealthGroup,
		cfg.GitHubAPIURL,
		cfg.DephealthCheckInterval,
		cfg.DephealthIsEntry,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			defer dephealthSvc.Stop()
		}
	}

	// 11. HTTP-сервер с middleware (порядок: metrics → request id → logging)
	srv := server.New(cfg, logger,
		&server.Handlers{
			Site:   siteHandler,
			Health: healthHandler,
		},
		middleware.MetricsMiddleware(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
	)

	// 12. Запуск сервера (блокирующий вызов с graceful shutdown)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Web Module остановлен")
}
