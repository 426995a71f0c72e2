// Пакет config — загрузка и валидация конфигурации Web Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Допустимые режимы аутентификации GitHub.
const (
	GitHubAuthNone  = "none"
	GitHubAuthToken = "token"
	GitHubAuthApp   = "app"
)

// Config содержит все параметры конфигурации Web Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- Сайт ---

	// Публичный базовый URL сайта (для sitemap, RSS, JSON-LD)
	SiteBaseURL string
	// Отображаемое имя сайта
	SiteName string
	// Каталог контент-репозитория с записями главной страницы
	ContentDir string
	// Каталоги категорий для карт сайта
	SitemapDirs []string
	// Количество записей в подборке одного типа на главной
	HomeSectionLimit int

	// --- GitHub ---

	// Базовый URL GitHub API
	GitHubAPIURL string
	// Владелец контент-репозитория
	GitHubOwner string
	// Имя контент-репозитория
	GitHubRepo string
	// Ветка контент-репозитория
	GitHubBranch string
	// Режим аутентификации (none, token, app)
	GitHubAuth string
	// Personal access token (режим token)
	GitHubToken string
	// App ID (режим app)
	GitHubAppID string
	// Installation ID (режим app)
	GitHubAppInstallationID string
	// Путь к PEM-файлу приватного ключа приложения (режим app)
	GitHubAppPrivateKeyPath string
	// Таймаут HTTP-запросов к GitHub
	GitHubTimeout time.Duration
	// User-Agent запросов к GitHub (обязателен для их API)
	UserAgent string

	// --- Ингестия ---

	// Количество одновременных скачиваний файлов каталога
	FetchConcurrency int
	// Размер LRU-кэша каталогов (записей)
	CacheSize int
	// TTL кэша каталогов (0 — кэш выключен)
	CacheTTL time.Duration

	// --- Dephealth ---

	// Имя группы в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей
	DephealthCheckInterval time.Duration
	// Лейбл isentry=yes для зависимостей (вершина графа — точка входа)
	DephealthIsEntry bool
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// WM_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("WM_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("WM_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("WM_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// WM_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("WM_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("WM_LOG_LEVEL: %w", err)
	}

	// WM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("WM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("WM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- HTTP Server Timeouts ---

	// WM_HTTP_READ_TIMEOUT — таймаут чтения (по умолчанию 30s)
	cfg.HTTPReadTimeout, err = getEnvDuration("WM_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("WM_HTTP_READ_TIMEOUT: %w", err)
	}

	// WM_HTTP_WRITE_TIMEOUT — таймаут записи (по умолчанию 60s)
	cfg.HTTPWriteTimeout, err = getEnvDuration("WM_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("WM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	// WM_HTTP_IDLE_TIMEOUT — таймаут простоя (по умолчанию 120s)
	cfg.HTTPIdleTimeout, err = getEnvDuration("WM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("WM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	// WM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("WM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("WM_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Сайт ---

	// WM_SITE_BASE_URL — публичный базовый URL сайта
	cfg.SiteBaseURL = strings.TrimRight(
		getEnvDefault("WM_SITE_BASE_URL", "https://agasobanuye.pages.dev"), "/")

	// WM_SITE_NAME — отображаемое имя сайта
	cfg.SiteName = getEnvDefault("WM_SITE_NAME", "Agasobanuye")

	// WM_CONTENT_DIR — каталог записей главной страницы
	cfg.ContentDir = getEnvDefault("WM_CONTENT_DIR", "content")

	// WM_SITEMAP_DIRS — каталоги категорий для карт сайта (через запятую)
	cfg.SitemapDirs = parseCSV(getEnvDefault("WM_SITEMAP_DIRS",
		"content/movies,content/tv-series,content/animations,content/documentaries"))
	if len(cfg.SitemapDirs) == 0 {
		return nil, fmt.Errorf("WM_SITEMAP_DIRS: список каталогов пуст")
	}

	// WM_HOME_SECTION_LIMIT — записей в подборке одного типа (по умолчанию 12)
	cfg.HomeSectionLimit, err = getEnvInt("WM_HOME_SECTION_LIMIT", 12)
	if err != nil {
		return nil, fmt.Errorf("WM_HOME_SECTION_LIMIT: %w", err)
	}
	if cfg.HomeSectionLimit < 1 {
		return nil, fmt.Errorf("WM_HOME_SECTION_LIMIT: значение должно быть положительным")
	}

	// --- GitHub ---

	// WM_GITHUB_API_URL — базовый URL GitHub API
	cfg.GitHubAPIURL = getEnvDefault("WM_GITHUB_API_URL", "https://api.github.com")

	// WM_GITHUB_OWNER — обязательный
	cfg.GitHubOwner, err = getEnvRequired("WM_GITHUB_OWNER")
	if err != nil {
		return nil, err
	}

	// WM_GITHUB_REPO — обязательный
	cfg.GitHubRepo, err = getEnvRequired("WM_GITHUB_REPO")
	if err != nil {
		return nil, err
	}

	// WM_GITHUB_BRANCH — ветка контент-репозитория (по умолчанию main)
	cfg.GitHubBranch = getEnvDefault("WM_GITHUB_BRANCH", "main")

	// WM_GITHUB_AUTH — режим аутентификации (по умолчанию none)
	cfg.GitHubAuth = getEnvDefault("WM_GITHUB_AUTH", GitHubAuthNone)
	switch cfg.GitHubAuth {
	case GitHubAuthNone:
		// публичный репозиторий, анонимный доступ
	case GitHubAuthToken:
		// WM_GITHUB_TOKEN — обязательный в режиме token
		cfg.GitHubToken, err = getEnvRequired("WM_GITHUB_TOKEN")
		if err != nil {
			return nil, err
		}
	case GitHubAuthApp:
		// WM_GITHUB_APP_ID, WM_GITHUB_APP_INSTALLATION_ID,
		// WM_GITHUB_APP_PRIVATE_KEY_PATH — обязательные в режиме app
		cfg.GitHubAppID, err = getEnvRequired("WM_GITHUB_APP_ID")
		if err != nil {
			return nil, err
		}
		cfg.GitHubAppInstallationID, err = getEnvRequired("WM_GITHUB_APP_INSTALLATION_ID")
		if err != nil {
			return nil, err
		}
		cfg.GitHubAppPrivateKeyPath, err = getEnvRequired("WM_GITHUB_APP_PRIVATE_KEY_PATH")
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("WM_GITHUB_AUTH: недопустимое значение %q, допустимые: none, token, app", cfg.GitHubAuth)
	}

	// WM_GITHUB_TIMEOUT — таймаут запросов к GitHub (по умолчанию 15s)
	cfg.GitHubTimeout, err = getEnvDuration("WM_GITHUB_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("WM_GITHUB_TIMEOUT: %w", err)
	}

	// WM_USER_AGENT — User-Agent запросов к GitHub
	cfg.UserAgent = getEnvDefault("WM_USER_AGENT", "web-module/"+Version)

	// --- Ингестия ---

	// WM_FETCH_CONCURRENCY — одновременных скачиваний (по умолчанию 5)
	cfg.FetchConcurrency, err = getEnvInt("WM_FETCH_CONCURRENCY", 5)
	if err != nil {
		return nil, fmt.Errorf("WM_FETCH_CONCURRENCY: %w", err)
	}
	if cfg.FetchConcurrency < 1 {
		return nil, fmt.Errorf("WM_FETCH_CONCURRENCY: значение должно быть положительным")
	}

	// WM_CACHE_SIZE — размер LRU-кэша каталогов (по умолчанию 32)
	cfg.CacheSize, err = getEnvInt("WM_CACHE_SIZE", 32)
	if err != nil {
		return nil, fmt.Errorf("WM_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("WM_CACHE_SIZE: значение должно быть положительным")
	}

	// WM_CACHE_TTL — TTL кэша каталогов (по умолчанию 0 — кэш выключен,
	// каждый запрос загружает каталог заново)
	cfg.CacheTTL, err = getEnvDuration("WM_CACHE_TTL", 0)
	if err != nil {
		return nil, fmt.Errorf("WM_CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("WM_CACHE_TTL: значение не может быть отрицательным")
	}

	// --- Dephealth ---

	// WM_DEPHEALTH_GROUP — имя группы в метриках topologymetrics
	cfg.DephealthGroup = getEnvDefault("WM_DEPHEALTH_GROUP", "web-module")

	// WM_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей
	// (по умолчанию 60s, щадит rate limit GitHub)
	cfg.DephealthCheckInterval, err = getEnvDuration("WM_DEPHEALTH_CHECK_INTERVAL", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("WM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// DEPHEALTH_ISENTRY — лейбл isentry=yes (без префикса модуля)
	cfg.DephealthIsEntry, err = getEnvBool("DEPHEALTH_ISENTRY", false)
	if err != nil {
		return nil, fmt.Errorf("DEPHEALTH_ISENTRY: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
