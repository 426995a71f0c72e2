// Пакет ghclient — HTTP-клиент GitHub Contents API.
// Листинг директорий контент-репозитория, скачивание raw-файлов
// и проверка доступности API для readiness probe.
package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// readinessTimeout — таймаут проверки доступности API из readiness probe.
const readinessTimeout = 5 * time.Second

// RawFile — один файл из листинга директории контент-репозитория.
type RawFile struct {
	// Name — имя файла (шаблон [Title][ContentType][Translator].md)
	Name string `json:"name"`
	// Path — путь файла внутри репозитория
	Path string `json:"path"`
	// Type — тип записи (file, dir)
	Type string `json:"type"`
	// DownloadURL — прямая ссылка на raw-содержимое
	DownloadURL string `json:"download_url"`
	// HTMLURL — ссылка на файл в веб-интерфейсе GitHub
	HTMLURL string `json:"html_url"`
}

// TokenProvider — источник bearer-токена для авторизации запросов.
// nil означает анонимный доступ (публичный репозиторий).
type TokenProvider func(ctx context.Context) (string, error)

// StaticTokenProvider возвращает провайдер с фиксированным токеном
// (personal access token из конфигурации).
func StaticTokenProvider(token string) TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Client — клиент GitHub Contents API одного контент-репозитория.
type Client struct {
	httpClient *http.Client
	apiURL     string
	owner      string
	repo       string
	branch     string
	userAgent  string
	tokens     TokenProvider
	logger     *slog.Logger
}

// New создаёт GitHub клиент.
// apiURL — базовый URL API (например, https://api.github.com).
// tokens — источник токена авторизации (nil — анонимный доступ).
func New(
	apiURL string,
	owner string,
	repo string,
	branch string,
	userAgent string,
	timeout time.Duration,
	tokens TokenProvider,
	logger *slog.Logger,
) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     strings.TrimRight(apiURL, "/"),
		owner:      owner,
		repo:       repo,
		branch:     branch,
		userAgent:  userAgent,
		tokens:     tokens,
		logger:     logger.With(slog.String("component", "github_client")),
	}
}

// ListDir возвращает листинг директории контент-репозитория
// в порядке, отдаваемом GitHub.
// GET /repos/{owner}/{repo}/contents/{dir}?ref={branch}
func (c *Client) ListDir(ctx context.Context, dir string) ([]RawFile, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiURL, c.owner, c.repo, strings.Trim(dir, "/"), url.QueryEscape(c.branch))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса ListDir: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос листинга %s: %w", dir, err)
	}
	defer resp.Body.Close()

	c.logRateLimit(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GitHub вернул статус %d для %s: %s", resp.StatusCode, dir, string(body))
	}

	var files []RawFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("декодирование листинга %s: %w", dir, err)
	}

	c.logger.Debug("Листинг директории получен",
		slog.String("dir", dir),
		slog.Int("entries", len(files)),
	)

	return files, nil
}

// FetchFile скачивает raw-содержимое файла по download_url из листинга.
func (c *Client) FetchFile(ctx context.Context, downloadURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("создание запроса FetchFile: %w", err)
	}
	if err := c.authorize(ctx, req); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("скачивание %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub вернул статус %d для %s", resp.StatusCode, downloadURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("чтение содержимого %s: %w", downloadURL, err)
	}

	return string(body), nil
}

// CheckReady проверяет доступность GitHub API для readiness probe.
// Возвращает статус ("ok", "degraded", "fail") и сообщение.
func (c *Client) CheckReady() (status, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), readinessTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/", http.NoBody)
	if err != nil {
		return "fail", fmt.Sprintf("создание запроса: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "fail", fmt.Sprintf("GitHub API недоступен: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 500:
		return "fail", fmt.Sprintf("GitHub API вернул статус %d", resp.StatusCode)
	case resp.StatusCode == http.StatusForbidden:
		return "degraded", "GitHub API ограничил запросы (rate limit)"
	default:
		return "ok", ""
	}
}

// authorize проставляет User-Agent и Authorization заголовки запроса.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	req.Header.Set("User-Agent", c.userAgent)

	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("получение токена GitHub: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// logRateLimit пишет остаток квоты GitHub API в debug-лог.
func (c *Client) logRateLimit(resp *http.Response) {
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		c.logger.Debug("Квота GitHub API",
			slog.String("remaining", remaining),
		)
	}
}
