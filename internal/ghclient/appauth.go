// appauth.go — аутентификация GitHub App.
// Подписывает app JWT (RS256) ключом приложения и обменивает его на
// installation token. Токен кэшируется до истечения (thread-safe),
// повторный запрос выполняется с запасом до срока действия.
package ghclient

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// appJWTLifetime — срок действия app JWT (максимум GitHub — 10 минут).
const appJWTLifetime = 9 * time.Minute

// tokenSafetyMargin — запас до истечения installation token,
// после которого токен считается устаревшим.
const tokenSafetyMargin = time.Minute

// tokenInfo — закэшированный installation token с временем истечения.
type tokenInfo struct {
	accessToken string
	expiresAt   time.Time
}

// AppAuth — обмен app JWT на installation token GitHub App.
type AppAuth struct {
	httpClient     *http.Client
	apiURL         string
	appID          string
	installationID string
	privateKey     *rsa.PrivateKey
	userAgent      string
	logger         *slog.Logger

	// Кэш installation token (thread-safe)
	mu    sync.RWMutex
	token *tokenInfo
}

// NewAppAuth создаёт обменник токенов GitHub App.
// privateKeyPath — путь к PEM-файлу приватного ключа приложения.
func NewAppAuth(
	apiURL string,
	appID string,
	installationID string,
	privateKeyPath string,
	userAgent string,
	timeout time.Duration,
	logger *slog.Logger,
) (*AppAuth, error) {
	keyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("чтение приватного ключа GitHub App: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, fmt.Errorf("разбор приватного ключа GitHub App: %w", err)
	}

	return &AppAuth{
		httpClient:     &http.Client{Timeout: timeout},
		apiURL:         strings.TrimRight(apiURL, "/"),
		appID:          appID,
		installationID: installationID,
		privateKey:     privateKey,
		userAgent:      userAgent,
		logger:         logger.With(slog.String("component", "github_app_auth")),
	}, nil
}

// Token возвращает installation token для авторизации запросов.
// Использует кэш: пока токен валиден (с запасом), возвращается
// закэшированный; иначе подписывается новый app JWT и выполняется обмен.
func (a *AppAuth) Token(ctx context.Context) (string, error) {
	// Проверяем кэш (read lock)
	a.mu.RLock()
	if a.token != nil && time.Now().Before(a.token.expiresAt) {
		token := a.token.accessToken
		a.mu.RUnlock()
		return token, nil
	}
	a.mu.RUnlock()

	// Запрашиваем новый токен (write lock)
	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check после получения write lock
	if a.token != nil && time.Now().Before(a.token.expiresAt) {
		return a.token.accessToken, nil
	}

	return a.requestToken(ctx)
}

// requestToken подписывает app JWT и обменивает его на installation token.
// POST /app/installations/{installation_id}/access_tokens
// Вызывается под write lock.
func (a *AppAuth) requestToken(ctx context.Context) (string, error) {
	appJWT, err := a.signAppJWT()
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/app/installations/%s/access_tokens", a.apiURL, a.installationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("создание запроса access_tokens: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+appJWT)
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("запрос installation token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("GitHub вернул статус %d для access_tokens: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("декодирование installation token: %w", err)
	}
	if tokenResp.Token == "" {
		return "", fmt.Errorf("пустой token в ответе GitHub")
	}

	expiresAt, err := time.Parse(time.RFC3339, tokenResp.ExpiresAt)
	if err != nil {
		// Нет срока — перевыпускаем через срок жизни app JWT
		expiresAt = time.Now().Add(appJWTLifetime)
	}

	a.token = &tokenInfo{
		accessToken: tokenResp.Token,
		expiresAt:   expiresAt.Add(-tokenSafetyMargin),
	}

	a.logger.Debug("Installation token получен",
		slog.String("expires_at", tokenResp.ExpiresAt),
	)

	return tokenResp.Token, nil
}

// signAppJWT подписывает короткоживущий app JWT (RS256).
// iat сдвинут на минуту назад от возможного рассинхрона часов.
func (a *AppAuth) signAppJWT() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTLifetime)),
		Issuer:    a.appID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.privateKey)
	if err != nil {
		return "", fmt.Errorf("подпись app JWT: %w", err)
	}
	return signed, nil
}
