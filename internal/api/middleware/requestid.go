// requestid.go — middleware сквозного идентификатора запроса.
// Берёт X-Request-Id входящего запроса (CDN и прокси передают свой)
// или генерирует новый UUID; кладёт значение в контекст и заголовок ответа.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// headerRequestID — имя заголовка сквозного идентификатора.
const headerRequestID = "X-Request-Id"

// requestIDKey — ключ контекста для идентификатора запроса.
type requestIDKey struct{}

// RequestID возвращает middleware, присваивающий каждому запросу
// сквозной идентификатор.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = uuid.New().String()
			}

			w.Header().Set(headerRequestID, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext возвращает идентификатор запроса из контекста
// или пустую строку, если middleware не отработал.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
