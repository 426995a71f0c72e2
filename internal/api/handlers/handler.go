// handler.go — основной обработчик публичной HTTP-поверхности Web Module.
// Объединяет страницы сайта, карты сайта, RSS-ленту и JSON API каталога.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/agasobanuye/web-module/internal/domain/model"
	"github.com/agasobanuye/web-module/internal/render"
	"github.com/agasobanuye/web-module/internal/sitemap"
)

// CatalogLoader — загрузчик каталога видео (реализуется service.CatalogService).
type CatalogLoader interface {
	// LoadDirectory загружает и нормализует записи одного каталога.
	LoadDirectory(ctx context.Context, dir string) ([]*model.VideoRecord, error)
	// LoadCategories собирает пары {категория, слаг} по списку каталогов.
	LoadCategories(ctx context.Context, dirs []string) []model.CategorySlug
}

// SiteHandler — обработчик публичных маршрутов сайта.
type SiteHandler struct {
	catalog     CatalogLoader
	renderer    *render.Renderer
	sitemaps    *sitemap.Builder
	feed        *sitemap.FeedBuilder
	contentDir  string   // каталог записей главной страницы
	sitemapDirs []string // каталоги категорий для карт сайта
	homeLimit   int      // записей в подборке одного типа
	logger      *slog.Logger
}

// NewSiteHandler создаёт обработчик маршрутов сайта.
func NewSiteHandler(
	catalog CatalogLoader,
	renderer *render.Renderer,
	sitemaps *sitemap.Builder,
	feed *sitemap.FeedBuilder,
	contentDir string,
	sitemapDirs []string,
	homeLimit int,
	logger *slog.Logger,
) *SiteHandler {
	return &SiteHandler{
		catalog:     catalog,
		renderer:    renderer,
		sitemaps:    sitemaps,
		feed:        feed,
		contentDir:  contentDir,
		sitemapDirs: sitemapDirs,
		homeLimit:   homeLimit,
		logger:      logger.With(slog.String("component", "site_handler")),
	}
}

// --- Вспомогательные функции ---

// writePage записывает готовую страницу рендерера: тело, Content-Type
// и директиву кэширования.
func (h *SiteHandler) writePage(w http.ResponseWriter, page *render.Page, status int) {
	w.Header().Set("Content-Type", page.ContentType)
	w.Header().Set("Cache-Control", page.CacheControl)
	w.WriteHeader(status)
	_, _ = w.Write(page.Body)
}

// writeXML записывает XML-документ (карты сайта, RSS).
func (h *SiteHandler) writeXML(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
