// sitemap.go — обработчики карт сайта и robots.txt.
// /sitemap.xml отдаёт плоскую карту или индекс в зависимости от размера
// каталога; чанки и фиксированные карты доступны по своим маршрутам всегда.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agasobanuye/web-module/internal/sitemap"
)

// contentTypeXML — Content-Type карт сайта.
const contentTypeXML = "application/xml; charset=utf-8"

// Sitemap — GET /sitemap.xml. Плоская карта или индекс по порогу.
func (h *SiteHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.LoadCategories(r.Context(), h.sitemapDirs)

	var (
		data []byte
		err  error
	)
	if sitemap.NeedsIndex(len(entries)) {
		data, err = h.sitemaps.Index(len(entries))
	} else {
		data, err = h.sitemaps.Flat(entries)
	}
	if err != nil {
		h.logger.Error("Ошибка генерации sitemap", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeXML(w, contentTypeXML, data)
}

// SitemapStatic — GET /sitemap-static.xml. Главная и статические страницы.
func (h *SiteHandler) SitemapStatic(w http.ResponseWriter, _ *http.Request) {
	data, err := h.sitemaps.Static()
	if err != nil {
		h.logger.Error("Ошибка генерации sitemap-static", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeXML(w, contentTypeXML, data)
}

// SitemapCategories — GET /sitemap-categories.xml. Страницы категорий.
func (h *SiteHandler) SitemapCategories(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.LoadCategories(r.Context(), h.sitemapDirs)

	data, err := h.sitemaps.Categories(entries)
	if err != nil {
		h.logger.Error("Ошибка генерации sitemap-categories", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeXML(w, contentTypeXML, data)
}

// SitemapVideoChunk — GET /sitemap-videos-{n}.xml. Видео-чанк n (с 1).
func (h *SiteHandler) SitemapVideoChunk(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		http.NotFound(w, r)
		return
	}

	entries := h.catalog.LoadCategories(r.Context(), h.sitemapDirs)

	data, err := h.sitemaps.VideoChunk(entries, n)
	if err != nil {
		// Чанк вне диапазона — для краулера это несуществующая карта
		h.logger.Debug("Запрошен несуществующий видео-чанк",
			slog.Int("chunk", n),
			slog.Int("entries", len(entries)),
		)
		http.NotFound(w, r)
		return
	}
	h.writeXML(w, contentTypeXML, data)
}

// Robots — GET /robots.txt. Ссылается на карту сайта.
func (h *SiteHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.sitemaps.Robots())
}
