// feed.go — обработчик RSS-ленты последних переводов.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/agasobanuye/web-module/internal/service"
)

// feedItemLimit — количество записей в RSS-ленте.
const feedItemLimit = 20

// Feed — GET /feed.xml. RSS 2.0 с последними переводами каталога.
func (h *SiteHandler) Feed(w http.ResponseWriter, r *http.Request) {
	records, err := h.catalog.LoadDirectory(r.Context(), h.contentDir)
	if err != nil {
		h.logger.Error("Ошибка загрузки каталога для RSS", slog.String("error", err.Error()))
		http.Error(w, "upstream error", http.StatusBadGateway)
		return
	}

	latest := service.SortByDateDesc(records)
	if len(latest) > feedItemLimit {
		latest = latest[:feedItemLimit]
	}

	data, err := h.feed.RSS(latest)
	if err != nil {
		h.logger.Error("Ошибка генерации RSS", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeXML(w, "application/rss+xml; charset=utf-8", data)
}
