// pages.go — обработчик главной страницы сайта.
// Режимы: подборки по типам (без параметров) и результаты поиска/фильтра
// (search, translator, type). Сбой ингестии отдаёт страницу ошибки
// с короткой директивой кэширования.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/agasobanuye/web-module/internal/render"
	"github.com/agasobanuye/web-module/internal/service"
)

// Home — GET /. Главная страница каталога.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("search")
	translator := q.Get("translator")
	contentType := q.Get("type")

	records, err := h.catalog.LoadDirectory(r.Context(), h.contentDir)
	if err != nil {
		h.logger.Error("Ошибка загрузки каталога для главной страницы",
			slog.String("error", err.Error()),
		)
		page := h.renderer.ErrorPage(http.StatusBadGateway,
			"Could not load the catalog. Please try again in a minute.")
		h.writePage(w, page, http.StatusBadGateway)
		return
	}

	data := render.HomeData{
		Query:       query,
		Translator:  translator,
		ContentType: contentType,
		Translators: service.DistinctTranslators(records),
	}

	if query != "" || translator != "" || contentType != "" {
		// Режим результатов: фильтры комбинируются
		results := service.FilterBySearch(records, query)
		if translator != "" {
			results = service.FilterByTranslatorSlug(results, translator)
		}
		if contentType != "" {
			results = service.FilterByContentType(results, contentType)
		}
		data.Filtered = true
		data.Results = service.SortByDateDesc(results)
	} else {
		// Режим главной: свежие подборки по типам
		data.Groups = service.GroupLatestByType(records, h.homeLimit)
	}

	page, err := h.renderer.HomePage(data)
	if err != nil {
		h.logger.Error("Ошибка рендеринга главной страницы",
			slog.String("error", err.Error()),
		)
		fallback := h.renderer.ErrorPage(http.StatusInternalServerError,
			"Something went wrong while building the page.")
		h.writePage(w, fallback, http.StatusInternalServerError)
		return
	}

	h.writePage(w, page, http.StatusOK)
}
