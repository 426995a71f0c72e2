// videos.go — обработчик GET /api/v1/videos.
// JSON-листинг каталога с теми же параметрами фильтрации, что и главная
// страница (search, translator, type), плюс limit.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	apierrors "github.com/agasobanuye/web-module/internal/api/errors"
	"github.com/agasobanuye/web-module/internal/domain/model"
	"github.com/agasobanuye/web-module/internal/service"
)

// videoItem — API-представление записи каталога.
type videoItem struct {
	Title          string   `json:"title"`
	AltTitle       string   `json:"alt_title,omitempty"`
	Slug           string   `json:"slug"`
	ContentType    string   `json:"content_type"`
	Translator     string   `json:"translator"`
	TranslatorSlug string   `json:"translator_slug"`
	VideoURL       string   `json:"video_url,omitempty"`
	Poster         string   `json:"poster,omitempty"`
	Description    string   `json:"description,omitempty"`
	ReleaseYear    int      `json:"release_year,omitempty"`
	Genre          []string `json:"genre,omitempty"`
	Views          int      `json:"views"`
	Likes          int      `json:"likes"`
	UploadDate     string   `json:"upload_date,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	ISODuration    string   `json:"iso_duration,omitempty"`
}

// videosResponse — ответ листинга каталога.
type videosResponse struct {
	Items []videoItem `json:"items"`
	Total int         `json:"total"`
}

// ListVideos — GET /api/v1/videos.
// Параметры: search, translator, type, limit.
func (h *SiteHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Валидация limit до загрузки каталога
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			apierrors.ValidationError(w, "Параметр limit должен быть положительным целым")
			return
		}
		limit = n
	}

	records, err := h.catalog.LoadDirectory(r.Context(), h.contentDir)
	if err != nil {
		h.logger.Error("Ошибка загрузки каталога для API",
			slog.String("error", err.Error()),
		)
		apierrors.UpstreamError(w, "Репозиторий контента недоступен")
		return
	}

	results := service.FilterBySearch(records, q.Get("search"))
	if translator := q.Get("translator"); translator != "" {
		results = service.FilterByTranslatorSlug(results, translator)
	}
	if contentType := q.Get("type"); contentType != "" {
		results = service.FilterByContentType(results, contentType)
	}
	results = service.SortByDateDesc(results)

	total := len(results)
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	resp := videosResponse{
		Items: make([]videoItem, 0, len(results)),
		Total: total,
	}
	for _, rec := range results {
		resp.Items = append(resp.Items, toVideoItem(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// toVideoItem конвертирует domain-запись в API-представление.
func toVideoItem(rec *model.VideoRecord) videoItem {
	return videoItem{
		Title:          rec.Title,
		AltTitle:       rec.AltTitle,
		Slug:           rec.Slug,
		ContentType:    rec.ContentType,
		Translator:     rec.Translator,
		TranslatorSlug: rec.TranslatorSlug,
		VideoURL:       rec.VideoURL,
		Poster:         rec.Poster,
		Description:    rec.Description,
		ReleaseYear:    rec.ReleaseYear,
		Genre:          rec.Genre,
		Views:          rec.Views,
		Likes:          rec.Likes,
		UploadDate:     rec.UploadDate,
		Duration:       rec.Duration,
		ISODuration:    rec.ISODuration,
	}
}
