// Пакет ingest — нормализация сырых контент-файлов в канонические
// записи каталога.
//
// Normalizer собирает model.VideoRecord из двух источников с приоритетом
// front-matter → значение из имени файла → значение по умолчанию.
// Производные поля (слаги, ISO-длительность, форматированные даты)
// вычисляются только при наличии исходного значения.
package ingest

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/agasobanuye/web-module/internal/domain/model"
	"github.com/agasobanuye/web-module/internal/frontmatter"
	"github.com/agasobanuye/web-module/internal/ghclient"
)

// filenameRe — шаблон имени контент-файла: [Title][ContentType][Translator].md.
var filenameRe = regexp.MustCompile(`^\[([^\[\]]+)\]\[([^\[\]]+)\]\[([^\[\]]+)\]\.md$`)

// notSpecified — авторский маркер отсутствующей длительности.
// Для него короткая форма не вычисляется.
const notSpecified = "Not specified"

// consumedKeys — поля front-matter, занятые типизированным ядром записи.
// Все прочие поля сохраняются в Extra без изменений.
var consumedKeys = map[string]bool{
	"title":       true,
	"slug":        true,
	"contentType": true,
	"translator":  true,
	"altTitle":    true,
	"description": true,
	"videoUrl":    true,
	"poster":      true,
	"releaseYear": true,
	"genre":       true,
	"views":       true,
	"likes":       true,
	"uploadDate":  true,
	"duration":    true,
	"isoDuration": true,
}

// ParseFilename извлекает название, тип контента и переводчика из имени
// файла. Возвращает ok=false, если имя не соответствует трёхскобочному
// шаблону или любая из частей пуста.
func ParseFilename(name string) (title, contentType, translator string, ok bool) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", "", false
	}
	title = strings.TrimSpace(m[1])
	contentType = strings.TrimSpace(m[2])
	translator = strings.TrimSpace(m[3])
	if title == "" || contentType == "" || translator == "" {
		return "", "", "", false
	}
	return title, contentType, translator, true
}

// Normalizer — сборка канонических записей каталога.
type Normalizer struct {
	logger *slog.Logger

	// Now — источник текущего времени. Подменяется в тестах
	// для детерминированных относительных дат.
	Now func() time.Time
}

// NewNormalizer создаёт нормализатор.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	return &Normalizer{
		logger: logger.With(slog.String("component", "normalizer")),
		Now:    time.Now,
	}
}

// Normalize собирает VideoRecord из файла листинга и его front-matter.
// Возвращает ошибку только для имени файла вне трёхскобочного шаблона —
// такой файл записи не порождает и пропускается вызывающей стороной.
func (n *Normalizer) Normalize(file ghclient.RawFile, fm *frontmatter.Map) (*model.VideoRecord, error) {
	nameTitle, nameType, nameTranslator, ok := ParseFilename(file.Name)
	if !ok {
		return nil, fmt.Errorf("имя файла %q не соответствует шаблону [Title][ContentType][Translator].md", file.Name)
	}

	rec := &model.VideoRecord{
		Filename:    file.Name,
		DownloadURL: file.DownloadURL,
		HTMLURL:     file.HTMLURL,
	}

	// Идентичность и классификация: front-matter → имя файла
	rec.Title = firstNonEmpty(fm.GetString("title"), nameTitle)
	rec.Slug = Slugify(firstNonEmpty(fm.GetString("slug"), rec.Title))

	contentType := firstNonEmpty(fm.GetString("contentType"), nameType)
	rec.ContentType = strings.ToUpper(strings.TrimSpace(contentType))

	rec.Translator = firstNonEmpty(fm.GetString("translator"), nameTranslator)
	rec.TranslatorSlug = Slugify(rec.Translator)

	// Описательные поля
	rec.AltTitle = fm.GetString("altTitle")
	rec.Description = fm.GetString("description")
	rec.VideoURL = fm.GetString("videoUrl")
	rec.Poster = fm.GetString("poster")
	rec.ReleaseYear = fm.GetInt("releaseYear")
	rec.Genre = fm.GetList("genre")

	// Вовлечённость: отрицательные значения схлопываются в 0
	rec.Views = max(fm.GetInt("views"), 0)
	rec.Likes = max(fm.GetInt("likes"), 0)

	// Дата загрузки: при отсутствии — момент ингестии
	now := n.Now()
	rec.UploadDate = fm.GetString("uploadDate")
	if rec.UploadDate == "" {
		rec.UploadDate = now.UTC().Format(time.RFC3339)
	}
	if t, err := parseUploadDate(rec.UploadDate); err == nil {
		rec.UploadedAt = t
		rec.FormattedDate = formatLongDate(t)
		rec.ShortDate = relativeDate(now, t)
	} else {
		n.logger.Debug("Дата uploadDate не разобрана",
			slog.String("file", file.Name),
			slog.String("value", rec.UploadDate),
		)
	}

	// Длительность: isoDuration из front-matter имеет приоритет
	rec.Duration = fm.GetString("duration")
	rec.ISODuration = fm.GetString("isoDuration")
	if rec.ISODuration == "" && rec.Duration != "" {
		rec.ISODuration = ISODuration(rec.Duration)
	}
	if rec.Duration != "" && rec.Duration != notSpecified {
		rec.FormattedDuration = HumanDuration(rec.Duration)
	}

	// Открытая схема: нераспознанные поля сохраняются как есть
	for _, key := range fm.Keys() {
		if consumedKeys[key] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		if v, ok := fm.Get(key); ok {
			rec.Extra[key] = v
		}
	}

	return rec, nil
}

// firstNonEmpty возвращает первую непустую строку.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
