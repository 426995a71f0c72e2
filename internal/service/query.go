// query.go — чистые операции выборки над загруженным каталогом.
// Каталог целиком живёт в памяти запроса, поэтому фильтры и группировки —
// обычные функции над срезом записей, без персистентности и пагинации.
package service

import (
	"sort"
	"strings"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// TypeGroup — подборка «свежих» записей одного типа контента.
type TypeGroup struct {
	// Type — тип контента (MOVIE, TV-SERIES, ...)
	Type string
	// Records — записи типа, отсортированные по дате загрузки (новые первые)
	Records []*model.VideoRecord
}

// TranslatorStat — переводчик и количество его записей в каталоге.
type TranslatorStat struct {
	// Name — отображаемое имя переводчика
	Name string
	// Slug — слаг для фильтрующей ссылки
	Slug string
	// Count — количество записей переводчика
	Count int
}

// FilterBySearch возвращает записи, содержащие query как подстроку
// (без учёта регистра) в названии, альтернативном названии, описании,
// имени переводчика, жанрах или любом списковом поле открытой схемы.
// Пустой запрос возвращает исходный срез без изменений.
func FilterBySearch(records []*model.VideoRecord, query string) []*model.VideoRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	var out []*model.VideoRecord
	for _, rec := range records {
		if matchesQuery(rec, query) {
			out = append(out, rec)
		}
	}
	return out
}

// matchesQuery проверяет вхождение запроса в текстовые поля записи.
// query должен быть уже приведён к нижнему регистру.
func matchesQuery(rec *model.VideoRecord, query string) bool {
	for _, field := range []string{rec.Title, rec.AltTitle, rec.Description, rec.Translator} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, g := range rec.Genre {
		if strings.Contains(strings.ToLower(g), query) {
			return true
		}
	}
	// Списковые поля открытой схемы (tags и подобные)
	for _, v := range rec.Extra {
		list, ok := v.([]string)
		if !ok {
			continue
		}
		for _, item := range list {
			if strings.Contains(strings.ToLower(item), query) {
				return true
			}
		}
	}
	return false
}

// FilterByTranslatorSlug возвращает записи с точным совпадением слага
// переводчика.
func FilterByTranslatorSlug(records []*model.VideoRecord, slug string) []*model.VideoRecord {
	var out []*model.VideoRecord
	for _, rec := range records {
		if rec.TranslatorSlug == slug {
			out = append(out, rec)
		}
	}
	return out
}

// FilterByContentType возвращает записи указанного типа контента.
// Аргумент нормализуется к верхнему регистру перед сравнением —
// записи хранят тип уже каноническим.
func FilterByContentType(records []*model.VideoRecord, contentType string) []*model.VideoRecord {
	contentType = strings.ToUpper(strings.TrimSpace(contentType))
	var out []*model.VideoRecord
	for _, rec := range records {
		if rec.ContentType == contentType {
			out = append(out, rec)
		}
	}
	return out
}

// GroupLatestByType разбивает каталог на подборки по типу контента.
// Внутри каждой подборки записи отсортированы по дате загрузки (новые
// первые) и усечены до limit. Порядок подборок: MOVIE, затем TV-SERIES,
// затем остальные типы в порядке первого появления в каталоге.
func GroupLatestByType(records []*model.VideoRecord, limit int) []*TypeGroup {
	byType := make(map[string][]*model.VideoRecord)
	var seen []string
	for _, rec := range records {
		if _, ok := byType[rec.ContentType]; !ok {
			seen = append(seen, rec.ContentType)
		}
		byType[rec.ContentType] = append(byType[rec.ContentType], rec)
	}

	// Фиксированные типы идут первыми, остальные — в порядке появления
	order := make([]string, 0, len(seen))
	for _, t := range []string{"MOVIE", "TV-SERIES"} {
		if _, ok := byType[t]; ok {
			order = append(order, t)
		}
	}
	for _, t := range seen {
		if t == "MOVIE" || t == "TV-SERIES" {
			continue
		}
		order = append(order, t)
	}

	groups := make([]*TypeGroup, 0, len(order))
	for _, t := range order {
		recs := SortByDateDesc(byType[t])
		if limit > 0 && len(recs) > limit {
			recs = recs[:limit]
		}
		groups = append(groups, &TypeGroup{Type: t, Records: recs})
	}
	return groups
}

// DistinctTranslators собирает уникальных переводчиков каталога.
// Сортировка: по количеству записей (больше первые), при равенстве —
// по имени.
func DistinctTranslators(records []*model.VideoRecord) []TranslatorStat {
	bySlug := make(map[string]*TranslatorStat)
	for _, rec := range records {
		if rec.TranslatorSlug == "" {
			continue
		}
		stat, ok := bySlug[rec.TranslatorSlug]
		if !ok {
			stat = &TranslatorStat{Name: rec.Translator, Slug: rec.TranslatorSlug}
			bySlug[rec.TranslatorSlug] = stat
		}
		stat.Count++
	}

	out := make([]TranslatorStat, 0, len(bySlug))
	for _, stat := range bySlug {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SortByDateDesc возвращает копию среза, отсортированную по дате загрузки
// (новые первые). Записи без разобранной даты уходят в конец; порядок
// листинга сохраняется для равных дат.
func SortByDateDesc(records []*model.VideoRecord) []*model.VideoRecord {
	out := make([]*model.VideoRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}
