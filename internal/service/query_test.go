package service

import (
	"testing"
	"time"

	"github.com/agasobanuye/web-module/internal/domain/model"
	"github.com/agasobanuye/web-module/internal/ingest"
)

// queryBase — фиксированная точка отсчёта для дат в тестах выборок.
var queryBase = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// rec строит запись каталога для тестов выборок.
// daysAgo задаёт дату загрузки относительно queryBase.
func rec(title, contentType, translator string, daysAgo int) *model.VideoRecord {
	return &model.VideoRecord{
		Title:          title,
		Slug:           ingest.Slugify(title),
		ContentType:    contentType,
		Translator:     translator,
		TranslatorSlug: ingest.Slugify(translator),
		UploadedAt:     queryBase.AddDate(0, 0, -daysAgo),
	}
}

// --- Тесты фильтров ---

// TestFilterBySearch проверяет подстрочный поиск без учёта регистра.
func TestFilterBySearch(t *testing.T) {
	records := []*model.VideoRecord{
		rec("Spider-Man", "MOVIE", "Junior", 1),
		rec("The Lion King", "MOVIE", "Rocky", 2),
	}

	found := FilterBySearch(records, "spider")
	if len(found) != 1 {
		t.Fatalf("найдено %d записей по %q, ожидалась 1", len(found), "spider")
	}
	if found[0].Title != "Spider-Man" {
		t.Errorf("Title = %q, ожидался %q", found[0].Title, "Spider-Man")
	}

	if got := FilterBySearch(records, "batman"); len(got) != 0 {
		t.Errorf("найдено %d записей по %q, ожидалось 0", len(got), "batman")
	}
}

// TestFilterBySearch_Fields проверяет поиск по всем текстовым полям:
// альтернативное название, описание, переводчик, жанры, списковые
// поля открытой схемы.
func TestFilterBySearch_Fields(t *testing.T) {
	records := []*model.VideoRecord{
		{Title: "One", AltTitle: "Umurage"},
		{Title: "Two", Description: "heist thriller set in Kigali"},
		{Title: "Three", Translator: "Senior B"},
		{Title: "Four", Genre: []string{"Action", "Drama"}},
		{Title: "Five", Extra: map[string]any{"tags": []string{"classic", "oscar"}}},
	}

	cases := []struct {
		query string
		want  string
	}{
		{"umurage", "One"},
		{"kigali", "Two"},
		{"senior", "Three"},
		{"drama", "Four"},
		{"oscar", "Five"},
	}

	for _, tc := range cases {
		found := FilterBySearch(records, tc.query)
		if len(found) != 1 {
			t.Errorf("запрос %q: найдено %d записей, ожидалась 1", tc.query, len(found))
			continue
		}
		if found[0].Title != tc.want {
			t.Errorf("запрос %q: Title = %q, ожидался %q", tc.query, found[0].Title, tc.want)
		}
	}
}

// TestFilterBySearch_Empty проверяет, что пустой запрос возвращает всё.
func TestFilterBySearch_Empty(t *testing.T) {
	records := []*model.VideoRecord{
		rec("A", "MOVIE", "Junior", 1),
		rec("B", "MOVIE", "Junior", 2),
	}

	if got := FilterBySearch(records, ""); len(got) != 2 {
		t.Errorf("пустой запрос: записей = %d, ожидалось 2", len(got))
	}
	if got := FilterBySearch(records, "   "); len(got) != 2 {
		t.Errorf("пробельный запрос: записей = %d, ожидалось 2", len(got))
	}
}

// TestFilterByTranslatorSlug проверяет точный фильтр по слагу переводчика.
func TestFilterByTranslatorSlug(t *testing.T) {
	records := []*model.VideoRecord{
		rec("A", "MOVIE", "Junior Giti", 1),
		rec("B", "MOVIE", "Rocky", 2),
		rec("C", "MOVIE", "Junior Giti", 3),
	}

	found := FilterByTranslatorSlug(records, "junior-giti")
	if len(found) != 2 {
		t.Fatalf("записей = %d, ожидалось 2", len(found))
	}

	// Частичное совпадение не засчитывается
	if got := FilterByTranslatorSlug(records, "junior"); len(got) != 0 {
		t.Errorf("частичный слаг: записей = %d, ожидалось 0", len(got))
	}
}

// TestFilterByContentType проверяет фильтр по типу с нормализацией регистра.
func TestFilterByContentType(t *testing.T) {
	records := []*model.VideoRecord{
		rec("A", "MOVIE", "Junior", 1),
		rec("B", "TV-SERIES", "Junior", 2),
		rec("C", "MOVIE", "Rocky", 3),
	}

	if got := FilterByContentType(records, "MOVIE"); len(got) != 2 {
		t.Errorf("MOVIE: записей = %d, ожидалось 2", len(got))
	}
	// Аргумент в нижнем регистре нормализуется
	if got := FilterByContentType(records, "tv-series"); len(got) != 1 {
		t.Errorf("tv-series: записей = %d, ожидалась 1", len(got))
	}
	if got := FilterByContentType(records, "DOCUMENTARY"); len(got) != 0 {
		t.Errorf("DOCUMENTARY: записей = %d, ожидалось 0", len(got))
	}
}

// --- Тесты группировок ---

// TestGroupLatestByType проверяет разбиение по типам: порядок подборок,
// сортировку по дате и усечение до лимита.
func TestGroupLatestByType(t *testing.T) {
	records := []*model.VideoRecord{
		rec("Doc One", "DOCUMENTARY", "Junior", 5),
		rec("Old Movie", "MOVIE", "Junior", 10),
		rec("New Movie", "MOVIE", "Junior", 1),
		rec("Mid Movie", "MOVIE", "Junior", 4),
		rec("Series One", "TV-SERIES", "Rocky", 2),
	}

	groups := GroupLatestByType(records, 2)

	if len(groups) != 3 {
		t.Fatalf("групп = %d, ожидалось 3", len(groups))
	}

	// MOVIE и TV-SERIES первыми, остальные — в порядке появления
	wantOrder := []string{"MOVIE", "TV-SERIES", "DOCUMENTARY"}
	for i, want := range wantOrder {
		if groups[i].Type != want {
			t.Errorf("groups[%d].Type = %q, ожидался %q", i, groups[i].Type, want)
		}
	}

	// MOVIE усечён до 2, новые первые
	movies := groups[0].Records
	if len(movies) != 2 {
		t.Fatalf("MOVIE записей = %d, ожидалось 2 (limit)", len(movies))
	}
	if movies[0].Title != "New Movie" || movies[1].Title != "Mid Movie" {
		t.Errorf("MOVIE порядок = [%q, %q], ожидался [New Movie, Mid Movie]",
			movies[0].Title, movies[1].Title)
	}
}

// TestGroupLatestByType_NoLimit проверяет, что limit <= 0 не усекает.
func TestGroupLatestByType_NoLimit(t *testing.T) {
	records := []*model.VideoRecord{
		rec("A", "MOVIE", "Junior", 1),
		rec("B", "MOVIE", "Junior", 2),
		rec("C", "MOVIE", "Junior", 3),
	}

	groups := GroupLatestByType(records, 0)
	if len(groups) != 1 {
		t.Fatalf("групп = %d, ожидалась 1", len(groups))
	}
	if len(groups[0].Records) != 3 {
		t.Errorf("записей = %d, ожидалось 3 (без усечения)", len(groups[0].Records))
	}
}

// TestDistinctTranslators проверяет сбор уникальных переводчиков
// с сортировкой по количеству записей.
func TestDistinctTranslators(t *testing.T) {
	records := []*model.VideoRecord{
		rec("A", "MOVIE", "Junior", 1),
		rec("B", "MOVIE", "Rocky", 2),
		rec("C", "MOVIE", "Junior", 3),
		rec("D", "MOVIE", "Junior", 4),
		rec("E", "MOVIE", "Aba", 5),
	}

	stats := DistinctTranslators(records)
	if len(stats) != 3 {
		t.Fatalf("переводчиков = %d, ожидалось 3", len(stats))
	}

	if stats[0].Name != "Junior" || stats[0].Count != 3 {
		t.Errorf("stats[0] = %q/%d, ожидался Junior/3", stats[0].Name, stats[0].Count)
	}
	// При равном количестве — по имени
	if stats[1].Name != "Aba" {
		t.Errorf("stats[1].Name = %q, ожидался %q (tie-break по имени)", stats[1].Name, "Aba")
	}
	if stats[1].Slug != "aba" {
		t.Errorf("stats[1].Slug = %q, ожидался %q", stats[1].Slug, "aba")
	}
}

// TestSortByDateDesc проверяет сортировку по дате без мутации исходного среза.
func TestSortByDateDesc(t *testing.T) {
	records := []*model.VideoRecord{
		rec("Old", "MOVIE", "Junior", 10),
		rec("New", "MOVIE", "Junior", 1),
		{Title: "NoDate", ContentType: "MOVIE"}, // нулевая дата — в конец
	}

	sorted := SortByDateDesc(records)

	if sorted[0].Title != "New" || sorted[1].Title != "Old" || sorted[2].Title != "NoDate" {
		t.Errorf("порядок = [%q, %q, %q], ожидался [New, Old, NoDate]",
			sorted[0].Title, sorted[1].Title, sorted[2].Title)
	}

	// Исходный срез не изменён
	if records[0].Title != "Old" {
		t.Errorf("исходный срез мутирован: records[0] = %q", records[0].Title)
	}
}
