package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// newTestFeedBuilder создаёт построитель ленты с фиксированным временем.
func newTestFeedBuilder() *FeedBuilder {
	b := NewFeedBuilder("https://agasobanuye.example", "Agasobanuye")
	b.now = func() time.Time { return testNow }
	return b
}

// TestFeedBuilder_RSS проверяет сериализацию ленты.
func TestFeedBuilder_RSS(t *testing.T) {
	b := newTestFeedBuilder()
	records := []*model.VideoRecord{
		{
			Title:       "The Lion King",
			ContentType: "MOVIE",
			Description: "Agasobanuye by Junior",
			VideoURL:    "https://videos.example/lion-king.mp4",
			UploadedAt:  time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			Title:      "Prison Break",
			HTMLURL:    "https://github.example/content/prison-break.md",
			UploadedAt: time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
		},
	}

	data, err := b.RSS(records)
	if err != nil {
		t.Fatalf("RSS ошибка: %v", err)
	}
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("ожидался XML-заголовок в начале документа")
	}

	var doc rssDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("разбор RSS: %v", err)
	}

	if doc.Version != "2.0" {
		t.Errorf("version = %q, ожидался %q", doc.Version, "2.0")
	}
	if doc.Channel.Title != "Agasobanuye" {
		t.Errorf("Title канала = %q, ожидался %q", doc.Channel.Title, "Agasobanuye")
	}
	if doc.Channel.Language != "rw" {
		t.Errorf("Language = %q, ожидался %q", doc.Channel.Language, "rw")
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("элементов = %d, ожидалось 2", len(doc.Channel.Items))
	}

	// Первый элемент: внешний видео-URL
	first := doc.Channel.Items[0]
	if first.Link != "https://videos.example/lion-king.mp4" {
		t.Errorf("Link = %q, ожидался видео-URL", first.Link)
	}
	if first.GUID != first.Link {
		t.Errorf("GUID = %q, ожидалось совпадение со ссылкой", first.GUID)
	}
	if first.Category != "MOVIE" {
		t.Errorf("Category = %q, ожидался %q", first.Category, "MOVIE")
	}
	wantDate := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC).Format(time.RFC1123Z)
	if first.PubDate != wantDate {
		t.Errorf("PubDate = %q, ожидался %q", first.PubDate, wantDate)
	}

	// Второй элемент: fallback на страницу файла
	second := doc.Channel.Items[1]
	if second.Link != "https://github.example/content/prison-break.md" {
		t.Errorf("Link = %q, ожидался HTML-URL файла", second.Link)
	}
}

// TestFeedBuilder_RSS_NoDate проверяет запись без разобранной даты:
// pubDate опускается, ссылка падает на главную.
func TestFeedBuilder_RSS_NoDate(t *testing.T) {
	b := newTestFeedBuilder()

	data, err := b.RSS([]*model.VideoRecord{{Title: "Undated"}})
	if err != nil {
		t.Fatalf("RSS ошибка: %v", err)
	}

	var doc rssDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("разбор RSS: %v", err)
	}

	item := doc.Channel.Items[0]
	if item.PubDate != "" {
		t.Errorf("PubDate = %q, ожидался пустой", item.PubDate)
	}
	if item.Link != "https://agasobanuye.example/" {
		t.Errorf("Link = %q, ожидалась главная", item.Link)
	}
}
