// feed.go — RSS 2.0 лента последних переводов.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// rssDoc — корневой элемент <rss>.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// rssChannel — канал ленты.
type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

// rssItem — один элемент ленты.
type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Category    string `xml:"category,omitempty"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
}

// FeedBuilder — построитель RSS-ленты каталога.
type FeedBuilder struct {
	baseURL  string
	siteName string

	// now — источник текущего времени для lastBuildDate.
	// Подменяется в тестах.
	now func() time.Time
}

// NewFeedBuilder создаёт построитель RSS-ленты.
func NewFeedBuilder(baseURL, siteName string) *FeedBuilder {
	return &FeedBuilder{
		baseURL:  strings.TrimRight(baseURL, "/"),
		siteName: siteName,
		now:      time.Now,
	}
}

// RSS сериализует записи в RSS 2.0 документ.
// Записи выводятся в переданном порядке — сортировку и усечение
// выполняет вызывающая сторона.
func (b *FeedBuilder) RSS(records []*model.VideoRecord) ([]byte, error) {
	items := make([]rssItem, 0, len(records))
	for _, rec := range records {
		item := rssItem{
			Title:       rec.Title,
			Link:        b.itemLink(rec),
			Category:    rec.ContentType,
			Description: rec.Description,
		}
		item.GUID = item.Link
		if !rec.UploadedAt.IsZero() {
			item.PubDate = rec.UploadedAt.Format(time.RFC1123Z)
		}
		items = append(items, item)
	}

	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:         b.siteName,
			Link:          b.baseURL + "/",
			Description:   fmt.Sprintf("Latest video translations on %s", b.siteName),
			Language:      "rw",
			LastBuildDate: b.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация RSS: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// itemLink выбирает ссылку элемента: внешний видео-URL, затем страница
// файла в репозитории контента, затем главная.
func (b *FeedBuilder) itemLink(rec *model.VideoRecord) string {
	if rec.VideoURL != "" {
		return rec.VideoURL
	}
	if rec.HTMLURL != "" {
		return rec.HTMLURL
	}
	return b.baseURL + "/"
}
