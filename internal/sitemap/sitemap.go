// Пакет sitemap — генерация XML-карт сайта.
//
// До ChunkSize видео включительно строится одна плоская карта (главная,
// статические страницы, категории, видео). Свыше — индекс, ссылающийся
// на фиксированные карты static/categories и нумерованные чанки видео
// по ChunkSize записей.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// ChunkSize — максимум видео-URL в одной карте. Порог, после которого
// плоская карта заменяется индексом.
const ChunkSize = 1000

// xmlns — пространство имён протокола sitemaps.org.
const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// staticPaths — статические страницы сайта, попадающие в карту.
var staticPaths = []string{"/about", "/contact", "/privacy-policy"}

// urlEntry — элемент <url> карты сайта.
type urlEntry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

// urlSet — корневой элемент <urlset>.
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// sitemapRef — элемент <sitemap> индекса.
type sitemapRef struct {
	XMLName xml.Name `xml:"sitemap"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

// sitemapIndex — корневой элемент <sitemapindex>.
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	XMLNS    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// Builder — построитель карт сайта для заданного базового URL.
type Builder struct {
	baseURL string

	// now — источник текущего времени для lastmod.
	// Подменяется в тестах.
	now func() time.Time
}

// NewBuilder создаёт построитель карт сайта.
func NewBuilder(baseURL string) *Builder {
	return &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// NeedsIndex сообщает, требуется ли индекс вместо плоской карты
// для n видео-записей.
func NeedsIndex(n int) bool {
	return n > ChunkSize
}

// ChunkCount возвращает количество видео-чанков для n записей.
func ChunkCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + ChunkSize - 1) / ChunkSize
}

// Flat строит единую карту: главная, статические страницы, страницы
// категорий и все видео. Используется при len(entries) <= ChunkSize.
func (b *Builder) Flat(entries []model.CategorySlug) ([]byte, error) {
	urls := make([]urlEntry, 0, 1+len(staticPaths)+len(entries))

	urls = append(urls, b.entry("/", "daily", "1.0"))
	for _, p := range staticPaths {
		urls = append(urls, b.entry(p, "monthly", "0.5"))
	}
	for _, category := range distinctCategories(entries) {
		urls = append(urls, b.entry("/"+category, "daily", "0.7"))
	}
	for _, e := range entries {
		urls = append(urls, b.videoEntry(e))
	}

	return marshal(urlSet{XMLNS: xmlns, URLs: urls})
}

// Index строит индекс карт для n видео-записей: фиксированные карты
// static и categories плюс нумерованные видео-чанки.
func (b *Builder) Index(n int) ([]byte, error) {
	lastMod := b.lastMod()
	refs := []sitemapRef{
		{Loc: b.baseURL + "/sitemap-static.xml", LastMod: lastMod},
		{Loc: b.baseURL + "/sitemap-categories.xml", LastMod: lastMod},
	}
	for i := 1; i <= ChunkCount(n); i++ {
		refs = append(refs, sitemapRef{
			Loc:     fmt.Sprintf("%s/sitemap-videos-%d.xml", b.baseURL, i),
			LastMod: lastMod,
		})
	}

	return marshal(sitemapIndex{XMLNS: xmlns, Sitemaps: refs})
}

// Static строит карту главной и статических страниц.
func (b *Builder) Static() ([]byte, error) {
	urls := make([]urlEntry, 0, 1+len(staticPaths))
	urls = append(urls, b.entry("/", "daily", "1.0"))
	for _, p := range staticPaths {
		urls = append(urls, b.entry(p, "monthly", "0.5"))
	}
	return marshal(urlSet{XMLNS: xmlns, URLs: urls})
}

// Categories строит карту страниц категорий.
func (b *Builder) Categories(entries []model.CategorySlug) ([]byte, error) {
	categories := distinctCategories(entries)
	urls := make([]urlEntry, 0, len(categories))
	for _, category := range categories {
		urls = append(urls, b.entry("/"+category, "daily", "0.7"))
	}
	return marshal(urlSet{XMLNS: xmlns, URLs: urls})
}

// VideoChunk строит карту видео-чанка n (нумерация с 1).
// Чанк n покрывает записи [(n-1)*ChunkSize, n*ChunkSize).
func (b *Builder) VideoChunk(entries []model.CategorySlug, n int) ([]byte, error) {
	lo := (n - 1) * ChunkSize
	if n < 1 || lo >= len(entries) {
		return nil, fmt.Errorf("чанк %d вне диапазона (всего %d записей)", n, len(entries))
	}
	hi := lo + ChunkSize
	if hi > len(entries) {
		hi = len(entries)
	}

	urls := make([]urlEntry, 0, hi-lo)
	for _, e := range entries[lo:hi] {
		urls = append(urls, b.videoEntry(e))
	}
	return marshal(urlSet{XMLNS: xmlns, URLs: urls})
}

// Robots возвращает robots.txt со ссылкой на карту сайта.
func (b *Builder) Robots() []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", b.baseURL))
}

// entry строит элемент карты для пути path относительно базового URL.
func (b *Builder) entry(path, changeFreq, priority string) urlEntry {
	return urlEntry{
		Loc:        b.baseURL + path,
		LastMod:    b.lastMod(),
		ChangeFreq: changeFreq,
		Priority:   priority,
	}
}

// videoEntry строит элемент карты для страницы видео.
func (b *Builder) videoEntry(e model.CategorySlug) urlEntry {
	return b.entry("/"+e.Category+"/"+e.Slug, "weekly", "0.8")
}

// lastMod — дата последнего изменения: сегодня, без времени.
func (b *Builder) lastMod() string {
	return b.now().Format("2006-01-02")
}

// distinctCategories возвращает уникальные категории в порядке появления.
func distinctCategories(entries []model.CategorySlug) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out
}

// marshal сериализует документ с XML-заголовком и отступами.
func marshal(v any) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
