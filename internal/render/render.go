// Пакет render — HTML-рендеринг страниц сайта.
//
// Шаблоны встраиваются в бинарник через go:embed, внешнего пайплайна
// ассетов нет. Рендерер возвращает готовую страницу: тело, Content-Type
// и директиву кэширования (успешные страницы живут дольше ошибок).
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/agasobanuye/web-module/internal/domain/model"
	"github.com/agasobanuye/web-module/internal/service"
)

// Директивы кэширования: успешные страницы кэшируются CDN надолго,
// страницы ошибок — коротко, чтобы сбой ингестии быстро рассосался.
const (
	cacheControlSuccess = "public, max-age=300, s-maxage=3600"
	cacheControlError   = "public, max-age=60, s-maxage=60"
)

// contentTypeHTML — Content-Type всех страниц рендерера.
const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*.gohtml
var templateFS embed.FS

// Page — готовый ответ рендерера.
type Page struct {
	// Body — полное тело ответа
	Body []byte
	// ContentType — значение заголовка Content-Type
	ContentType string
	// CacheControl — директива кэширования страницы
	CacheControl string
}

// HomeData — данные главной страницы.
type HomeData struct {
	// SiteName — название сайта (заполняется рендерером)
	SiteName string
	// Query — текст поискового запроса
	Query string
	// Translator — активный слаг переводчика
	Translator string
	// ContentType — активный фильтр типа контента
	ContentType string
	// Filtered — true в режиме результатов поиска/фильтра
	Filtered bool
	// Results — записи режима результатов
	Results []*model.VideoRecord
	// Groups — подборки по типам для режима главной
	Groups []*service.TypeGroup
	// Translators — индекс переводчиков
	Translators []service.TranslatorStat
	// JSONLD — сериализованная разметка schema.org (заполняется рендерером)
	JSONLD template.JS
}

// Renderer — рендерер страниц сайта.
type Renderer struct {
	tpl      *template.Template
	siteName string
}

// NewRenderer создаёт рендерер с разобранными шаблонами.
func NewRenderer(siteName string) *Renderer {
	tpl := template.Must(template.New("").Funcs(template.FuncMap{
		"q": url.QueryEscape,
		"watchLink": func(rec *model.VideoRecord) string {
			if rec.VideoURL != "" {
				return rec.VideoURL
			}
			return rec.HTMLURL
		},
		"typeLabel": func(t string) string {
			switch t {
			case "MOVIE":
				return "Movies"
			case "TV-SERIES":
				return "TV Series"
			case "ANIMATION":
				return "Animations"
			case "DOCUMENTARY":
				return "Documentaries"
			default:
				return t
			}
		},
	}).ParseFS(templateFS, "templates/*.gohtml"))

	return &Renderer{tpl: tpl, siteName: siteName}
}

// HomePage рендерит главную страницу (подборки по типам либо результаты
// поиска/фильтра) вместе с JSON-LD разметкой видимых записей.
func (r *Renderer) HomePage(data HomeData) (*Page, error) {
	data.SiteName = r.siteName

	visible := data.Results
	if !data.Filtered {
		visible = nil
		for _, g := range data.Groups {
			visible = append(visible, g.Records...)
		}
	}
	jsonld, err := BuildJSONLD(visible)
	if err != nil {
		return nil, fmt.Errorf("разметка JSON-LD: %w", err)
	}
	data.JSONLD = jsonld

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "home.gohtml", data); err != nil {
		return nil, fmt.Errorf("рендеринг главной страницы: %w", err)
	}

	return &Page{
		Body:         buf.Bytes(),
		ContentType:  contentTypeHTML,
		CacheControl: cacheControlSuccess,
	}, nil
}

// ErrorPage рендерит страницу ошибки. Никогда не возвращает ошибку:
// при сбое шаблона отдаётся текстовый fallback, чтобы сбой ингестии
// всегда заканчивался отображаемым ответом.
func (r *Renderer) ErrorPage(status int, message string) *Page {
	data := struct {
		SiteName   string
		Status     int
		StatusText string
		Message    string
	}{
		SiteName:   r.siteName,
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
	}

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "error.gohtml", data); err != nil {
		return &Page{
			Body:         []byte(fmt.Sprintf("%d %s\n%s\n", status, data.StatusText, message)),
			ContentType:  "text/plain; charset=utf-8",
			CacheControl: cacheControlError,
		}
	}

	return &Page{
		Body:         buf.Bytes(),
		ContentType:  contentTypeHTML,
		CacheControl: cacheControlError,
	}
}
