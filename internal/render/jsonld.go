// jsonld.go — структурированная разметка schema.org для поисковых систем.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// itemList — корневой объект разметки: schema.org/ItemList.
type itemList struct {
	Context string     `json:"@context"`
	Type    string     `json:"@type"`
	Items   []listItem `json:"itemListElement"`
}

// listItem — позиция списка с вложенным VideoObject.
type listItem struct {
	Type     string      `json:"@type"`
	Position int         `json:"position"`
	Item     videoObject `json:"item"`
}

// videoObject — schema.org/VideoObject одной записи каталога.
type videoObject struct {
	Type          string   `json:"@type"`
	Name          string   `json:"name"`
	AlternateName string   `json:"alternateName,omitempty"`
	Description   string   `json:"description,omitempty"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	UploadDate    string   `json:"uploadDate,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	ContentURL    string   `json:"contentUrl,omitempty"`
	Genre         []string `json:"genre,omitempty"`
}

// BuildJSONLD сериализует записи в ItemList из VideoObject.
// Позиции нумеруются с 1 в порядке записей. Для пустого списка
// возвращает пустую строку — разметка на страницу не попадает.
//
// json.Marshal экранирует <, > и & — содержимое безопасно для вставки
// внутрь <script> без дополнительной обработки.
func BuildJSONLD(records []*model.VideoRecord) (template.JS, error) {
	if len(records) == 0 {
		return "", nil
	}

	list := itemList{
		Context: "https://schema.org",
		Type:    "ItemList",
		Items:   make([]listItem, 0, len(records)),
	}
	for i, rec := range records {
		item := videoObject{
			Type:          "VideoObject",
			Name:          rec.Title,
			AlternateName: rec.AltTitle,
			Description:   rec.Description,
			ThumbnailURL:  rec.Poster,
			UploadDate:    rec.UploadDate,
			Duration:      rec.ISODuration,
			ContentURL:    rec.VideoURL,
			Genre:         rec.Genre,
		}
		list.Items = append(list.Items, listItem{
			Type:     "ListItem",
			Position: i + 1,
			Item:     item,
		})
	}

	out, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("сериализация ItemList: %w", err)
	}
	return template.JS(out), nil
}
