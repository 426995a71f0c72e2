package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// genCatEntries генерирует n записей категории movies.
func genCatEntries(n int) []model.CategorySlug {
	entries := make([]model.CategorySlug, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, model.CategorySlug{
			Category: "movies",
			Slug:     fmt.Sprintf("video-%04d", i),
		})
	}
	return entries
}

// TestSiteHandler_Sitemap_Flat проверяет плоскую карту при малом каталоге.
func TestSiteHandler_Sitemap_Flat(t *testing.T) {
	catalog := &mockCatalog{
		loadCategoriesFn: func(_ context.Context, dirs []string) []model.CategorySlug {
			if len(dirs) != 2 {
				t.Errorf("dirs = %d, ожидалось 2", len(dirs))
			}
			return genCatEntries(3)
		},
	}
	h := newTestSiteHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	rec := httptest.NewRecorder()
	h.Sitemap(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != contentTypeXML {
		t.Errorf("Content-Type = %q, ожидался %q", ct, contentTypeXML)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", cc)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<urlset") {
		t.Error("ожидалась плоская карта urlset")
	}
	if !strings.Contains(body, "https://agasobanuye.example/movies/video-0000") {
		t.Error("карта не содержит URL видео")
	}
	if !strings.Contains(body, "https://agasobanuye.example/movies") {
		t.Error("карта не содержит URL категории")
	}
}

// TestSiteHandler_Sitemap_Index проверяет переключение на индекс
// при каталоге больше размера чанка.
func TestSiteHandler_Sitemap_Index(t *testing.T) {
	catalog := &mockCatalog{
		loadCategoriesFn: func(_ context.Context, _ []string) []model.CategorySlug {
			return genCatEntries(1500)
		},
	}
	h := newTestSiteHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	rec := httptest.NewRecorder()
	h.Sitemap(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<sitemapindex") {
		t.Error("ожидался индекс sitemapindex")
	}
	if !strings.Contains(body, "https://agasobanuye.example/sitemap-videos-2.xml") {
		t.Error("индекс не содержит ссылку на второй чанк")
	}
	if strings.Contains(body, "sitemap-videos-3.xml") {
		t.Error("индекс содержит лишний чанк")
	}
}

// TestSiteHandler_SitemapVideoChunk проверяет маршрут чанка:
// существующий чанк, чанк вне диапазона и нечисловой номер.
func TestSiteHandler_SitemapVideoChunk(t *testing.T) {
	catalog := &mockCatalog{
		loadCategoriesFn: func(_ context.Context, _ []string) []model.CategorySlug {
			return genCatEntries(3)
		},
	}
	h := newTestSiteHandler(catalog)

	r := chi.NewRouter()
	r.Get("/sitemap-videos-{n}.xml", h.SitemapVideoChunk)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/sitemap-videos-1.xml", http.StatusOK},
		{"/sitemap-videos-2.xml", http.StatusNotFound},
		{"/sitemap-videos-0.xml", http.StatusNotFound},
		{"/sitemap-videos-abc.xml", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("GET %s: статус = %d, ожидался %d", tt.path, rec.Code, tt.wantStatus)
		}
	}

	// Содержимое существующего чанка
	req := httptest.NewRequest(http.MethodGet, "/sitemap-videos-1.xml", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "https://agasobanuye.example/movies/video-0002") {
		t.Error("чанк не содержит URL видео")
	}
}

// TestSiteHandler_Robots проверяет robots.txt.
func TestSiteHandler_Robots(t *testing.T) {
	h := newTestSiteHandler(&mockCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	rec := httptest.NewRecorder()
	h.Robots(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидался 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Sitemap: https://agasobanuye.example/sitemap.xml") {
		t.Error("robots.txt не содержит ссылку на карту сайта")
	}
}
