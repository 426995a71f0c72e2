package ghclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient создаёт клиент, направленный на тестовый сервер.
func newTestClient(t *testing.T, srv *httptest.Server, tokens TokenProvider) *Client {
	t.Helper()
	return New(srv.URL, "agasobanuye", "content-repo", "main", "web-module-test", 5*time.Second, tokens, slog.Default())
}

// TestClient_ListDir проверяет листинг директории и заголовки запроса.
func TestClient_ListDir(t *testing.T) {
	var gotPath, gotAuth, gotUA, gotAccept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "[Inception][MOVIE][Rocky].md", "path": "content/[Inception][MOVIE][Rocky].md", "type": "file", "download_url": "https://raw.example/a.md", "html_url": "https://github.example/a.md"},
			{"name": "poster.jpg", "path": "content/poster.jpg", "type": "file", "download_url": "https://raw.example/p.jpg", "html_url": ""}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, StaticTokenProvider("secret-token"))

	files, err := client.ListDir(context.Background(), "content")
	if err != nil {
		t.Fatalf("ListDir ошибка: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("len(files) = %d, ожидался 2", len(files))
	}
	if files[0].Name != "[Inception][MOVIE][Rocky].md" {
		t.Errorf("Name = %q, ожидался %q", files[0].Name, "[Inception][MOVIE][Rocky].md")
	}
	if files[0].DownloadURL != "https://raw.example/a.md" {
		t.Errorf("DownloadURL = %q, ожидался %q", files[0].DownloadURL, "https://raw.example/a.md")
	}

	if want := "/repos/agasobanuye/content-repo/contents/content?ref=main"; gotPath != want {
		t.Errorf("путь запроса = %q, ожидался %q", gotPath, want)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, ожидался %q", gotAuth, "Bearer secret-token")
	}
	if gotUA != "web-module-test" {
		t.Errorf("User-Agent = %q, ожидался %q", gotUA, "web-module-test")
	}
	if gotAccept != "application/vnd.github+json" {
		t.Errorf("Accept = %q, ожидался %q", gotAccept, "application/vnd.github+json")
	}
}

// TestClient_ListDir_NotFound проверяет ошибку при не-200 ответе.
func TestClient_ListDir_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)

	_, err := client.ListDir(context.Background(), "missing")
	if err == nil {
		t.Fatal("ожидалась ошибка для статуса 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("ошибка = %v, ожидалось упоминание статуса 404", err)
	}
}

// TestClient_ListDir_NoToken проверяет анонимный запрос без Authorization.
func TestClient_ListDir_NoToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)

	if _, err := client.ListDir(context.Background(), "content"); err != nil {
		t.Fatalf("ListDir ошибка: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, ожидался пустой заголовок", gotAuth)
	}
}

// TestClient_FetchFile проверяет скачивание raw-содержимого.
func TestClient_FetchFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/raw/file.md" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("---\ntitle: Test\n---\nBody"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)

	content, err := client.FetchFile(context.Background(), srv.URL+"/raw/file.md")
	if err != nil {
		t.Fatalf("FetchFile ошибка: %v", err)
	}
	if !strings.HasPrefix(content, "---\ntitle: Test") {
		t.Errorf("содержимое = %q, ожидался front-matter блок", content)
	}

	// Несуществующий файл — ошибка
	if _, err := client.FetchFile(context.Background(), srv.URL+"/raw/missing.md"); err == nil {
		t.Fatal("ожидалась ошибка для несуществующего файла")
	}
}

// TestClient_CheckReady проверяет статусы readiness-проверки.
func TestClient_CheckReady(t *testing.T) {
	statusCode := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(statusCode)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, nil)

	if status, _ := client.CheckReady(); status != "ok" {
		t.Errorf("status = %q, ожидался %q", status, "ok")
	}

	statusCode = http.StatusForbidden
	if status, _ := client.CheckReady(); status != "degraded" {
		t.Errorf("status = %q, ожидался %q при 403", status, "degraded")
	}

	statusCode = http.StatusInternalServerError
	if status, _ := client.CheckReady(); status != "fail" {
		t.Errorf("status = %q, ожидался %q при 500", status, "fail")
	}
}

// TestClient_CheckReady_Unreachable проверяет fail при недоступном API.
func TestClient_CheckReady_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // сервер уже остановлен

	client := newTestClient(t, srv, nil)

	if status, msg := client.CheckReady(); status != "fail" {
		t.Errorf("status = %q (%s), ожидался %q", status, msg, "fail")
	}
}
