// catalog.go — сервис загрузки каталога видео из репозитория контента.
// Координирует ghclient, frontmatter-парсер, нормализатор, LRU-кэш
// и Prometheus-метрики.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agasobanuye/web-module/internal/domain/model"
	"github.com/agasobanuye/web-module/internal/frontmatter"
	"github.com/agasobanuye/web-module/internal/ghclient"
	"github.com/agasobanuye/web-module/internal/ingest"
)

// Prometheus-метрики каталога.
var (
	catalogLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wm_catalog_loads_total",
		Help: "Общее количество загрузок каталога (по статусу).",
	}, []string{"status"})

	catalogLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wm_catalog_load_duration_seconds",
		Help:    "Длительность полной загрузки каталога (листинг + файлы).",
		Buckets: prometheus.DefBuckets,
	})

	filesParsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wm_files_parsed_total",
		Help: "Общее количество успешно нормализованных файлов контента.",
	})

	filesSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wm_files_skipped_total",
		Help: "Количество пропущенных файлов контента (по причине).",
	}, []string{"reason"}) // reason: fetch, normalize
)

// ContentClient — клиент репозитория контента (GitHub Contents API).
type ContentClient interface {
	// ListDir возвращает листинг каталога репозитория.
	ListDir(ctx context.Context, dir string) ([]ghclient.RawFile, error)
	// FetchFile скачивает сырое содержимое файла по download URL.
	FetchFile(ctx context.Context, downloadURL string) (string, error)
}

// CatalogService — сервис загрузки и нормализации каталога видео.
// Состояние каталога живёт в репозитории контента; сервис каждый раз
// собирает записи заново (опциональный LRU-кэш срезает повторные загрузки).
type CatalogService struct {
	client      ContentClient
	normalizer  *ingest.Normalizer
	cache       *CacheService // nil — кэширование выключено
	concurrency int
	logger      *slog.Logger
}

// NewCatalogService создаёт сервис каталога.
// cache может быть nil — тогда каждый запрос загружает каталог заново.
// concurrency ограничивает одновременные запросы к репозиторию контента.
func NewCatalogService(
	client ContentClient,
	normalizer *ingest.Normalizer,
	cache *CacheService,
	concurrency int,
	logger *slog.Logger,
) *CatalogService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CatalogService{
		client:      client,
		normalizer:  normalizer,
		cache:       cache,
		concurrency: concurrency,
		logger:      logger.With(slog.String("component", "catalog_service")),
	}
}

// LoadDirectory загружает все .md-файлы каталога и нормализует их в записи.
//
// Файлы скачиваются и разбираются параллельно (до concurrency одновременно),
// итоговый порядок совпадает с порядком листинга. Ошибка отдельного файла
// не прерывает загрузку — файл пропускается с Debug-логом и инкрементом
// wm_files_skipped_total.
func (s *CatalogService) LoadDirectory(ctx context.Context, dir string) ([]*model.VideoRecord, error) {
	// Проверяем кэш
	if s.cache != nil {
		if records, ok := s.cache.Get(dir); ok {
			s.logger.Debug("Каталог получен из кэша",
				slog.String("dir", dir),
				slog.Int("records", len(records)),
			)
			return records, nil
		}
	}

	start := time.Now()

	files, err := s.client.ListDir(ctx, dir)
	if err != nil {
		catalogLoadsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("листинг каталога %s: %w", dir, err)
	}

	// Отбираем только markdown-файлы
	mdFiles := make([]ghclient.RawFile, 0, len(files))
	for _, f := range files {
		if f.Type == "file" && strings.HasSuffix(f.Name, ".md") {
			mdFiles = append(mdFiles, f)
		}
	}

	// Параллельная загрузка с ограничением concurrency.
	// results индексирован позицией файла в листинге — порядок сохраняется
	// без блокировок.
	sem := make(chan struct{}, s.concurrency)
	results := make([]*model.VideoRecord, len(mdFiles))

	var wg sync.WaitGroup
	for i, f := range mdFiles {
		wg.Add(1)
		go func(i int, f ghclient.RawFile) {
			defer wg.Done()

			// Ограничение concurrency
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = s.loadOne(ctx, f)
		}(i, f)
	}
	wg.Wait()

	// Собираем успешные записи, пропуская неудавшиеся
	records := make([]*model.VideoRecord, 0, len(mdFiles))
	for _, r := range results {
		if r != nil {
			records = append(records, r)
		}
	}

	duration := time.Since(start)
	catalogLoadsTotal.WithLabelValues("success").Inc()
	catalogLoadDuration.Observe(duration.Seconds())
	filesParsedTotal.Add(float64(len(records)))

	s.logger.Info("Каталог загружен",
		slog.String("dir", dir),
		slog.Int("listed", len(mdFiles)),
		slog.Int("parsed", len(records)),
		slog.Int("skipped", len(mdFiles)-len(records)),
		slog.Duration("duration", duration),
	)

	// Сохраняем в кэш
	if s.cache != nil {
		s.cache.Set(dir, records)
	}

	return records, nil
}

// loadOne скачивает и нормализует один файл контента.
// Возвращает nil при любой ошибке — файл пропускается.
func (s *CatalogService) loadOne(ctx context.Context, f ghclient.RawFile) *model.VideoRecord {
	text, err := s.client.FetchFile(ctx, f.DownloadURL)
	if err != nil {
		s.logger.Debug("Файл пропущен: ошибка загрузки",
			slog.String("name", f.Name),
			slog.String("error", err.Error()),
		)
		filesSkippedTotal.WithLabelValues("fetch").Inc()
		return nil
	}

	record, err := s.normalizer.Normalize(f, frontmatter.Parse(text))
	if err != nil {
		s.logger.Debug("Файл пропущен: ошибка нормализации",
			slog.String("name", f.Name),
			slog.String("error", err.Error()),
		)
		filesSkippedTotal.WithLabelValues("normalize").Inc()
		return nil
	}
	return record
}

// LoadCategories собирает пары {категория, слаг} по списку каталогов
// для генерации sitemap.
//
// Каталоги обходятся параллельно; слаг извлекается из скобочного имени
// файла без скачивания содержимого. Ошибка листинга одного каталога не
// блокирует остальные: такой каталог даёт пустой срез и Warn-лог.
func (s *CatalogService) LoadCategories(ctx context.Context, dirs []string) []model.CategorySlug {
	sem := make(chan struct{}, s.concurrency)
	perDir := make([][]model.CategorySlug, len(dirs))

	var wg sync.WaitGroup
	for i, dir := range dirs {
		wg.Add(1)
		go func(i int, dir string) {
			defer wg.Done()

			// Ограничение concurrency
			sem <- struct{}{}
			defer func() { <-sem }()

			entries, err := s.categoryEntries(ctx, dir)
			if err != nil {
				s.logger.Warn("Каталог пропущен при сборе категорий",
					slog.String("dir", dir),
					slog.String("error", err.Error()),
				)
				return
			}
			perDir[i] = entries
		}(i, dir)
	}
	wg.Wait()

	var all []model.CategorySlug
	for _, entries := range perDir {
		all = append(all, entries...)
	}
	return all
}

// categoryEntries перечисляет слаги видео одного каталога.
// Категория — последний сегмент пути каталога (content/movies → movies).
func (s *CatalogService) categoryEntries(ctx context.Context, dir string) ([]model.CategorySlug, error) {
	files, err := s.client.ListDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	category := path.Base(dir)
	entries := make([]model.CategorySlug, 0, len(files))
	for _, f := range files {
		if f.Type != "file" || !strings.HasSuffix(f.Name, ".md") {
			continue
		}
		title, _, _, ok := ingest.ParseFilename(f.Name)
		if !ok {
			continue
		}
		entries = append(entries, model.CategorySlug{
			Category: category,
			Slug:     ingest.Slugify(title),
		})
	}
	return entries, nil
}
