// Пакет service — бизнес-логика Web Module.
// CacheService — LRU-кэш загруженных каталогов с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agasobanuye/web-module/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wm_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш каталогов.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wm_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша каталогов.",
	})
)

// CacheService — LRU-кэш загруженных каталогов с автоматическим TTL.
// Ключ — путь каталога в репозитории контента, значение — нормализованные
// записи в порядке листинга. Каждый экземпляр WM имеет собственный
// in-memory кэш (per-instance, stateless архитектура).
type CacheService struct {
	cache *expirable.LRU[string, []*model.VideoRecord]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество каталогов в кэше.
// ttl — время жизни записи после добавления.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[string, []*model.VideoRecord](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// Get возвращает записи каталога из кэша по пути dir.
// Возвращает (записи, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(dir string) ([]*model.VideoRecord, bool) {
	val, ok := c.cache.Get(dir)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет каталог в кэше.
func (c *CacheService) Set(dir string, records []*model.VideoRecord) {
	c.cache.Add(dir, records)
}
