package figma

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCacheTTL is how long a cached file stays fresh.
const DefaultCacheTTL = time.Hour

// DocumentCache stores raw file JSON between runs.
type DocumentCache interface {
	// GetCachedDocument returns the cached body and when it was stored,
	// or a nil body when nothing is cached.
	GetCachedDocument(ctx context.Context, cacheKey string) ([]byte, time.Time, error)
	SaveCachedDocument(ctx context.Context, cacheKey string, body []byte) error
}

// CachedClientConfig holds configuration for the cached client.
type CachedClientConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Logger    zerolog.Logger
}

// DefaultCachedClientConfig returns sensible defaults.
func DefaultCachedClientConfig() *CachedClientConfig {
	return &CachedClientConfig{
		CacheTTL: DefaultCacheTTL,
		Logger:   zerolog.Nop(),
	}
}

// CachedClient wraps a Source with a TTL cache.
type CachedClient struct {
	source    Source
	cache     DocumentCache
	cacheTTL  time.Duration
	skipCache bool
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCachedClient creates a cached client. A nil cache disables caching.
func NewCachedClient(source Source, cache DocumentCache, config *CachedClientConfig) *CachedClient {
	if config == nil {
		config = DefaultCachedClientConfig()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	return &CachedClient{
		source:    source,
		cache:     cache,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
		logger:    config.Logger,
		now:       time.Now,
	}
}

// CacheKey identifies a file request, including the options that shape it.
func CacheKey(key string, opts FileOptions) string {
	parts := []string{key}
	if opts.Depth > 0 {
		parts = append(parts, "depth="+strconv.Itoa(opts.Depth))
	}
	if len(opts.IDs) > 0 {
		parts = append(parts, "ids="+strings.Join(opts.IDs, ","))
	}
	return strings.Join(parts, "?")
}

// FileJSON returns a fresh cached body when there is one, otherwise fetches
// from the wrapped source and stores the result. Cache failures are logged
// and fall through to the source.
func (c *CachedClient) FileJSON(ctx context.Context, key string, opts FileOptions) ([]byte, error) {
	cacheKey := CacheKey(key, opts)
	useCache := c.cache != nil && !c.skipCache

	if useCache {
		body, storedAt, err := c.cache.GetCachedDocument(ctx, cacheKey)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Str("file_key", key).Msg("figma cache lookup failed")
		case body != nil && c.now().Sub(storedAt) < c.cacheTTL:
			c.logger.Debug().Str("file_key", key).Time("stored_at", storedAt).Msg("figma cache hit")
			return body, nil
		}
	}

	body, err := c.source.FileJSON(ctx, key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file %s: %w", key, err)
	}

	if c.cache != nil {
		if err := c.cache.SaveCachedDocument(ctx, cacheKey, body); err != nil {
			c.logger.Warn().Err(err).Str("file_key", key).Msg("failed to cache figma file")
		}
	}
	return body, nil
}
