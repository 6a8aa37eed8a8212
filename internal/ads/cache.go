package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/radianthq/venueops/internal/metrics"
	"github.com/radianthq/venueops/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedClient wraps a Client with a Redis read-through cache. Reports for a
// given date range change slowly at the platform, so repeated overview
// requests within the TTL reuse the cached response instead of spending API
// quota. Any cache failure falls through to the inner client.
type CachedClient struct {
	inner   Client
	redis   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewCachedClient wraps inner with a Redis cache using the given TTL. The
// metrics parameter may be nil.
func NewCachedClient(inner Client, rdb *redis.Client, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *CachedClient {
	return &CachedClient{
		inner:   inner,
		redis:   rdb,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

func (c *CachedClient) recordLookup(outcome string) {
	if c.metrics != nil {
		c.metrics.AdsCacheHits.WithLabelValues(outcome).Inc()
	}
}

// AccountCurrency is fetched through the cache under a range-independent key.
func (c *CachedClient) AccountCurrency(ctx context.Context) (string, error) {
	const key = "ads:currency"
	if v, err := c.redis.Get(ctx, key).Result(); err == nil && v != "" {
		c.recordLookup("hit")
		return v, nil
	}
	c.recordLookup("miss")
	cur, err := c.inner.AccountCurrency(ctx)
	if err != nil {
		return "", err
	}
	if cur != "" {
		if err := c.redis.Set(ctx, key, cur, c.ttl).Err(); err != nil {
			c.logger.Warn("ads cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return cur, nil
}

// CampaignReport serves campaign-granularity rows through the cache.
func (c *CachedClient) CampaignReport(ctx context.Context, from, to time.Time) ([]RawRow, error) {
	return c.cachedReport(ctx, "campaign", from, to, c.inner.CampaignReport)
}

// AdGroupReport serves ad-group-granularity rows through the cache.
func (c *CachedClient) AdGroupReport(ctx context.Context, from, to time.Time) ([]RawRow, error) {
	return c.cachedReport(ctx, "adgroup", from, to, c.inner.AdGroupReport)
}

type reportFn func(ctx context.Context, from, to time.Time) ([]RawRow, error)

func (c *CachedClient) cachedReport(ctx context.Context, kind string, from, to time.Time, fetch reportFn) ([]RawRow, error) {
	key := fmt.Sprintf("ads:report:%s:%s:%s",
		kind, from.Format(models.DateFormat), to.Format(models.DateFormat))

	if payload, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var rows []RawRow
		if err := json.Unmarshal(payload, &rows); err == nil {
			c.recordLookup("hit")
			return rows, nil
		}
		c.logger.Warn("ads cache entry corrupt, refetching", zap.String("key", key))
	}
	c.recordLookup("miss")

	rows, err := fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rows); err == nil {
		if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("ads cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rows, nil
}
