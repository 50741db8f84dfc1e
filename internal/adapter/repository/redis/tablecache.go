package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/shopledger/internal/sheet"
	"github.com/iho/shopledger/internal/usecase"
)

const latestTablesKey = "shopledger:tables:latest"

// CachedTableSource decorates a TableSource with a short-TTL Redis cache of
// the raw table payload, so repeated dashboard loads within the TTL do not
// hammer the sheet endpoint. Cache failures fall through to the inner
// source; the cache is an optimization, never a source of truth.
type CachedTableSource struct {
	inner  usecase.TableSource
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedTableSource creates a caching decorator around inner.
func NewCachedTableSource(inner usecase.TableSource, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedTableSource {
	return &CachedTableSource{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "table_cache").Logger(),
	}
}

// FetchAll serves the cached table set when fresh, refetching otherwise.
func (c *CachedTableSource) FetchAll(ctx context.Context) (*sheet.TableSet, error) {
	payload, err := c.client.Get(ctx, latestTablesKey).Bytes()
	if err == nil {
		var ts sheet.TableSet
		if err := json.Unmarshal(payload, &ts); err == nil {
			c.logger.Debug().Msg("tables served from cache")
			return &ts, nil
		}
		c.logger.Warn().Msg("discarding undecodable cached tables")
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("table cache read failed")
	}

	ts, err := c.inner.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ts); err == nil {
		if err := c.client.Set(ctx, latestTablesKey, payload, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("table cache write failed")
		}
	}
	return ts, nil
}

// Invalidate drops the cached table set, forcing the next read to refetch.
func (c *CachedTableSource) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, latestTablesKey).Err()
}
