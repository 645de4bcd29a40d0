package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "classifier:"

// CachedClassifier memoizes predictions in Redis keyed by a digest of the
// text. Cache failures never fail the request; the inner model is consulted
// instead.
type CachedClassifier struct {
	inner  Classifier
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClassifier wraps inner with a Redis-backed prediction cache.
func NewCachedClassifier(inner Classifier, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedClassifier {
	return &CachedClassifier{inner: inner, client: client, ttl: ttl, logger: logger}
}

// Classify consults the cache before delegating to the wrapped model.
func (c *CachedClassifier) Classify(ctx context.Context, text string) (string, error) {
	if c.client == nil {
		return c.inner.Classify(ctx, text)
	}

	key := cacheKey(text)
	if category, err := c.client.Get(ctx, key).Result(); err == nil {
		return category, nil
	} else if err != redis.Nil {
		c.logger.Debug("classifier cache read failed", zap.Error(err))
	}

	category, err := c.inner.Classify(ctx, text)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, category, c.ttl).Err(); err != nil {
		c.logger.Debug("classifier cache write failed", zap.Error(err))
	}
	return category, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:16])
}
