// internal/stores/cache.go
package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

// PersonaSource and WeightSource mirror the engine's store interfaces so the caches
// can wrap any backing store.
type PersonaSource interface {
	GetPersonaWithPreferences(ctx context.Context, userID, personaID string) (*models.PersonaPreferences, error)
}

type WeightSource interface {
	GetTunerWeights(ctx context.Context, userID, personaID string) (*models.FactorWeights, error)
}

func personaCacheKey(userID, personaID string) string {
	return fmt.Sprintf("persona:prefs:%s:%s", userID, personaID)
}

func weightsCacheKey(userID, personaID string) string {
	return fmt.Sprintf("tuner:weights:%s:%s", userID, personaID)
}

// noWeights marks a cached "no weights stored" answer.
const noWeights = "none"

// CachedPersonaStore is a Redis read-through cache in front of a PersonaSource.
// Redis failures are logged and bypassed. Errors, including not found, are never cached.
type CachedPersonaStore struct {
	next   PersonaSource
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedPersonaStore(next PersonaSource, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedPersonaStore {
	return &CachedPersonaStore{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cache": "persona"}),
	}
}

func (c *CachedPersonaStore) GetPersonaWithPreferences(ctx context.Context, userID, personaID string) (*models.PersonaPreferences, error) {
	key := personaCacheKey(userID, personaID)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var prefs models.PersonaPreferences
		if err := json.Unmarshal([]byte(val), &prefs); err == nil {
			metrics.CacheLookups.WithLabelValues("persona", "hit").Inc()
			return &prefs, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
	} else if err != redis.Nil {
		metrics.CacheLookups.WithLabelValues("persona", "error").Inc()
		c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
	} else {
		metrics.CacheLookups.WithLabelValues("persona", "miss").Inc()
	}

	prefs, err := c.next.GetPersonaWithPreferences(ctx, userID, personaID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return prefs, nil
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err})
	}
	return prefs, nil
}

// CachedWeightStore caches tuner weights, including the absence of weights.
type CachedWeightStore struct {
	next   WeightSource
	redis  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedWeightStore(next WeightSource, rdb redis.Cmdable, ttl time.Duration, log logger.Logger) *CachedWeightStore {
	return &CachedWeightStore{
		next:   next,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cache": "weights"}),
	}
}

func (c *CachedWeightStore) GetTunerWeights(ctx context.Context, userID, personaID string) (*models.FactorWeights, error) {
	key := weightsCacheKey(userID, personaID)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		if val == noWeights {
			metrics.CacheLookups.WithLabelValues("weights", "hit").Inc()
			return nil, nil
		}
		var w models.FactorWeights
		if err := json.Unmarshal([]byte(val), &w); err == nil {
			metrics.CacheLookups.WithLabelValues("weights", "hit").Inc()
			return &w, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
	} else if err != redis.Nil {
		metrics.CacheLookups.WithLabelValues("weights", "error").Inc()
		c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
	} else {
		metrics.CacheLookups.WithLabelValues("weights", "miss").Inc()
	}

	w, err := c.next.GetTunerWeights(ctx, userID, personaID)
	if err != nil {
		return nil, err
	}

	var value interface{} = noWeights
	if w != nil {
		data, err := json.Marshal(w)
		if err != nil {
			return w, nil
		}
		value = data
	}
	if err := c.redis.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err})
	}
	return w, nil
}
