package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"grant-management-api/config"
)

const (
	analyticsCacheKey = "reports:analytics"
	analyticsCacheTTL = 5 * time.Minute
)

// CachedAnalytics returns the cached dashboard payload, or nil on a
// miss or when Redis is not configured.
func CachedAnalytics(ctx context.Context) *Analytics {
	if config.Cache == nil {
		return nil
	}

	data, err := config.Cache.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		return nil
	}

	var analytics Analytics
	if err := json.Unmarshal(data, &analytics); err != nil {
		log.Printf("analytics cache: bad payload, ignoring: %v", err)
		return nil
	}
	return &analytics
}

// StoreAnalytics caches the dashboard payload with a short TTL.
// Failures only cost the next request a recompute.
func StoreAnalytics(ctx context.Context, analytics *Analytics) {
	if config.Cache == nil || analytics == nil {
		return
	}

	data, err := json.Marshal(analytics)
	if err != nil {
		return
	}
	if err := config.Cache.Set(ctx, analyticsCacheKey, data, analyticsCacheTTL).Err(); err != nil {
		log.Printf("analytics cache: store failed: %v", err)
	}
}

// InvalidateAnalytics drops the cached payload after writes that
// change the charts (new proposals, review decisions).
func InvalidateAnalytics(ctx context.Context) {
	if config.Cache == nil {
		return
	}
	if err := config.Cache.Del(ctx, analyticsCacheKey).Err(); err != nil {
		log.Printf("analytics cache: invalidate failed: %v", err)
	}
}
