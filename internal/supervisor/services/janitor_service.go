// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package services

import (
	"context"
	"time"

	"github.com/tomtom215/quizfunnel/internal/logging"
)

// Expirer drops expired entries and reports how many it removed.
// *cache.LRU implements it.
type Expirer interface {
	CleanupExpired() int
}

// JanitorService sweeps a TTL cache on a fixed interval so entries that are
// never read again do not hold memory until eviction.
type JanitorService struct {
	cache    Expirer
	interval time.Duration
	name     string
}

// NewJanitorService sweeps c every interval (one minute when non-positive).
func NewJanitorService(name string, c Expirer, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &JanitorService{cache: c, interval: interval, name: name}
}

// Serve implements suture.Service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.cache.CleanupExpired(); n > 0 {
				logging.Debug().Str("cache", j.name).Int("removed", n).Msg("expired cache entries removed")
			}
		}
	}
}

func (j *JanitorService) String() string {
	return j.name + "-janitor"
}
