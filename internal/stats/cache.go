package stats

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/predictle/predictle/internal/domain"
)

const (
	leaderboardCacheSize = 16
	leaderboardCacheTTL  = 15 * time.Second
)

// leaderboardCache holds recently computed leaderboards keyed by limit.
// Write paths do not invalidate it; a ranking view a few seconds stale is
// acceptable and the TTL bounds the staleness.
type leaderboardCache struct {
	lru *expirable.LRU[string, []domain.LeaderboardEntry]
}

func newLeaderboardCache() *leaderboardCache {
	return &leaderboardCache{
		lru: expirable.NewLRU[string, []domain.LeaderboardEntry](leaderboardCacheSize, nil, leaderboardCacheTTL),
	}
}

func (c *leaderboardCache) Get(limit int) ([]domain.LeaderboardEntry, bool) {
	return c.lru.Get(strconv.Itoa(limit))
}

func (c *leaderboardCache) Set(limit int, entries []domain.LeaderboardEntry) {
	c.lru.Add(strconv.Itoa(limit), entries)
}
