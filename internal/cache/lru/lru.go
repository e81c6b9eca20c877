package lru

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jwalitptl/scheduler-api/internal/cache"
	"github.com/jwalitptl/scheduler-api/internal/model"
)

// Cache is a bounded in-process SlotCache. Unlike the memory adapter it
// caps resident weeks, which suits single-instance deployments without
// redis but with many providers.
type Cache struct {
	store *lru.Cache[cache.WeekKey, *model.RawWeeklySlotSet]
}

func New(size int) (*Cache, error) {
	store, err := lru.New[cache.WeekKey, *model.RawWeeklySlotSet](size)
	if err != nil {
		return nil, err
	}
	return &Cache{store: store}, nil
}

func (c *Cache) Get(ctx context.Context, key cache.WeekKey) (*model.RawWeeklySlotSet, bool, error) {
	set, found := c.store.Get(key)
	if !found {
		return nil, false, nil
	}
	return set, true, nil
}

func (c *Cache) Set(ctx context.Context, key cache.WeekKey, set *model.RawWeeklySlotSet) error {
	c.store.Add(key, set)
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, inv cache.Invalidation) error {
	switch inv.Scope {
	case cache.ScopeThisWeek:
		c.store.Remove(cache.WeekKey{ProviderID: inv.ProviderID, WeekStart: inv.WeekStart})
	case cache.ScopeAllWeeksForProvider:
		for _, key := range c.store.Keys() {
			if key.ProviderID == inv.ProviderID {
				c.store.Remove(key)
			}
		}
	}
	return nil
}
