package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/scheduler-api/internal/cache"
	"github.com/jwalitptl/scheduler-api/internal/model"
)

const providerPrefix = "slots:"

// Cache is an in-process SlotCache for local runs and tests.
type Cache struct {
	store *gocache.Cache
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cache) Get(ctx context.Context, key cache.WeekKey) (*model.RawWeeklySlotSet, bool, error) {
	v, found := c.store.Get(key.String())
	if !found {
		return nil, false, nil
	}
	set, ok := v.(*model.RawWeeklySlotSet)
	if !ok {
		return nil, false, nil
	}
	return set, true, nil
}

func (c *Cache) Set(ctx context.Context, key cache.WeekKey, set *model.RawWeeklySlotSet) error {
	c.store.SetDefault(key.String(), set)
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, inv cache.Invalidation) error {
	switch inv.Scope {
	case cache.ScopeThisWeek:
		c.store.Delete(cache.WeekKey{ProviderID: inv.ProviderID, WeekStart: inv.WeekStart}.String())
	case cache.ScopeAllWeeksForProvider:
		prefix := providerPrefix + inv.ProviderID.String() + ":"
		for k := range c.store.Items() {
			if strings.HasPrefix(k, prefix) {
				c.store.Delete(k)
			}
		}
	}
	return nil
}
