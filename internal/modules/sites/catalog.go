// README: Cached gazetteer lookups used for grounding prompts and choosing waypoints.
package sites

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"nusavarta/internal/logger"
)

const allSitesKey = "sites:all"

// fallbackHold is how long the builtin dataset is served after a store
// failure before the store is tried again.
const fallbackHold = 30 * time.Second

// Catalog caches the backing store's listing and falls back to the embedded
// dataset when the store is unavailable.
type Catalog struct {
	store    Store
	fallback []Site
	cache    *gocache.Cache
	ttl      time.Duration
	hold     time.Duration
	log      *zap.Logger
}

// NewCatalog caches listings for ttl; zero disables caching.
func NewCatalog(store Store, ttl time.Duration, log *zap.Logger) *Catalog {
	return &Catalog{
		store:    store,
		fallback: Builtin(),
		cache:    gocache.New(ttl, 2*ttl),
		ttl:      ttl,
		hold:     fallbackHold,
		log:      logger.OrNop(log).Named("sites"),
	}
}

// All returns every site. It never fails; errors are logged and the embedded
// dataset is served instead, without asking the store again until the hold
// period (capped by the cache ttl) has passed.
func (c *Catalog) All(ctx context.Context) []Site {
	if v, ok := c.cache.Get(allSitesKey); ok {
		return v.([]Site)
	}
	list, err := c.store.List(ctx)
	if err != nil {
		hold := c.hold
		if c.ttl > 0 && c.ttl < hold {
			hold = c.ttl
		}
		c.log.Warn("site store unavailable, serving builtin dataset",
			zap.Duration("retry_in", hold),
			zap.Error(err),
		)
		c.cache.Set(allSitesKey, c.fallback, hold)
		return c.fallback
	}
	if c.ttl > 0 {
		c.cache.Set(allSitesKey, list, c.ttl)
	}
	return list
}

// Located returns the sites that can be routed through.
func (c *Catalog) Located(ctx context.Context) []Site {
	var out []Site
	for _, s := range c.All(ctx) {
		if s.Located() {
			out = append(out, s)
		}
	}
	return out
}

// Match returns the sites whose name or alias occurs in text, ignoring case.
func (c *Catalog) Match(ctx context.Context, text string) []Site {
	lower := strings.ToLower(text)
	var out []Site
	for _, s := range c.All(ctx) {
		if s.MentionedIn(lower) {
			out = append(out, s)
		}
	}
	return out
}

// Grouped buckets the sites by category. A non-empty category keeps only that
// category in every view.
func (c *Catalog) Grouped(ctx context.Context, category string) Grouped {
	g := Grouped{
		Landmarks: []Site{},
		Cultures:  []Site{},
		Museums:   []Site{},
		Temples:   []Site{},
		AllPlaces: []Site{},
	}
	filter := Category(strings.ToLower(strings.TrimSpace(category)))
	for _, s := range c.All(ctx) {
		if filter != "" && s.Category != filter {
			continue
		}
		switch s.Category {
		case CategoryLandmark:
			g.Landmarks = append(g.Landmarks, s)
		case CategoryCulture:
			g.Cultures = append(g.Cultures, s)
		case CategoryMuseum:
			g.Museums = append(g.Museums, s)
		case CategoryTemple:
			g.Temples = append(g.Temples, s)
		}
		g.AllPlaces = append(g.AllPlaces, s)
	}
	g.Total = len(g.AllPlaces)
	return g
}

// Invalidate drops the cached listing.
func (c *Catalog) Invalidate() {
	c.cache.Delete(allSitesKey)
}
