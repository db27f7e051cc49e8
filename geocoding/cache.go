package geocoding

import (
	"context"
	"sync"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/marty-cz/human-readable-geo-position-in-photo/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// cellHalfExtent is the half-size in degrees of the square credited to a
// resolved place around the queried coordinate, roughly one kilometer.
// Reverse-geocoding providers answer per point, not per area, so nearby
// shots of the same scene reuse the answer instead of a second lookup.
const cellHalfExtent = 0.005

type Stats struct {
	Hits         int `json:"hits"`
	Misses       int `json:"misses"`
	MultiMatches int `json:"multimatches"`
	Total        int `json:"total"`
}

// Counters are process-wide, instance-level numbers live in Stats.
var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocoding_cache_hits",
		Help: "Number of coordinates resolved from the cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocoding_cache_misses",
		Help: "Number of reverse geocoding requests not found in the cache",
	})
	cacheMultiMatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocoding_cache_multimatches",
		Help: "Number of multiple matches found in cache for a given coordinate, also count as miss",
	})
	cacheTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocoding_cache_total",
		Help: "Total number of requests to the geocoding cache",
	})
)

// internalStats has its own lock: the counters are bumped outside the
// quadtree lock, from every worker.
type internalStats struct {
	mu sync.Mutex
	Stats
}

func (s *internalStats) hit() {
	cacheTotal.Inc()
	cacheHits.Inc()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats.Total++
	s.Stats.Hits++
}

func (s *internalStats) miss() {
	cacheTotal.Inc()
	cacheMisses.Inc()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats.Total++
	s.Stats.Misses++
}

func (s *internalStats) multiMatch() {
	cacheTotal.Inc()
	cacheMultiMatches.Inc()
	cacheMisses.Inc()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stats.Total++
	s.Stats.MultiMatches++
	s.Stats.Misses++
}

func (s *internalStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Stats
}

// Cache wraps a Resolver with an in-memory spatial cache. It never persists
// anything.
type Cache struct {
	stats    *internalStats
	delegate Resolver

	qt   *quadtree
	lock sync.RWMutex
}

func NewGeoCache(r Resolver) *Cache {
	return &Cache{stats: &internalStats{}, delegate: r, qt: NewQuadTree(gps.WorldBounds)}
}

func (c *Cache) DumpStats() Stats {
	return c.stats.snapshot()
}

func (c *Cache) ReverseGeocode(ctx context.Context, lat, long float64) (*gps.Address, bool, error) {
	log, ctx := logging.FromWithNameAndFields(ctx, "geocache", zap.Stringer("pos", gps.PointFromLatLon(lat, long)))
	places := c.findPlace(lat, long)
	switch len(places) {
	case 1:
		c.stats.hit()
		return places[0], true, nil
	case 0:
		c.stats.miss()
		log.Debug("No place found in cache")
	default:
		c.stats.multiMatch()
		log.Debug("Multiple places found in cache")
	}
	place, found, err := c.delegate.ReverseGeocode(ctx, lat, long)
	if found {
		c.add(gps.PointFromLatLon(lat, long), place)
	} else if err == nil {
		log.Info("Place not found", zap.Float64("lat", lat), zap.Float64("long", long))
	}
	return place, found, err
}

func (c *Cache) findPlace(lat, long float64) []*gps.Address {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.qt.Find(gps.PointFromLatLon(lat, long))
}

func (c *Cache) add(p gps.Point, place *gps.Address) {
	cell := gps.RectAround(p, cellHalfExtent)
	if !gps.WorldBounds.FullyContains(cell) {
		// Cells straddling the date line or the poles are not cached
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.qt.InsertRect(cell, place)
}

func (c *Cache) Visit(v Visitor) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	c.qt.Visit(v)
}
