// README: Redis read-through caches for geocoding and routing results.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"freightdesk/internal/types"
)

// routeKeyPrecision of 7 geohash characters is a cell of roughly 150m.
const routeKeyPrecision = 7

type CachedResolver struct {
	next GeoResolver
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedResolver(next GeoResolver, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedResolver {
	return &CachedResolver{next: next, rdb: rdb, ttl: ttl, log: log}
}

func placeKey(place string) string {
	return "geo:place:" + strings.ToLower(strings.Join(strings.Fields(place), " "))
}

func (c *CachedResolver) Resolve(ctx context.Context, place string) (types.Point, error) {
	key := placeKey(place)
	var p types.Point
	if hit, err := getJSON(ctx, c.rdb, key, &p); err != nil {
		c.log.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return p, nil
	}

	p, err := c.next.Resolve(ctx, place)
	if err != nil {
		return types.Point{}, err
	}
	if err := setJSON(ctx, c.rdb, key, p, c.ttl); err != nil {
		c.log.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
	return p, nil
}

type CachedRouter struct {
	next RoadRouter
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedRouter(next RoadRouter, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedRouter {
	return &CachedRouter{next: next, rdb: rdb, ttl: ttl, log: log}
}

// RouteKey buckets both endpoints into geohash cells so nearby lookups share
// an entry.
func RouteKey(from, to types.Point) string {
	return "route:" + geohash.EncodeWithPrecision(from.Lat, from.Lng, routeKeyPrecision) +
		":" + geohash.EncodeWithPrecision(to.Lat, to.Lng, routeKeyPrecision)
}

func (c *CachedRouter) Route(ctx context.Context, from, to types.Point) (Route, error) {
	key := RouteKey(from, to)
	var r Route
	if hit, err := getJSON(ctx, c.rdb, key, &r); err != nil {
		c.log.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return r, nil
	}

	r, err := c.next.Route(ctx, from, to)
	if err != nil {
		return Route{}, err
	}
	if err := setJSON(ctx, c.rdb, key, r, c.ttl); err != nil {
		c.log.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
	}
	return r, nil
}

func getJSON(ctx context.Context, rdb *redis.Client, key string, dst any) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func setJSON(ctx context.Context, rdb *redis.Client, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, raw, ttl).Err()
}
