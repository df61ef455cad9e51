package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"RealEstateDB/models"
	"RealEstateDB/utils"
)

// CachedStore wraps another Store with a TTL cache over the search reads.
// Writes pass straight through; entries age out rather than being
// invalidated, so a cached read may briefly predate a write. Cache failures
// are never surfaced — a broken Redis degrades to the inner store.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

// getCached loads a JSON-encoded entry into dest, reporting whether the key
// was present.
func (s *CachedStore) getCached(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(data), dest)
}

// setCached stores a JSON-encoded entry under key for the configured TTL.
func (s *CachedStore) setCached(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CachedStore) InsertUser(ctx context.Context, u *models.User) error {
	return s.inner.InsertUser(ctx, u)
}

func (s *CachedStore) InsertProperty(ctx context.Context, p *models.Property) error {
	return s.inner.InsertProperty(ctx, p)
}

func (s *CachedStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	return s.inner.UpdateProperty(ctx, p)
}

func (s *CachedStore) InsertInquiry(ctx context.Context, i *models.Inquiry) error {
	return s.inner.InsertInquiry(ctx, i)
}

func (s *CachedStore) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	return s.inner.InsertAppointment(ctx, a)
}

func (s *CachedStore) SearchNearby(ctx context.Context, lng, lat, maxMeters float64) ([]models.PropertyWithDistance, error) {
	key := utils.QueryCacheKey("search:nearby", map[string]string{
		"lng": strconv.FormatFloat(lng, 'f', -1, 64),
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"max": strconv.FormatFloat(maxMeters, 'f', -1, 64),
	})
	var cached []models.PropertyWithDistance
	if hit, err := s.getCached(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.inner.SearchNearby(ctx, lng, lat, maxMeters)
	if err != nil {
		return nil, err
	}
	_ = s.setCached(ctx, key, results)
	return results, nil
}

func (s *CachedStore) SearchText(ctx context.Context, query string) ([]models.PropertyWithScore, error) {
	key := utils.QueryCacheKey("search:text", map[string]string{"q": query})
	var cached []models.PropertyWithScore
	if hit, err := s.getCached(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.inner.SearchText(ctx, query)
	if err != nil {
		return nil, err
	}
	_ = s.setCached(ctx, key, results)
	return results, nil
}

func (s *CachedStore) ListProperties(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	params := map[string]string{
		"status": string(filter.Status),
		"type":   string(filter.Type),
		"limit":  strconv.FormatInt(filter.Limit, 10),
	}
	if filter.PriceMin != nil {
		params["price_min"] = strconv.FormatFloat(*filter.PriceMin, 'f', -1, 64)
	}
	if filter.PriceMax != nil {
		params["price_max"] = strconv.FormatFloat(*filter.PriceMax, 'f', -1, 64)
	}
	key := utils.QueryCacheKey("properties:list", params)

	var cached []models.Property
	if hit, err := s.getCached(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.inner.ListProperties(ctx, filter)
	if err != nil {
		return nil, err
	}
	_ = s.setCached(ctx, key, results)
	return results, nil
}

func (s *CachedStore) PropertiesByCity(ctx context.Context, city string) ([]models.Property, error) {
	key := utils.QueryCacheKey("properties:city", map[string]string{"city": city})
	var cached []models.Property
	if hit, err := s.getCached(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.inner.PropertiesByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	_ = s.setCached(ctx, key, results)
	return results, nil
}

func (s *CachedStore) LatestInquiries(ctx context.Context, propertyID primitive.ObjectID, limit int64) ([]models.Inquiry, error) {
	return s.inner.LatestInquiries(ctx, propertyID, limit)
}

func (s *CachedStore) AgentSchedule(ctx context.Context, agentID primitive.ObjectID) ([]models.Appointment, error) {
	return s.inner.AgentSchedule(ctx, agentID)
}

func (s *CachedStore) PropertySchedule(ctx context.Context, propertyID primitive.ObjectID) ([]models.Appointment, error) {
	return s.inner.PropertySchedule(ctx, propertyID)
}
