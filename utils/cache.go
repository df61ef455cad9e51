package utils

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a client from REDIS_ADDR / REDIS_PASSWORD, defaulting
// to a local instance.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// QueryCacheKey derives a deterministic key from a query's parameters: params
// are serialized in sorted-key order and hashed, so equivalent queries share
// a cache entry regardless of parameter order.
func QueryCacheKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return prefix + ":" + hex.EncodeToString(hash[:])
}
