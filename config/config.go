package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// ConnectDB establishes the MongoDB connection from MONGODB_URI and
// MONGODB_DATABASE, with local defaults. It fails hard: the module is useless
// without its store.
func ConnectDB() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "real_estate"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	client = c
	db = c.Database(dbName)
}

// GetDatabase returns the connected database handle.
func GetDatabase() *mongo.Database {
	return db
}

// GetCollection returns a handle to a named collection.
func GetCollection(name string) *mongo.Collection {
	return db.Collection(name)
}

// Disconnect closes the MongoDB connection.
func Disconnect() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Failed to disconnect from MongoDB: %v", err)
	}
}

// CacheTTL reads CACHE_TTL_SECONDS as a whole number of seconds, defaulting
// to one minute.
func CacheTTL() time.Duration {
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Minute
}
