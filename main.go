package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"RealEstateDB/config"
	"RealEstateDB/schema"
	"RealEstateDB/seed"
	"RealEstateDB/store"
	"RealEstateDB/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	seedData := flag.Bool("seed", false, "insert the example dataset after initializing the store")
	flag.Parse()

	config.ConnectDB()
	defer config.Disconnect()

	ctx := context.Background()
	db := config.GetDatabase()

	// initialize the store: collections with validators, then the index plan
	if err := schema.EnsureCollections(ctx, db); err != nil {
		log.Fatalf("Failed to create collections: %v", err)
	}
	if err := schema.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("Collections and indexes are in place")

	var s store.Store = store.NewMongoStore(db)
	if os.Getenv("REDIS_ADDR") != "" {
		// the cache is optional; without it searches always hit MongoDB
		s = store.NewCachedStore(s, utils.NewRedisClient(), config.CacheTTL())
	}

	if *seedData {
		result, err := seed.Run(ctx, s)
		if err != nil {
			if store.IsDuplicateKey(err) {
				log.Println("Seed data already present, skipping")
			} else {
				log.Fatalf("Failed to seed: %v", err)
			}
		} else {
			log.Printf("Seeded agent=%s client=%s property=%s",
				result.AgentID.Hex(), result.ClientID.Hex(), result.PropertyID.Hex())
		}
	}

	// the two example queries: 5 km around central Accra, then keyword search
	nearby, err := s.SearchNearby(ctx, -0.186964, 5.603717, 5000)
	if err != nil {
		log.Fatalf("Proximity search failed: %v", err)
	}
	for _, hit := range nearby {
		log.Printf("nearby: %s (%s) %.0fm away, price %.0f",
			hit.Title, hit.Address.City, hit.DistanceMeters, hit.Price)
	}

	matches, err := s.SearchText(ctx, "garden modern")
	if err != nil {
		log.Fatalf("Text search failed: %v", err)
	}
	for _, hit := range matches {
		log.Printf("match: %s (score %.2f)", hit.Title, hit.Score)
	}
}
