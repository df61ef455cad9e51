package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"RealEstateDB/models"
	"RealEstateDB/schema"
)

// MongoStore persists documents in MongoDB. The backing database is expected
// to have been prepared with schema.EnsureCollections and
// schema.EnsureIndexes; the geospatial and text queries depend on those
// indexes existing.
type MongoStore struct {
	users        *mongo.Collection
	properties   *mongo.Collection
	inquiries    *mongo.Collection
	appointments *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:        db.Collection(schema.CollectionUsers),
		properties:   db.Collection(schema.CollectionProperties),
		inquiries:    db.Collection(schema.CollectionInquiries),
		appointments: db.Collection(schema.CollectionAppointments),
	}
}

func (s *MongoStore) InsertUser(ctx context.Context, u *models.User) error {
	if err := schema.ValidateUser(u); err != nil {
		return err
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Collection: schema.CollectionUsers,
				Index:      schema.IndexUserEmail,
				Value:      u.Email,
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertProperty(ctx context.Context, p *models.Property) error {
	if err := schema.ValidateProperty(p); err != nil {
		return err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := s.properties.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// UpdateProperty replaces the stored document and stamps updated_at. The
// replacement is validated as a whole before the write is attempted; on any
// failure the caller's document is left untouched.
func (s *MongoStore) UpdateProperty(ctx context.Context, p *models.Property) error {
	if p.ID.IsZero() {
		return ErrNotFound
	}
	updated := *p
	now := time.Now().UTC()
	updated.UpdatedAt = &now
	if err := schema.ValidateProperty(&updated); err != nil {
		return err
	}
	res, err := s.properties.ReplaceOne(ctx, bson.M{"_id": updated.ID}, &updated)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	p.UpdatedAt = updated.UpdatedAt
	return nil
}

func (s *MongoStore) InsertInquiry(ctx context.Context, i *models.Inquiry) error {
	if err := schema.ValidateInquiry(i); err != nil {
		return err
	}
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	if _, err := s.inquiries.InsertOne(ctx, i); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

func (s *MongoStore) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	if err := schema.ValidateAppointment(a); err != nil {
		return err
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := s.appointments.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// SearchNearby runs a $geoNear stage against the 2dsphere index. Distances
// are computed spherically by the server and surfaced as distance_m.
func (s *MongoStore) SearchNearby(ctx context.Context, lng, lat, maxMeters float64) ([]models.PropertyWithDistance, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$geoNear", Value: bson.M{
			"near":          bson.M{"type": "Point", "coordinates": bson.A{lng, lat}},
			"distanceField": "distance_m",
			"maxDistance":   maxMeters,
			"spherical":     true,
		}}},
	}
	cursor, err := s.properties.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.PropertyWithDistance
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("geo search decode: %w", err)
	}
	return results, nil
}

// SearchText issues a $text query against the (title, description) index and
// sorts by the server's textScore, then ascending _id for stable ties.
func (s *MongoStore) SearchText(ctx context.Context, query string) ([]models.PropertyWithScore, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
			{Key: "_id", Value: 1},
		})
	cursor, err := s.properties.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.PropertyWithScore
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("text search decode: %w", err)
	}
	return results, nil
}

func (s *MongoStore) ListProperties(ctx context.Context, filter PropertyFilter) ([]models.Property, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.PriceMin != nil {
		query["price"] = bson.M{"$gte": *filter.PriceMin}
	}
	if filter.PriceMax != nil {
		if existing, ok := query["price"].(bson.M); ok {
			existing["$lte"] = *filter.PriceMax
		} else {
			query["price"] = bson.M{"$lte": *filter.PriceMax}
		}
	}

	// ascending id breaks equal-price ties, matching the in-memory store
	opts := options.Find().SetSort(bson.D{
		{Key: "price", Value: 1},
		{Key: "_id", Value: 1},
	})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	return s.findProperties(ctx, query, opts)
}

func (s *MongoStore) PropertiesByCity(ctx context.Context, city string) ([]models.Property, error) {
	return s.findProperties(ctx, bson.M{"address.city": city}, options.Find())
}

func (s *MongoStore) findProperties(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Property, error) {
	cursor, err := s.properties.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Property
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return results, nil
}

func (s *MongoStore) LatestInquiries(ctx context.Context, propertyID primitive.ObjectID, limit int64) ([]models.Inquiry, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.inquiries.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Inquiry
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode inquiries: %w", err)
	}
	return results, nil
}

func (s *MongoStore) AgentSchedule(ctx context.Context, agentID primitive.ObjectID) ([]models.Appointment, error) {
	return s.findAppointments(ctx, bson.M{"agent_id": agentID})
}

func (s *MongoStore) PropertySchedule(ctx context.Context, propertyID primitive.ObjectID) ([]models.Appointment, error) {
	return s.findAppointments(ctx, bson.M{"property_id": propertyID})
}

func (s *MongoStore) findAppointments(ctx context.Context, query bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}})
	cursor, err := s.appointments.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Appointment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return results, nil
}
