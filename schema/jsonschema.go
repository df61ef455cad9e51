package schema

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// server error code when a collection already exists
const codeNamespaceExists = 48

// userSchema mirrors ValidateUser for server-side enforcement.
func userSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"full_name", "email", "role", "created_at"},
			"properties": bson.M{
				"full_name":  bson.M{"bsonType": "string", "minLength": 1},
				"email":      bson.M{"bsonType": "string", "pattern": EmailPattern},
				"phone":      bson.M{"bsonType": "string"},
				"role":       bson.M{"enum": bson.A{"AGENT", "CLIENT", "ADMIN"}},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func propertySchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "type", "status", "price", "location", "address", "agent_id", "created_at"},
			"properties": bson.M{
				"title":       bson.M{"bsonType": "string"},
				"description": bson.M{"bsonType": "string"},
				"type":        bson.M{"enum": bson.A{"HOUSE", "APARTMENT", "LAND", "COMMERCIAL"}},
				"status":      bson.M{"enum": bson.A{"FOR_SALE", "SOLD", "FOR_RENT", "RENTED"}},
				"bedrooms":    bson.M{"bsonType": bson.A{"int", "null"}, "minimum": 0},
				"bathrooms":   bson.M{"bsonType": bson.A{"int", "null"}, "minimum": 0},
				"area_sqft":   bson.M{"bsonType": bson.A{"int", "null"}, "minimum": 0},
				"price":       bson.M{"bsonType": bson.A{"int", "long", "double"}, "minimum": 0},
				"amenities":   bson.M{"bsonType": bson.A{"array", "null"}, "items": bson.M{"bsonType": "string"}},
				"images":      bson.M{"bsonType": bson.A{"array", "null"}, "items": bson.M{"bsonType": "string"}},
				"address": bson.M{
					"bsonType": "object",
					"required": bson.A{"street", "city", "state", "country"},
					"properties": bson.M{
						"street":      bson.M{"bsonType": "string"},
						"city":        bson.M{"bsonType": "string"},
						"state":       bson.M{"bsonType": "string"},
						"postal_code": bson.M{"bsonType": bson.A{"string", "null"}},
						"country":     bson.M{"bsonType": "string"},
					},
				},
				"location": bson.M{
					"bsonType": "object",
					"required": bson.A{"type", "coordinates"},
					"properties": bson.M{
						"type": bson.M{"enum": bson.A{"Point"}},
						"coordinates": bson.M{
							"bsonType": "array",
							"items":    bson.M{"bsonType": "double"},
							"minItems": 2,
							"maxItems": 2,
						},
					},
				},
				"agent_id":   bson.M{"bsonType": "objectId"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func inquirySchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"property_id", "name", "email", "message", "created_at", "status"},
			"properties": bson.M{
				"property_id": bson.M{"bsonType": "objectId"},
				"name":        bson.M{"bsonType": "string"},
				"email":       bson.M{"bsonType": "string", "pattern": EmailPattern},
				"phone":       bson.M{"bsonType": bson.A{"string", "null"}},
				"message":     bson.M{"bsonType": "string"},
				"status":      bson.M{"enum": bson.A{"NEW", "CONTACTED", "CLOSED"}},
				"created_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func appointmentSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"property_id", "agent_id", "scheduled_at", "attendee_name", "created_at"},
			"properties": bson.M{
				"property_id":    bson.M{"bsonType": "objectId"},
				"agent_id":       bson.M{"bsonType": "objectId"},
				"scheduled_at":   bson.M{"bsonType": "date"},
				"attendee_name":  bson.M{"bsonType": "string"},
				"attendee_phone": bson.M{"bsonType": bson.A{"string", "null"}},
				"attendee_email": bson.M{"bsonType": bson.A{"string", "null"}},
				"created_at":     bson.M{"bsonType": "date"},
			},
		},
	}
}

// Validators maps each collection name to its $jsonSchema validator document.
func Validators() map[string]bson.M {
	return map[string]bson.M{
		CollectionUsers:        userSchema(),
		CollectionProperties:   propertySchema(),
		CollectionInquiries:    inquirySchema(),
		CollectionAppointments: appointmentSchema(),
	}
}

// EnsureCollections creates the four collections with their validators
// attached. Re-running against a database that already has them is a no-op:
// NamespaceExists errors are swallowed.
func EnsureCollections(ctx context.Context, db *mongo.Database) error {
	for name, validator := range Validators() {
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			if isServerErrorCode(err, codeNamespaceExists) {
				continue
			}
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	return nil
}

func isServerErrorCode(err error, code int) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == int32(code)
	}
	return false
}
