// Package store is the write gate and query layer over the four collections.
// Every insert and update runs the schema validators before touching storage;
// a rejected document is never partially written. Reads only use query shapes
// the index plan in package schema can serve.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"RealEstateDB/models"
)

// Store is the contract both the Mongo-backed and the in-memory
// implementations satisfy. Writes fail with *schema.Violation for invalid
// documents and *DuplicateKeyError for unique-index conflicts; neither is
// transient, so callers must not retry.
type Store interface {
	InsertUser(ctx context.Context, u *models.User) error
	InsertProperty(ctx context.Context, p *models.Property) error
	UpdateProperty(ctx context.Context, p *models.Property) error
	InsertInquiry(ctx context.Context, i *models.Inquiry) error
	InsertAppointment(ctx context.Context, a *models.Appointment) error

	// SearchNearby returns properties within maxMeters of the center,
	// nearest first, each annotated with its spherical distance in meters.
	SearchNearby(ctx context.Context, lng, lat, maxMeters float64) ([]models.PropertyWithDistance, error)

	// SearchText returns properties matching the free-text query, ordered by
	// descending relevance score; equal scores are broken by ascending id.
	SearchText(ctx context.Context, query string) ([]models.PropertyWithScore, error)

	ListProperties(ctx context.Context, filter PropertyFilter) ([]models.Property, error)
	PropertiesByCity(ctx context.Context, city string) ([]models.Property, error)
	LatestInquiries(ctx context.Context, propertyID primitive.ObjectID, limit int64) ([]models.Inquiry, error)
	AgentSchedule(ctx context.Context, agentID primitive.ObjectID) ([]models.Appointment, error)
	PropertySchedule(ctx context.Context, propertyID primitive.ObjectID) ([]models.Appointment, error)
}

// PropertyFilter narrows a listing scan. Zero values mean "any". The shape
// matches the (status, type, price) compound index: equality on status and
// type, range on price, results ordered by ascending price.
type PropertyFilter struct {
	Status   models.PropertyStatus
	Type     models.PropertyType
	PriceMin *float64
	PriceMax *float64
	Limit    int64
}
