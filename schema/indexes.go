package schema

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// server error codes when an index with the same name or keys already exists
const (
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// Index names, referenced by the store when mapping duplicate-key errors.
const (
	IndexUserEmail          = "ux_users_email"
	IndexPropertyLocation   = "gx_properties_location"
	IndexStatusTypePrice    = "ix_status_type_price"
	IndexCity               = "ix_city"
	IndexTitleDescription   = "tx_title_description"
	IndexInquiryPropCreated = "ix_prop_created"
	IndexAgentSchedule      = "ix_agent_schedule"
	IndexPropertySchedule   = "ix_property_schedule"
)

// IndexPlan declares every secondary index the query layer relies on, keyed
// by collection. Any new query pattern gets an entry here first; the store
// must not issue reads these indexes cannot serve.
func IndexPlan() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionUsers: {
			{
				// enforces the global email uniqueness invariant
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName(IndexUserEmail).SetUnique(true),
			},
		},
		CollectionProperties: {
			{
				// spherical radius queries over the GeoJSON location
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName(IndexPropertyLocation),
			},
			{
				// status/type filtering with price-ordered scans
				Keys: bson.D{
					{Key: "status", Value: 1},
					{Key: "type", Value: 1},
					{Key: "price", Value: 1},
				},
				Options: options.Index().SetName(IndexStatusTypePrice),
			},
			{
				Keys:    bson.D{{Key: "address.city", Value: 1}},
				Options: options.Index().SetName(IndexCity),
			},
			{
				// relevance-ranked keyword search
				Keys: bson.D{
					{Key: "title", Value: "text"},
					{Key: "description", Value: "text"},
				},
				Options: options.Index().SetName(IndexTitleDescription),
			},
		},
		CollectionInquiries: {
			{
				// latest inquiries per property
				Keys: bson.D{
					{Key: "property_id", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().SetName(IndexInquiryPropCreated),
			},
		},
		CollectionAppointments: {
			{
				Keys: bson.D{
					{Key: "agent_id", Value: 1},
					{Key: "scheduled_at", Value: -1},
				},
				Options: options.Index().SetName(IndexAgentSchedule),
			},
			{
				Keys: bson.D{
					{Key: "property_id", Value: 1},
					{Key: "scheduled_at", Value: -1},
				},
				Options: options.Index().SetName(IndexPropertySchedule),
			},
		},
	}
}

// EnsureIndexes declares the full index plan against the database. Declaring
// an index that already exists with the same spec is a no-op on the server;
// conflicts from a pre-existing index under the same name or keys are
// swallowed so re-runs never fail.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, indexes := range IndexPlan() {
		_, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes)
		if err != nil {
			if isServerErrorCode(err, codeIndexOptionsConflict) || isServerErrorCode(err, codeIndexKeySpecsConflict) {
				continue
			}
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
