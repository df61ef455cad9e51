package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment is a scheduled viewing. ScheduledAt is not required to be in
// the future relative to CreatedAt; no such check exists in the schema.
type Appointment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID    primitive.ObjectID `bson:"property_id" json:"property_id"`
	AgentID       primitive.ObjectID `bson:"agent_id" json:"agent_id"`
	ScheduledAt   time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	AttendeeName  string             `bson:"attendee_name" json:"attendee_name"`
	AttendeePhone string             `bson:"attendee_phone,omitempty" json:"attendee_phone,omitempty"`
	AttendeeEmail string             `bson:"attendee_email,omitempty" json:"attendee_email,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
