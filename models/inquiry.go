package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InquiryStatus tracks a lead through its workflow. It advances
// NEW -> CONTACTED -> CLOSED outside this module; only set membership is
// validated here.
type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "NEW"
	InquiryContacted InquiryStatus = "CONTACTED"
	InquiryClosed    InquiryStatus = "CLOSED"
)

var InquiryStatuses = []InquiryStatus{InquiryNew, InquiryContacted, InquiryClosed}

func (s InquiryStatus) IsValid() bool {
	for _, v := range InquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Inquiry is a lead message about a single property. PropertyID is a
// non-owning reference: deleting a property does not cascade here, and the
// store does not verify the reference resolves.
type Inquiry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID `bson:"property_id" json:"property_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Message    string             `bson:"message" json:"message"`
	Status     InquiryStatus      `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
