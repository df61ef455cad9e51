package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType is the closed set of listing categories.
type PropertyType string

const (
	TypeHouse      PropertyType = "HOUSE"
	TypeApartment  PropertyType = "APARTMENT"
	TypeLand       PropertyType = "LAND"
	TypeCommercial PropertyType = "COMMERCIAL"
)

var PropertyTypes = []PropertyType{TypeHouse, TypeApartment, TypeLand, TypeCommercial}

func (t PropertyType) IsValid() bool {
	for _, v := range PropertyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// PropertyStatus is the closed set of listing states. Status transitions
// (FOR_SALE to SOLD, FOR_RENT to RENTED) are driven by business logic outside
// this module; the store only validates membership.
type PropertyStatus string

const (
	StatusForSale PropertyStatus = "FOR_SALE"
	StatusSold    PropertyStatus = "SOLD"
	StatusForRent PropertyStatus = "FOR_RENT"
	StatusRented  PropertyStatus = "RENTED"
)

var PropertyStatuses = []PropertyStatus{StatusForSale, StatusSold, StatusForRent, StatusRented}

func (s PropertyStatus) IsValid() bool {
	for _, v := range PropertyStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Address is an embedded value; it has no identity of its own. Every field
// except PostalCode is required.
type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	Country    string `bson:"country" json:"country"`
}

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude] —
// longitude first. The slice type deliberately admits malformed lengths so
// the validator can reject them instead of the type system hiding them.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a well-formed point from longitude and latitude.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Longitude returns the first coordinate. Valid only on a well-formed point.
func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }

// Latitude returns the second coordinate. Valid only on a well-formed point.
func (p GeoPoint) Latitude() float64 { return p.Coordinates[1] }

type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        PropertyType       `bson:"type" json:"type"`
	Status      PropertyStatus     `bson:"status" json:"status"`
	Bedrooms    *int               `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms   *int               `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	AreaSqFt    *int               `bson:"area_sqft,omitempty" json:"area_sqft,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Amenities   []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Address     Address            `bson:"address" json:"address"`
	Location    GeoPoint           `bson:"location" json:"location"`
	AgentID     primitive.ObjectID `bson:"agent_id" json:"agent_id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// PropertyWithDistance annotates a proximity-search hit with its spherical
// distance from the query center, in meters.
type PropertyWithDistance struct {
	Property       `bson:",inline"`
	DistanceMeters float64 `bson:"distance_m" json:"distance_m"`
}

// PropertyWithScore annotates a text-search hit with its relevance score;
// higher is a better match.
type PropertyWithScore struct {
	Property `bson:",inline"`
	Score    float64 `bson:"score" json:"score"`
}
