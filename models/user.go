package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role classifies a user account. The set is closed: validation rejects any
// value outside it, case-sensitively.
type Role string

const (
	RoleAgent  Role = "AGENT"
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

// Roles is the set of allowed user roles.
var Roles = []Role{RoleAgent, RoleClient, RoleAdmin}

// IsValid checks if a role is recognized.
func (r Role) IsValid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"full_name" json:"full_name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
