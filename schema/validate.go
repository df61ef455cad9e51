// Package schema is the single source of truth for the four collection
// shapes: required fields, types, enumerated sets, and the indexes that back
// the query layer. The same rules exist twice on purpose — as Go validators
// run before every write, and as $jsonSchema documents installed on the
// collections so the database enforces them for any other writer.
package schema

import (
	"fmt"
	"regexp"

	"RealEstateDB/models"
)

// Collection names. The validators and index plan are declared against these
// exact namespaces.
const (
	CollectionUsers        = "users"
	CollectionProperties   = "properties"
	CollectionInquiries    = "inquiries"
	CollectionAppointments = "appointments"
)

// EmailPattern is deliberately permissive: something, '@', something, '.',
// something. Full RFC 5322 is not the goal.
const EmailPattern = `^.+@.+\..+$`

var emailRe = regexp.MustCompile(EmailPattern)

// Violation reports the first constraint a document failed. Checks run in a
// fixed order (required fields first, then type/pattern/enum/bounds), so
// identical input always yields the identical violation.
type Violation struct {
	Entity string
	Field  string
	Reason string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s.%s: %s", v.Entity, v.Field, v.Reason)
}

func violation(entity, field, reason string) *Violation {
	return &Violation{Entity: entity, Field: field, Reason: reason}
}

// ValidateUser checks a user document against the users collection schema.
func ValidateUser(u *models.User) error {
	if u.FullName == "" {
		return violation("users", "full_name", "required field is missing or empty")
	}
	if u.Email == "" {
		return violation("users", "email", "required field is missing or empty")
	}
	if u.Role == "" {
		return violation("users", "role", "required field is missing or empty")
	}
	if u.CreatedAt.IsZero() {
		return violation("users", "created_at", "required field is missing or empty")
	}
	if !emailRe.MatchString(u.Email) {
		return violation("users", "email", fmt.Sprintf("%q does not match pattern %s", u.Email, EmailPattern))
	}
	if !u.Role.IsValid() {
		return violation("users", "role", fmt.Sprintf("%q is not one of %v", u.Role, models.Roles))
	}
	return nil
}

// ValidateProperty checks a property document, including the embedded address
// and GeoJSON location.
func ValidateProperty(p *models.Property) error {
	if p.Title == "" {
		return violation("properties", "title", "required field is missing or empty")
	}
	if p.Type == "" {
		return violation("properties", "type", "required field is missing or empty")
	}
	if p.Status == "" {
		return violation("properties", "status", "required field is missing or empty")
	}
	if p.AgentID.IsZero() {
		return violation("properties", "agent_id", "required field is missing or empty")
	}
	if p.CreatedAt.IsZero() {
		return violation("properties", "created_at", "required field is missing or empty")
	}
	if !p.Type.IsValid() {
		return violation("properties", "type", fmt.Sprintf("%q is not one of %v", p.Type, models.PropertyTypes))
	}
	if !p.Status.IsValid() {
		return violation("properties", "status", fmt.Sprintf("%q is not one of %v", p.Status, models.PropertyStatuses))
	}
	if p.Price < 0 {
		return violation("properties", "price", fmt.Sprintf("must be >= 0, got %v", p.Price))
	}
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		return violation("properties", "bedrooms", fmt.Sprintf("must be >= 0, got %d", *p.Bedrooms))
	}
	if p.Bathrooms != nil && *p.Bathrooms < 0 {
		return violation("properties", "bathrooms", fmt.Sprintf("must be >= 0, got %d", *p.Bathrooms))
	}
	if p.AreaSqFt != nil && *p.AreaSqFt < 0 {
		return violation("properties", "area_sqft", fmt.Sprintf("must be >= 0, got %d", *p.AreaSqFt))
	}
	if err := validateAddress(&p.Address); err != nil {
		return err
	}
	return validateLocation(&p.Location)
}

func validateAddress(a *models.Address) error {
	if a.Street == "" {
		return violation("properties", "address.street", "required field is missing or empty")
	}
	if a.City == "" {
		return violation("properties", "address.city", "required field is missing or empty")
	}
	if a.State == "" {
		return violation("properties", "address.state", "required field is missing or empty")
	}
	if a.Country == "" {
		return violation("properties", "address.country", "required field is missing or empty")
	}
	return nil
}

func validateLocation(p *models.GeoPoint) error {
	if p.Type != "Point" {
		return violation("properties", "location.type", fmt.Sprintf("must be \"Point\", got %q", p.Type))
	}
	if len(p.Coordinates) != 2 {
		return violation("properties", "location.coordinates", fmt.Sprintf("must be [longitude, latitude], got %d elements", len(p.Coordinates)))
	}
	lng, lat := p.Coordinates[0], p.Coordinates[1]
	if lng < -180 || lng > 180 {
		return violation("properties", "location.coordinates", fmt.Sprintf("longitude %v out of range [-180, 180]", lng))
	}
	if lat < -90 || lat > 90 {
		return violation("properties", "location.coordinates", fmt.Sprintf("latitude %v out of range [-90, 90]", lat))
	}
	return nil
}

// ValidateInquiry checks a lead message document. PropertyID is required to
// be present but not to resolve; referential integrity is a convention here.
func ValidateInquiry(i *models.Inquiry) error {
	if i.PropertyID.IsZero() {
		return violation("inquiries", "property_id", "required field is missing or empty")
	}
	if i.Name == "" {
		return violation("inquiries", "name", "required field is missing or empty")
	}
	if i.Email == "" {
		return violation("inquiries", "email", "required field is missing or empty")
	}
	if i.Message == "" {
		return violation("inquiries", "message", "required field is missing or empty")
	}
	if i.Status == "" {
		return violation("inquiries", "status", "required field is missing or empty")
	}
	if i.CreatedAt.IsZero() {
		return violation("inquiries", "created_at", "required field is missing or empty")
	}
	if !emailRe.MatchString(i.Email) {
		return violation("inquiries", "email", fmt.Sprintf("%q does not match pattern %s", i.Email, EmailPattern))
	}
	if !i.Status.IsValid() {
		return violation("inquiries", "status", fmt.Sprintf("%q is not one of %v", i.Status, models.InquiryStatuses))
	}
	return nil
}

// ValidateAppointment checks a viewing document. ScheduledAt may be in the
// past; no ordering against CreatedAt is enforced.
func ValidateAppointment(a *models.Appointment) error {
	if a.PropertyID.IsZero() {
		return violation("appointments", "property_id", "required field is missing or empty")
	}
	if a.AgentID.IsZero() {
		return violation("appointments", "agent_id", "required field is missing or empty")
	}
	if a.ScheduledAt.IsZero() {
		return violation("appointments", "scheduled_at", "required field is missing or empty")
	}
	if a.AttendeeName == "" {
		return violation("appointments", "attendee_name", "required field is missing or empty")
	}
	if a.CreatedAt.IsZero() {
		return violation("appointments", "created_at", "required field is missing or empty")
	}
	return nil
}
