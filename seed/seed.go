// Package seed loads a small, self-consistent dataset: one agent, one client,
// a listed house in Accra, an inquiry about it, and a viewing three days out.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"RealEstateDB/models"
	"RealEstateDB/store"
)

// Result holds the identifiers of the seeded documents for follow-up queries.
type Result struct {
	AgentID    primitive.ObjectID
	ClientID   primitive.ObjectID
	PropertyID primitive.ObjectID
}

func intPtr(v int) *int { return &v }

// Run inserts the seed dataset through the validation gate. Seeding a store
// that already holds the agent's email fails with a duplicate-key error, so
// it is safe against accidental double-runs.
func Run(ctx context.Context, s store.Store) (*Result, error) {
	now := time.Now().UTC()

	agent := &models.User{
		FullName:  "Ama Mensah",
		Email:     "ama.agent@example.com",
		Phone:     "+233555000111",
		Role:      models.RoleAgent,
		CreatedAt: now,
	}
	if err := s.InsertUser(ctx, agent); err != nil {
		return nil, fmt.Errorf("seed agent: %w", err)
	}

	client := &models.User{
		FullName:  "Kojo Owusu",
		Email:     "kojo.client@example.com",
		Phone:     "+233555000222",
		Role:      models.RoleClient,
		CreatedAt: now,
	}
	if err := s.InsertUser(ctx, client); err != nil {
		return nil, fmt.Errorf("seed client: %w", err)
	}

	house := &models.Property{
		Title:       "3-Bedroom House in East Legon",
		Description: "Spacious house with modern kitchen and garden.",
		Type:        models.TypeHouse,
		Status:      models.StatusForSale,
		Bedrooms:    intPtr(3),
		Bathrooms:   intPtr(2),
		AreaSqFt:    intPtr(2200),
		Price:       250000,
		Amenities:   []string{"Garden", "Parking", "Air Conditioning"},
		Images:      []string{},
		Address: models.Address{
			Street:     "12 Palm St",
			City:       "Accra",
			State:      "Greater Accra",
			PostalCode: "00233",
			Country:    "Ghana",
		},
		Location:  models.NewGeoPoint(-0.1667, 5.6167),
		AgentID:   agent.ID,
		CreatedAt: now,
	}
	if err := s.InsertProperty(ctx, house); err != nil {
		return nil, fmt.Errorf("seed property: %w", err)
	}

	inquiry := &models.Inquiry{
		PropertyID: house.ID,
		Name:       "Kojo Owusu",
		Email:      "kojo.client@example.com",
		Phone:      "+233555000222",
		Message:    "Is this house still available? Can I schedule a viewing?",
		Status:     models.InquiryNew,
		CreatedAt:  now,
	}
	if err := s.InsertInquiry(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("seed inquiry: %w", err)
	}

	viewing := &models.Appointment{
		PropertyID:    house.ID,
		AgentID:       agent.ID,
		ScheduledAt:   now.Add(3 * 24 * time.Hour),
		AttendeeName:  "Kojo Owusu",
		AttendeePhone: "+233555000222",
		AttendeeEmail: "kojo.client@example.com",
		CreatedAt:     now,
	}
	if err := s.InsertAppointment(ctx, viewing); err != nil {
		return nil, fmt.Errorf("seed appointment: %w", err)
	}

	return &Result{
		AgentID:    agent.ID,
		ClientID:   client.ID,
		PropertyID: house.ID,
	}, nil
}
