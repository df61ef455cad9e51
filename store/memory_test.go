package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"RealEstateDB/models"
	"RealEstateDB/schema"
)

func newAgent(t *testing.T, s Store, email string) *models.User {
	t.Helper()
	u := &models.User{
		FullName:  "Ama Mensah",
		Email:     email,
		Role:      models.RoleAgent,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.InsertUser(context.Background(), u))
	return u
}

func newListing(agentID primitive.ObjectID, title, description string, lng, lat float64) *models.Property {
	return &models.Property{
		Title:       title,
		Description: description,
		Type:        models.TypeHouse,
		Status:      models.StatusForSale,
		Price:       250000,
		Address: models.Address{
			Street:  "12 Palm St",
			City:    "Accra",
			State:   "Greater Accra",
			Country: "Ghana",
		},
		Location:  models.NewGeoPoint(lng, lat),
		AgentID:   agentID,
		CreatedAt: time.Now().UTC(),
	}
}

func TestInsertUser_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	newAgent(t, s, "ama.agent@example.com")

	dup := &models.User{
		FullName:  "Another Ama",
		Email:     "ama.agent@example.com",
		Role:      models.RoleClient,
		CreatedAt: time.Now().UTC(),
	}
	err := s.InsertUser(ctx, dup)
	require.True(t, IsDuplicateKey(err))

	var dke *DuplicateKeyError
	require.ErrorAs(t, err, &dke)
	require.Equal(t, schema.CollectionUsers, dke.Collection)
	require.Equal(t, schema.IndexUserEmail, dke.Index)

	// exact match only: a different-cased email is a different key
	upper := &models.User{
		FullName:  "Ama Mensah",
		Email:     "AMA.AGENT@example.com",
		Role:      models.RoleAgent,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.InsertUser(ctx, upper))
}

func TestInsert_RejectsInvalidBeforeWrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	p := newListing(agent.ID, "", "", -0.1667, 5.6167)
	err := s.InsertProperty(ctx, p)
	var v *schema.Violation
	require.ErrorAs(t, err, &v)
	require.Equal(t, "title", v.Field)

	// nothing was written
	all, err := s.ListProperties(ctx, PropertyFilter{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSearchNearby(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	house := newListing(agent.ID, "3-Bedroom House in East Legon", "Spacious house with modern kitchen and garden.", -0.1667, 5.6167)
	require.NoError(t, s.InsertProperty(ctx, house))

	// ~2.7km away: inside a 5km radius
	hits, err := s.SearchNearby(ctx, -0.186964, 5.603717, 5000)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, house.ID, hits[0].ID)
	require.Greater(t, hits[0].DistanceMeters, 0.0)
	require.Less(t, hits[0].DistanceMeters, 5000.0)

	// and outside a 10m radius
	hits, err = s.SearchNearby(ctx, -0.186964, 5.603717, 10)
	require.NoError(t, err)
	require.Empty(t, hits)
}

func TestSearchNearby_NearestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	far := newListing(agent.ID, "Far House", "", -0.20, 5.65)
	near := newListing(agent.ID, "Near House", "", -0.186, 5.604)
	require.NoError(t, s.InsertProperty(ctx, far))
	require.NoError(t, s.InsertProperty(ctx, near))

	hits, err := s.SearchNearby(ctx, -0.186964, 5.603717, 50000)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	require.Equal(t, "Near House", hits[0].Title)
	require.Equal(t, "Far House", hits[1].Title)
	require.LessOrEqual(t, hits[0].DistanceMeters, hits[1].DistanceMeters)
}

func TestSearchText_RelevanceRanking(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	both := newListing(agent.ID, "3-Bedroom House in East Legon", "Spacious house with modern kitchen and garden.", -0.1667, 5.6167)
	onlyModern := newListing(agent.ID, "Modern Apartment Downtown", "City views.", -0.18, 5.60)
	neither := newListing(agent.ID, "Beachfront Land", "Prime plot near the coast.", -0.19, 5.59)
	require.NoError(t, s.InsertProperty(ctx, both))
	require.NoError(t, s.InsertProperty(ctx, onlyModern))
	require.NoError(t, s.InsertProperty(ctx, neither))

	hits, err := s.SearchText(ctx, "garden modern")
	require.NoError(t, err)
	require.Len(t, hits, 2)

	require.Equal(t, both.ID, hits[0].ID)
	require.Greater(t, hits[0].Score, 0.0)
	require.Greater(t, hits[0].Score, hits[1].Score)
	require.Equal(t, onlyModern.ID, hits[1].ID)
}

func TestSearchText_TieBrokenByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	a := newListing(agent.ID, "Garden Flat", "", -0.18, 5.60)
	b := newListing(agent.ID, "Garden Villa", "", -0.19, 5.61)
	require.NoError(t, s.InsertProperty(ctx, a))
	require.NoError(t, s.InsertProperty(ctx, b))

	for i := 0; i < 5; i++ {
		hits, err := s.SearchText(ctx, "garden")
		require.NoError(t, err)
		require.Len(t, hits, 2)
		// ObjectIDs are monotonic within a process: a before b
		require.Equal(t, a.ID, hits[0].ID)
		require.Equal(t, b.ID, hits[1].ID)
	}
}

func TestListProperties_FilterAndOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	cheap := newListing(agent.ID, "Cheap House", "", -0.18, 5.60)
	cheap.Price = 100000
	pricey := newListing(agent.ID, "Pricey House", "", -0.19, 5.61)
	pricey.Price = 900000
	rental := newListing(agent.ID, "Rental Flat", "", -0.17, 5.62)
	rental.Type = models.TypeApartment
	rental.Status = models.StatusForRent
	rental.Price = 2000
	require.NoError(t, s.InsertProperty(ctx, cheap))
	require.NoError(t, s.InsertProperty(ctx, pricey))
	require.NoError(t, s.InsertProperty(ctx, rental))

	forSale, err := s.ListProperties(ctx, PropertyFilter{Status: models.StatusForSale})
	require.NoError(t, err)
	require.Len(t, forSale, 2)
	require.Equal(t, "Cheap House", forSale[0].Title)
	require.Equal(t, "Pricey House", forSale[1].Title)

	min, max := 50000.0, 500000.0
	mid, err := s.ListProperties(ctx, PropertyFilter{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	require.Len(t, mid, 1)
	require.Equal(t, "Cheap House", mid[0].Title)

	flats, err := s.ListProperties(ctx, PropertyFilter{Type: models.TypeApartment, Status: models.StatusForRent})
	require.NoError(t, err)
	require.Len(t, flats, 1)
}

func TestPropertiesByCity(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	accra := newListing(agent.ID, "Accra House", "", -0.18, 5.60)
	kumasi := newListing(agent.ID, "Kumasi House", "", -1.62, 6.69)
	kumasi.Address.City = "Kumasi"
	require.NoError(t, s.InsertProperty(ctx, accra))
	require.NoError(t, s.InsertProperty(ctx, kumasi))

	got, err := s.PropertiesByCity(ctx, "Accra")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Accra House", got[0].Title)
}

func TestUpdateProperty(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	p := newListing(agent.ID, "3-Bedroom House", "", -0.18, 5.60)
	require.NoError(t, s.InsertProperty(ctx, p))
	require.Nil(t, p.UpdatedAt)

	p.Status = models.StatusSold
	require.NoError(t, s.UpdateProperty(ctx, p))
	require.NotNil(t, p.UpdatedAt)

	got, err := s.ListProperties(ctx, PropertyFilter{Status: models.StatusSold})
	require.NoError(t, err)
	require.Len(t, got, 1)

	// invalid replacement is rejected, stored document untouched
	stamp := p.UpdatedAt
	p.Type = "BOAT"
	err = s.UpdateProperty(ctx, p)
	var v *schema.Violation
	require.ErrorAs(t, err, &v)
	require.Equal(t, stamp, p.UpdatedAt, "rejected update must not restamp updated_at")
	got, err = s.ListProperties(ctx, PropertyFilter{Type: models.TypeHouse})
	require.NoError(t, err)
	require.Len(t, got, 1)

	missing := newListing(agent.ID, "Ghost House", "", -0.18, 5.60)
	missing.ID = primitive.NewObjectID()
	require.ErrorIs(t, s.UpdateProperty(ctx, missing), ErrNotFound)
	require.Nil(t, missing.UpdatedAt, "failed update must leave the document unmodified")
}

// A document rejected on its first update attempt must not come back claiming
// it was modified.
func TestUpdateProperty_NoStampOnRejection(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	p := newListing(agent.ID, "3-Bedroom House", "", -0.18, 5.60)
	require.NoError(t, s.InsertProperty(ctx, p))

	p.Type = "BOAT"
	err := s.UpdateProperty(ctx, p)
	var v *schema.Violation
	require.ErrorAs(t, err, &v)
	require.Nil(t, p.UpdatedAt)
}

func TestLatestInquiries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	p := newListing(agent.ID, "3-Bedroom House", "", -0.18, 5.60)
	require.NoError(t, s.InsertProperty(ctx, p))

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		inq := &models.Inquiry{
			PropertyID: p.ID,
			Name:       "Kojo Owusu",
			Email:      "kojo.client@example.com",
			Message:    "Still available?",
			Status:     models.InquiryNew,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.InsertInquiry(ctx, inq))
	}

	latest, err := s.LatestInquiries(ctx, p.ID, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.True(t, latest[0].CreatedAt.After(latest[1].CreatedAt))

	none, err := s.LatestInquiries(ctx, primitive.NewObjectID(), 10)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestLatestInquiries_EqualTimestampsOrderedByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	p := newListing(agent.ID, "3-Bedroom House", "", -0.18, 5.60)
	require.NoError(t, s.InsertProperty(ctx, p))

	at := time.Now().UTC()
	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		inq := &models.Inquiry{
			PropertyID: p.ID,
			Name:       "Kojo Owusu",
			Email:      "kojo.client@example.com",
			Message:    "Still available?",
			Status:     models.InquiryNew,
			CreatedAt:  at,
		}
		require.NoError(t, s.InsertInquiry(ctx, inq))
		ids = append(ids, inq.ID)
	}

	for run := 0; run < 5; run++ {
		got, err := s.LatestInquiries(ctx, p.ID, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, inq := range got {
			require.Equal(t, ids[i], inq.ID)
		}
	}
}

func TestListProperties_EqualPriceOrderedByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")

	a := newListing(agent.ID, "House A", "", -0.18, 5.60)
	b := newListing(agent.ID, "House B", "", -0.19, 5.61)
	require.NoError(t, s.InsertProperty(ctx, a))
	require.NoError(t, s.InsertProperty(ctx, b))

	for run := 0; run < 5; run++ {
		got, err := s.ListProperties(ctx, PropertyFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, a.ID, got[0].ID)
		require.Equal(t, b.ID, got[1].ID)
	}
}

func TestSchedules(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	agent := newAgent(t, s, "ama.agent@example.com")
	other := newAgent(t, s, "kofi.agent@example.com")

	p := newListing(agent.ID, "3-Bedroom House", "", -0.18, 5.60)
	require.NoError(t, s.InsertProperty(ctx, p))

	base := time.Now().UTC()
	mk := func(agentID primitive.ObjectID, offset time.Duration) {
		a := &models.Appointment{
			PropertyID:   p.ID,
			AgentID:      agentID,
			ScheduledAt:  base.Add(offset),
			AttendeeName: "Kojo Owusu",
			CreatedAt:    base,
		}
		require.NoError(t, s.InsertAppointment(ctx, a))
	}
	mk(agent.ID, 24*time.Hour)
	mk(agent.ID, 72*time.Hour)
	mk(other.ID, 48*time.Hour)

	mine, err := s.AgentSchedule(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.True(t, mine[0].ScheduledAt.After(mine[1].ScheduledAt))

	all, err := s.PropertySchedule(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

// The store does not check that references resolve; a dangling property_id is
// accepted by design.
func TestInquiry_DanglingReferenceAccepted(t *testing.T) {
	s := NewMemoryStore()
	inq := &models.Inquiry{
		PropertyID: primitive.NewObjectID(),
		Name:       "Kojo Owusu",
		Email:      "kojo.client@example.com",
		Message:    "About a property that does not exist",
		Status:     models.InquiryNew,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.InsertInquiry(context.Background(), inq))
}
