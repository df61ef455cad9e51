package store

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"RealEstateDB/models"
	"RealEstateDB/schema"
	"RealEstateDB/utils"
)

// MemoryStore implements Store without a database, for unit tests and for
// environments that lack one. It runs the same validation gate as MongoStore
// and substitutes explicit implementations for the two index-backed query
// primitives: haversine great-circle distance for the radius search and a
// term-frequency scorer over title+description for the text search.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]models.User
	emails       map[string]struct{}
	properties   map[primitive.ObjectID]models.Property
	inquiries    map[primitive.ObjectID]models.Inquiry
	appointments map[primitive.ObjectID]models.Appointment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[primitive.ObjectID]models.User),
		emails:       make(map[string]struct{}),
		properties:   make(map[primitive.ObjectID]models.Property),
		inquiries:    make(map[primitive.ObjectID]models.Inquiry),
		appointments: make(map[primitive.ObjectID]models.Appointment),
	}
}

func (s *MemoryStore) InsertUser(_ context.Context, u *models.User) error {
	if err := schema.ValidateUser(u); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// exact, case-sensitive match, like the unique index
	if _, exists := s.emails[u.Email]; exists {
		return &DuplicateKeyError{
			Collection: schema.CollectionUsers,
			Index:      schema.IndexUserEmail,
			Value:      u.Email,
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.emails[u.Email] = struct{}{}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) InsertProperty(_ context.Context, p *models.Property) error {
	if err := schema.ValidateProperty(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.properties[p.ID] = *p
	return nil
}

func (s *MemoryStore) UpdateProperty(_ context.Context, p *models.Property) error {
	if p.ID.IsZero() {
		return ErrNotFound
	}
	updated := *p
	now := time.Now().UTC()
	updated.UpdatedAt = &now
	if err := schema.ValidateProperty(&updated); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.properties[updated.ID]; !exists {
		return ErrNotFound
	}
	s.properties[updated.ID] = updated
	p.UpdatedAt = updated.UpdatedAt
	return nil
}

func (s *MemoryStore) InsertInquiry(_ context.Context, i *models.Inquiry) error {
	if err := schema.ValidateInquiry(i); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	s.inquiries[i.ID] = *i
	return nil
}

func (s *MemoryStore) InsertAppointment(_ context.Context, a *models.Appointment) error {
	if err := schema.ValidateAppointment(a); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	s.appointments[a.ID] = *a
	return nil
}

func (s *MemoryStore) SearchNearby(_ context.Context, lng, lat, maxMeters float64) ([]models.PropertyWithDistance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.PropertyWithDistance
	for _, p := range s.properties {
		d := utils.Haversine(lng, lat, p.Location.Longitude(), p.Location.Latitude())
		if d <= maxMeters {
			results = append(results, models.PropertyWithDistance{Property: p, DistanceMeters: d})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceMeters != results[j].DistanceMeters {
			return results[i].DistanceMeters < results[j].DistanceMeters
		}
		return bytes.Compare(results[i].ID[:], results[j].ID[:]) < 0
	})
	return results, nil
}

func (s *MemoryStore) SearchText(_ context.Context, query string) ([]models.PropertyWithScore, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.PropertyWithScore
	for _, p := range s.properties {
		score := relevance(terms, tokenize(p.Title+" "+p.Description))
		if score > 0 {
			results = append(results, models.PropertyWithScore{Property: p, Score: score})
		}
	}
	// ties broken by ascending id so identical queries return identical order
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return bytes.Compare(results[i].ID[:], results[j].ID[:]) < 0
	})
	return results, nil
}

func (s *MemoryStore) ListProperties(_ context.Context, filter PropertyFilter) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.Property
	for _, p := range s.properties {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if filter.PriceMin != nil && p.Price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && p.Price > *filter.PriceMax {
			continue
		}
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Price != results[j].Price {
			return results[i].Price < results[j].Price
		}
		return bytes.Compare(results[i].ID[:], results[j].ID[:]) < 0
	})
	if filter.Limit > 0 && int64(len(results)) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

func (s *MemoryStore) PropertiesByCity(_ context.Context, city string) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.Property
	for _, p := range s.properties {
		if p.Address.City == city {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return bytes.Compare(results[i].ID[:], results[j].ID[:]) < 0
	})
	return results, nil
}

func (s *MemoryStore) LatestInquiries(_ context.Context, propertyID primitive.ObjectID, limit int64) ([]models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.Inquiry
	for _, i := range s.inquiries {
		if i.PropertyID == propertyID {
			results = append(results, i)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return bytes.Compare(results[i].ID[:], results[j].ID[:]) < 0
	})
	if limit > 0 && int64(len(results)) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryStore) AgentSchedule(_ context.Context, agentID primitive.ObjectID) ([]models.Appointment, error) {
	return s.filterAppointments(func(a models.Appointment) bool { return a.AgentID == agentID }), nil
}

func (s *MemoryStore) PropertySchedule(_ context.Context, propertyID primitive.ObjectID) ([]models.Appointment, error) {
	return s.filterAppointments(func(a models.Appointment) bool { return a.PropertyID == propertyID }), nil
}

func (s *MemoryStore) filterAppointments(keep func(models.Appointment) bool) []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []models.Appointment
	for _, a := range s.appointments {
		if keep(a) {
			results = append(results, a)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ScheduledAt.After(results[j].ScheduledAt)
	})
	return results
}

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// relevance is a plain term-frequency score: for each query term, the number
// of times it occurs in the document tokens, summed across terms.
func relevance(queryTerms, docTokens []string) float64 {
	freq := make(map[string]int, len(docTokens))
	for _, tok := range docTokens {
		freq[tok]++
	}
	var score float64
	for _, term := range queryTerms {
		score += float64(freq[term])
	}
	return score
}
