package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/staynest/staynest-backend/internal/models"
)

// MemoryUserStore is an in-memory UserStore used by the unit tests.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *MemoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favourites == nil {
		user.Favourites = []primitive.ObjectID{}
	}
	if user.Bookings == nil {
		user.Bookings = []primitive.ObjectID{}
	}

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneUser(id)
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) SetRefreshToken(_ context.Context, id primitive.ObjectID, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.RefreshToken = refreshToken
	u.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryUserStore) AddFavourite(_ context.Context, userID, propertyID primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if !containsID(u.Favourites, propertyID) {
		u.Favourites = append(u.Favourites, propertyID)
	}
	u.UpdatedAt = time.Now()
	return s.cloneUser(userID)
}

func (s *MemoryUserStore) RemoveFavourite(_ context.Context, userID, propertyID primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	filtered := u.Favourites[:0]
	for _, id := range u.Favourites {
		if id != propertyID {
			filtered = append(filtered, id)
		}
	}
	u.Favourites = filtered
	u.UpdatedAt = time.Now()
	return s.cloneUser(userID)
}

func (s *MemoryUserStore) AddBooking(_ context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return false, ErrNotFound
	}
	if containsID(u.Bookings, propertyID) {
		return false, nil
	}
	u.Bookings = append(u.Bookings, propertyID)
	u.UpdatedAt = time.Now()
	return true, nil
}

// cloneUser must be called with the lock held.
func (s *MemoryUserStore) cloneUser(id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	clone.Favourites = append([]primitive.ObjectID{}, u.Favourites...)
	clone.Bookings = append([]primitive.ObjectID{}, u.Bookings...)
	return &clone, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// MemoryPropertyStore is an in-memory PropertyStore used by the unit tests.
type MemoryPropertyStore struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]*models.Property
}

func NewMemoryPropertyStore() *MemoryPropertyStore {
	return &MemoryPropertyStore{properties: make(map[primitive.ObjectID]*models.Property)}
}

func (s *MemoryPropertyStore) Insert(_ context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	clone := *property
	s.properties[property.ID] = &clone
	return nil
}

func (s *MemoryPropertyStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *MemoryPropertyStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Property{}
	for _, id := range ids {
		if p, ok := s.properties[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *MemoryPropertyStore) List(_ context.Context, opts ListOptions) ([]models.Property, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	all := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		all = append(all, *p)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	sort.Slice(all, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "title":
			less = all[i].Title < all[j].Title
		case "rating":
			less = all[i].Rating < all[j].Rating
		case "location":
			less = all[i].Location < all[j].Location
		default:
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		if opts.Desc {
			return !less
		}
		return less
	})

	total := int64(len(all))
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *MemoryPropertyStore) Search(_ context.Context, filter SearchFilter) ([]models.Property, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Property{}
	for _, p := range s.properties {
		if filter.Location != "" &&
			!strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.CheckIn != nil {
			if p.Availability == nil || p.Availability.From.After(*filter.CheckIn) {
				continue
			}
		}
		if filter.CheckOut != nil {
			if p.Availability == nil || p.Availability.To.Before(*filter.CheckOut) {
				continue
			}
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *MemoryPropertyStore) Update(_ context.Context, id primitive.ObjectID, patch PropertyPatch) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Img != nil {
		p.Img = *patch.Img
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Desc != nil {
		p.Desc = *patch.Desc
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	p.UpdatedAt = time.Now()

	clone := *p
	return &clone, nil
}

func (s *MemoryPropertyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return ErrNotFound
	}
	delete(s.properties, id)
	return nil
}
