package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pestcontrol/database"
	serviceRepo "pestcontrol/database/repository/service"
	"pestcontrol/models"

	"go.mongodb.org/mongo-driver/bson"
)

type memTypeRepo struct {
	mu    sync.Mutex
	types map[string]models.CatalogType
	lists int

	// afterList, when set, runs once after the next List has read its result.
	afterList func()
}

func newMemTypeRepo() *memTypeRepo {
	return &memTypeRepo{types: map[string]models.CatalogType{}}
}

func (r *memTypeRepo) Create(_ context.Context, t *models.CatalogType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.types {
		if existing.Name == t.Name {
			return fmt.Errorf("insert: %w", database.ErrDuplicateKey)
		}
	}
	r.types[t.ID] = *t
	return nil
}

func (r *memTypeRepo) GetByID(_ context.Context, id string) (*models.CatalogType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.types[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *memTypeRepo) GetByName(_ context.Context, name string) (*models.CatalogType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.types {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *memTypeRepo) UpdateName(_ context.Context, id, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.types[id]
	if !ok {
		return false, nil
	}
	t.Name = name
	r.types[id] = t
	return true, nil
}

func (r *memTypeRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; !ok {
		return false, nil
	}
	delete(r.types, id)
	return true, nil
}

func (r *memTypeRepo) List(_ context.Context) ([]models.CatalogType, error) {
	r.mu.Lock()
	r.lists++
	out := make([]models.CatalogType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	hook := r.afterList
	r.afterList = nil
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if hook != nil {
		hook()
	}
	return out, nil
}

// memServiceRepo mimics the Mongo repository: unique slugs across deleted
// records, public visibility rules and the featured/createdAt sort.
type memServiceRepo struct {
	mu       sync.Mutex
	services map[string]*models.Service
	order    []string

	// onCreate, when set, runs once before the next Create stores anything.
	onCreate func()
}

func (r *memServiceRepo) hookCreate(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCreate = fn
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{services: map[string]*models.Service{}}
}

func (r *memServiceRepo) Create(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	hook := r.onCreate
	r.onCreate = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.services {
		if existing.Slug == s.Slug {
			return fmt.Errorf("insert: %w", database.ErrDuplicateKey)
		}
	}
	cp := *s
	r.services[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *memServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memServiceRepo) GetBySlug(_ context.Context, slug string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.services {
		if s.Slug == slug {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memServiceRepo) GetPublicBySlug(_ context.Context, slug string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.services {
		if s.Slug == slug && visible(s, models.ServiceFilter{}) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memServiceRepo) Update(_ context.Context, id string, set bson.M) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok || s.IsDeleted {
		return false, nil
	}
	if slug, ok := set["slug"].(string); ok {
		for _, other := range r.services {
			if other.ID != id && other.Slug == slug {
				return false, fmt.Errorf("update: %w", database.ErrDuplicateKey)
			}
		}
	}
	for k, v := range set {
		switch k {
		case "serviceName":
			s.ServiceName = v.(string)
		case "serviceType":
			s.ServiceType = v.(string)
		case "description":
			s.Description = v.(string)
		case "shortDescription":
			s.ShortDescription = v.(string)
		case "image":
			s.Image = v.(string)
		case "slug":
			s.Slug = v.(string)
		case "status":
			s.Status = v.(string)
		case "featured":
			s.Featured = v.(bool)
		case "pests":
			s.Pests = v.([]string)
		case "gallery":
			s.Gallery = v.([]string)
		case "basePrice":
			price := v.(float64)
			s.BasePrice = &price
		}
	}
	return true, nil
}

func (r *memServiceRepo) MarkDeleted(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok || s.IsDeleted {
		return false, nil
	}
	s.IsDeleted = true
	return true, nil
}

func (r *memServiceRepo) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.services[id]; ok && !s.IsDeleted {
		s.Views++
	}
	return nil
}

func (r *memServiceRepo) IncrementBookingsBySlug(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.services {
		if s.Slug == slug && !s.IsDeleted {
			s.Bookings++
		}
	}
	return nil
}

func visible(s *models.Service, f models.ServiceFilter) bool {
	if s.IsDeleted || s.Status != models.ServiceStatusActive {
		return false
	}
	if f.ServiceType != "" && s.ServiceType != f.ServiceType {
		return false
	}
	if f.Featured != nil && s.Featured != *f.Featured {
		return false
	}
	return true
}

func (r *memServiceRepo) matching(keep func(*models.Service) bool) []models.Service {
	var out []models.Service
	for _, id := range r.order {
		if s := r.services[id]; keep(s) {
			cp := *s
			cp.IsDeleted = false
			out = append(out, cp)
		}
	}
	return out
}

func window(in []models.Service, page models.PageRequest) []models.Service {
	start := int(page.Skip())
	if start >= len(in) {
		return []models.Service{}
	}
	end := start + page.Limit
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}

func (r *memServiceRepo) FindPublic(_ context.Context, f models.ServiceFilter, page models.PageRequest) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(func(s *models.Service) bool { return visible(s, f) })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Featured != out[j].Featured {
			return out[i].Featured
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return window(out, page), nil
}

func (r *memServiceRepo) CountPublic(_ context.Context, f models.ServiceFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(func(s *models.Service) bool { return visible(s, f) }))), nil
}

func (r *memServiceRepo) FindAll(_ context.Context, page models.PageRequest) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(func(s *models.Service) bool { return !s.IsDeleted })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, page), nil
}

func (r *memServiceRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(func(s *models.Service) bool { return !s.IsDeleted }))), nil
}

func (r *memServiceRepo) CountFeatured(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(func(s *models.Service) bool { return !s.IsDeleted && s.Featured }))), nil
}

type memSlots struct {
	mu      sync.Mutex
	counter serviceRepo.FeaturedCounter
}

func (m *memSlots) touch(delta int64) {
	m.counter.Count += delta
	m.counter.Version++
	m.counter.UpdatedAt = time.Now()
}

func (m *memSlots) Reserve(_ context.Context, max int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counter.Count >= int64(max) {
		return false, nil
	}
	m.touch(1)
	return true, nil
}

func (m *memSlots) Release(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counter.Count > 0 {
		m.touch(-1)
	}
	return nil
}

func (m *memSlots) Snapshot(_ context.Context) (serviceRepo.FeaturedCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter, nil
}

func (m *memSlots) Raise(_ context.Context, count int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if count > m.counter.Count {
		m.touch(count - m.counter.Count)
	} else {
		m.touch(0)
	}
	return nil
}

func (m *memSlots) Lower(_ context.Context, version, count int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counter.Version != version {
		return false, nil
	}
	m.touch(count - m.counter.Count)
	return true, nil
}

// set overwrites the counter as if it had last changed at updatedAt.
func (m *memSlots) set(count int64, updatedAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter.Count = count
	m.counter.Version++
	m.counter.UpdatedAt = updatedAt
}

func (m *memSlots) value() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter.Count
}
