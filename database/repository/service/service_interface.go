package serviceRepo

import (
	"context"
	"time"

	"pestcontrol/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ServiceRepository defines methods for service data access.
type ServiceRepository interface {
	// Create inserts a new service. Slug collisions wrap database.ErrDuplicateKey.
	Create(ctx context.Context, s *models.Service) error
	// GetByID returns the service whatever its status, or nil, nil.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// GetBySlug returns any service holding slug, soft-deleted ones included.
	GetBySlug(ctx context.Context, slug string) (*models.Service, error)
	// GetPublicBySlug returns an active, non-deleted service, or nil, nil.
	GetPublicBySlug(ctx context.Context, slug string) (*models.Service, error)
	// Update applies set to a non-deleted service and reports whether it matched.
	Update(ctx context.Context, id string, set bson.M) (bool, error)
	// MarkDeleted soft-deletes a service and reports whether it changed.
	MarkDeleted(ctx context.Context, id string) (bool, error)
	// IncrementViews adds one view to a non-deleted service.
	IncrementViews(ctx context.Context, id string) error
	// IncrementBookingsBySlug adds one booking to a non-deleted service.
	IncrementBookingsBySlug(ctx context.Context, slug string) error
	// FindPublic returns one page of the public listing.
	FindPublic(ctx context.Context, filter models.ServiceFilter, page models.PageRequest) ([]models.Service, error)
	// CountPublic counts the public listing.
	CountPublic(ctx context.Context, filter models.ServiceFilter) (int64, error)
	// FindAll returns one page of non-deleted services in any status, newest first.
	FindAll(ctx context.Context, page models.PageRequest) ([]models.Service, error)
	// CountAll counts non-deleted services in any status.
	CountAll(ctx context.Context) (int64, error)
	// CountFeatured counts non-deleted featured services.
	CountFeatured(ctx context.Context) (int64, error)
}

// FeaturedCounter is a read of the featured slot counter. Version and
// UpdatedAt move on every change.
type FeaturedCounter struct {
	Count     int64     `bson:"count"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// FeaturedSlots is an atomic counter of featured services. Reserve succeeds
// only while fewer than max slots are taken.
type FeaturedSlots interface {
	Reserve(ctx context.Context, max int) (bool, error)
	Release(ctx context.Context) error
	// Snapshot reads the counter. A missing counter reads as the zero value.
	Snapshot(ctx context.Context) (FeaturedCounter, error)
	// Raise lifts the counter to at least count. It never lowers it.
	Raise(ctx context.Context, count int64) error
	// Lower sets the counter to count only while it is still at version.
	Lower(ctx context.Context, version, count int64) (bool, error)
}
