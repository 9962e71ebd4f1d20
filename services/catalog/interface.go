package catalog

import (
	"context"
	"sync/atomic"
	"time"

	catalogTypeRepo "pestcontrol/database/repository/catalogtype"
	serviceRepo "pestcontrol/database/repository/service"
	"pestcontrol/models"
	"pestcontrol/utils"
)

// TypeService manages one kind of catalog type (service types or area types).
type TypeService interface {
	Create(ctx context.Context, name string) (*models.CatalogType, error)
	Update(ctx context.Context, id, name string) (*models.CatalogType, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.CatalogType, error)
}

// DefaultTypeService is the production TypeService. Label names the kind in
// error messages ("service type", "area type").
type DefaultTypeService struct {
	Label string
	Repo  catalogTypeRepo.CatalogTypeRepository
	Cache utils.ListCache

	// gen counts invalidations so List never caches a read older than one.
	gen atomic.Uint64
}

func NewDefaultTypeService(label string, repo catalogTypeRepo.CatalogTypeRepository, cache utils.ListCache) *DefaultTypeService {
	return &DefaultTypeService{Label: label, Repo: repo, Cache: cache}
}

// ServiceCatalog is the read and write surface over services.
type ServiceCatalog interface {
	// Writes (admin).
	CreateService(ctx context.Context, in models.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id string, in models.ServiceUpdate) (*models.Service, error)
	SoftDeleteService(ctx context.Context, id string) error
	ListAllServices(ctx context.Context, page models.PageRequest) (*models.ServicePage, error)

	// Public reads.
	ListPublic(ctx context.Context, filter models.ServiceFilter, page models.PageRequest) (*models.ServicePage, error)
	GetBySlug(ctx context.Context, slug string) (*models.Service, error)

	// Counters. Both are best-effort and only log failures.
	IncrementViews(ctx context.Context, id string)
	RecordBooking(ctx context.Context, slug string)

	// ReconcileFeatured repairs the featured counter from stored services.
	ReconcileFeatured(ctx context.Context) error
}

// DefaultServiceCatalog is the production ServiceCatalog.
type DefaultServiceCatalog struct {
	Repo  serviceRepo.ServiceRepository
	Slots serviceRepo.FeaturedSlots

	clock func() time.Time
}

func NewDefaultServiceCatalog(repo serviceRepo.ServiceRepository, slots serviceRepo.FeaturedSlots) *DefaultServiceCatalog {
	return &DefaultServiceCatalog{Repo: repo, Slots: slots}
}
