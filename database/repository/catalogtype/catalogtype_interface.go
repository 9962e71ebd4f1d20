package catalogTypeRepo

import (
	"context"

	"pestcontrol/models"
)

// Collection names for the two catalog type kinds.
const (
	ServiceTypesCollection = "serviceTypes"
	AreaTypesCollection    = "areaTypes"
)

// CatalogTypeRepository persists one kind of catalog type.
type CatalogTypeRepository interface {
	// Create inserts a new type. Name collisions wrap database.ErrDuplicateKey.
	Create(ctx context.Context, t *models.CatalogType) error
	// GetByID returns nil, nil when no type has id.
	GetByID(ctx context.Context, id string) (*models.CatalogType, error)
	// GetByName returns nil, nil when no type has name.
	GetByName(ctx context.Context, name string) (*models.CatalogType, error)
	// UpdateName renames a type and reports whether it existed.
	UpdateName(ctx context.Context, id, name string) (bool, error)
	// Delete hard-deletes a type and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns all types ordered by name.
	List(ctx context.Context) ([]models.CatalogType, error)
}
