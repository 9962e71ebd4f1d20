package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pestcontrol/database"
	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultTypeService) cacheKey() string {
	return "catalog:" + strings.ReplaceAll(s.Label, " ", "-") + "s"
}

// Create adds a type after checking the trimmed name is free.
func (s *DefaultTypeService) Create(ctx context.Context, name string) (*models.CatalogType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ValidationError(s.Label + " name is required")
	}

	existing, err := s.Repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError(fmt.Sprintf("%s %q already exists", s.Label, name))
	}

	now := time.Now()
	t := &models.CatalogType{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, utils.WrapConflict(fmt.Sprintf("%s %q already exists", s.Label, name), err)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// Update renames a type. Keeping the current name is not a conflict.
func (s *DefaultTypeService) Update(ctx context.Context, id, name string) (*models.CatalogType, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, utils.NotFoundError(s.Label + " not found")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ValidationError(s.Label + " name is required")
	}

	holder, err := s.Repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != id {
		return nil, utils.ConflictError(fmt.Sprintf("%s %q already exists", s.Label, name))
	}

	found, err := s.Repo.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, utils.WrapConflict(fmt.Sprintf("%s %q already exists", s.Label, name), err)
		}
		return nil, err
	}
	if !found {
		return nil, utils.NotFoundError(s.Label + " not found")
	}
	s.invalidate(ctx)

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NotFoundError(s.Label + " not found")
	}
	return updated, nil
}

// Delete hard-deletes a type. Services naming it keep the dangling string.
func (s *DefaultTypeService) Delete(ctx context.Context, id string) error {
	found, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return utils.NotFoundError(s.Label + " not found")
	}
	s.invalidate(ctx)
	return nil
}

// List returns every type by name, served from cache when possible.
func (s *DefaultTypeService) List(ctx context.Context) ([]models.CatalogType, error) {
	logger := utils.GetLogger()
	key := s.cacheKey()

	if s.Cache != nil {
		var cached []models.CatalogType
		found, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("catalog type cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	gen := s.gen.Load()
	types, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// Skip the write if a mutation invalidated during the read, and undo it if
	// one landed while writing.
	if s.Cache != nil && s.gen.Load() == gen {
		if err := s.Cache.Set(ctx, key, types); err != nil {
			logger.Warn("catalog type cache write failed", zap.String("key", key), zap.Error(err))
		}
		if s.gen.Load() != gen {
			s.invalidate(ctx)
		}
	}
	return types, nil
}

func (s *DefaultTypeService) invalidate(ctx context.Context) {
	s.gen.Add(1)
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, s.cacheKey()); err != nil {
		utils.GetLogger().Warn("catalog type cache invalidation failed", zap.String("key", s.cacheKey()), zap.Error(err))
	}
}
