package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"pestcontrol/models"
	"pestcontrol/utils"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int range.
	MaxPage = 1_000_000
)

// viewIncrementTimeout bounds the detached views update started by GetBySlug.
const viewIncrementTimeout = 5 * time.Second

// NormalizePage applies defaults to out-of-range page values.
func NormalizePage(page, limit int) models.PageRequest {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return models.PageRequest{Page: page, Limit: limit}
}

// BuildPagination derives the pagination block for a page of total items.
func BuildPagination(page models.PageRequest, total int64) models.Pagination {
	limit := int64(page.Limit)
	totalPages := int((total + limit - 1) / limit)
	return models.Pagination{
		CurrentPage:   page.Page,
		TotalPages:    totalPages,
		TotalServices: total,
		HasNextPage:   page.Page < totalPages,
		HasPrevPage:   page.Page > 1,
	}
}

// ListPublic returns active, non-deleted services, featured first. The page and
// the total are fetched concurrently and may disagree under concurrent writes.
func (s *DefaultServiceCatalog) ListPublic(ctx context.Context, filter models.ServiceFilter, page models.PageRequest) (*models.ServicePage, error) {
	page = NormalizePage(page.Page, page.Limit)
	filter.ServiceType = strings.TrimSpace(filter.ServiceType)
	filter.Search = strings.TrimSpace(filter.Search)

	var (
		wg       sync.WaitGroup
		services []models.Service
		total    int64
		findErr  error
		countErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		services, findErr = s.Repo.FindPublic(ctx, filter, page)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.Repo.CountPublic(ctx, filter)
	}()
	wg.Wait()

	if findErr != nil {
		return nil, findErr
	}
	if countErr != nil {
		return nil, countErr
	}
	if services == nil {
		services = []models.Service{}
	}
	return &models.ServicePage{Services: services, Pagination: BuildPagination(page, total)}, nil
}

// GetBySlug returns a public service and counts the view in the background.
func (s *DefaultServiceCatalog) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, utils.NotFoundError("service not found")
	}

	svc, err := s.Repo.GetPublicBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError("service not found")
	}

	// Detached from the request so the update survives the response.
	go func(id string) {
		bg, cancel := context.WithTimeout(context.Background(), viewIncrementTimeout)
		defer cancel()
		s.IncrementViews(bg, id)
	}(svc.ID)

	return svc, nil
}

// ListAllServices is the admin listing: every non-deleted service, newest first.
func (s *DefaultServiceCatalog) ListAllServices(ctx context.Context, page models.PageRequest) (*models.ServicePage, error) {
	page = NormalizePage(page.Page, page.Limit)

	services, err := s.Repo.FindAll(ctx, page)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ServicePage{Services: services, Pagination: BuildPagination(page, total)}, nil
}
