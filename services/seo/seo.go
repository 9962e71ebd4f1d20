package seo

import (
	"context"
	"strings"
	"time"

	seoRepo "pestcontrol/database/repository/seo"
	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// SEOService manages per-page metadata for the public site.
type SEOService interface {
	List(ctx context.Context) ([]models.SEOPage, error)
	Update(ctx context.Context, req models.SEOUpdateRequest) (*models.SEOPage, error)
	GetByPage(ctx context.Context, page string) (*models.SEOPage, error)
}

type DefaultSEOService struct {
	Repo seoRepo.SEORepository
}

func NewDefaultSEOService(repo seoRepo.SEORepository) *DefaultSEOService {
	return &DefaultSEOService{Repo: repo}
}

// DefaultPages returns the metadata seeded for each public page.
func DefaultPages(now time.Time) []models.SEOPage {
	defaults := []struct{ page, title, description string }{
		{models.SEOPageHome, "Professional Pest Control Services", "Safe and effective pest control for homes and businesses."},
		{models.SEOPageServices, "Our Pest Control Services", "Termite, rodent, insect and wildlife treatments tailored to your property."},
		{models.SEOPageContact, "Contact Us", "Request an inspection or a free quote from our pest control team."},
		{models.SEOPageTariff, "Pricing and Tariffs", "Transparent pricing for residential and commercial pest control."},
	}
	pages := make([]models.SEOPage, 0, len(defaults))
	for _, d := range defaults {
		pages = append(pages, models.SEOPage{
			ID:          uuid.New().String(),
			Page:        d.page,
			Title:       d.title,
			Description: d.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return pages
}

// List seeds any missing default page, then returns all pages.
func (s *DefaultSEOService) List(ctx context.Context) ([]models.SEOPage, error) {
	if err := s.Repo.EnsurePages(ctx, DefaultPages(time.Now())); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

func (s *DefaultSEOService) Update(ctx context.Context, req models.SEOUpdateRequest) (*models.SEOPage, error) {
	id := strings.TrimSpace(req.ID)
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if id == "" || title == "" || description == "" {
		return nil, utils.ValidationError("id, title and description are required")
	}

	set := bson.M{"title": title, "description": description, "updatedAt": time.Now()}
	if req.Keywords != nil {
		set["keywords"] = strings.TrimSpace(*req.Keywords)
	}
	found, err := s.Repo.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, utils.NotFoundError("seo page not found")
	}

	page, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, utils.NotFoundError("seo page not found")
	}
	utils.GetLogger().Info("seo page updated", zap.String("page", page.Page))
	return page, nil
}

func (s *DefaultSEOService) GetByPage(ctx context.Context, page string) (*models.SEOPage, error) {
	page = strings.ToLower(strings.TrimSpace(page))
	p, err := s.Repo.GetByPage(ctx, page)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NotFoundError("seo page not found")
	}
	return p, nil
}
