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
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var errFeaturedLimit = utils.ValidationError(fmt.Sprintf("maximum %d featured services allowed", models.MaxFeaturedServices))

// CreateService validates in and stores a new active service.
func (s *DefaultServiceCatalog) CreateService(ctx context.Context, in models.ServiceInput) (*models.Service, error) {
	logger := utils.GetLogger()

	svc, err := newService(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetBySlug(ctx, svc.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, slugConflict(svc.Slug, nil)
	}

	if svc.Featured {
		if err := s.reserveFeatured(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Create(ctx, svc); err != nil {
		if svc.Featured {
			s.releaseFeatured(ctx)
		}
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, slugConflict(svc.Slug, err)
		}
		return nil, err
	}

	logger.Info("service created", zap.String("id", svc.ID), zap.String("slug", svc.Slug), zap.Bool("featured", svc.Featured))
	return svc, nil
}

// UpdateService applies the non-nil fields of in.
func (s *DefaultServiceCatalog) UpdateService(ctx context.Context, id string, in models.ServiceUpdate) (*models.Service, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil || current.IsDeleted {
		return nil, utils.NotFoundError("service not found")
	}

	set, err := updateDocument(current, in)
	if err != nil {
		return nil, err
	}

	if slug, ok := set["slug"].(string); ok {
		holder, err := s.Repo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if holder != nil && holder.ID != id {
			return nil, slugConflict(slug, nil)
		}
	}

	reserved, released := false, false
	if in.Featured != nil {
		switch {
		case *in.Featured && !current.Featured:
			if err := s.reserveFeatured(ctx); err != nil {
				return nil, err
			}
			reserved = true
		case !*in.Featured && current.Featured:
			released = true
		}
	}

	set["updatedAt"] = time.Now()
	found, err := s.Repo.Update(ctx, id, set)
	if err != nil || !found {
		if reserved {
			s.releaseFeatured(ctx)
		}
		if err == nil {
			return nil, utils.NotFoundError("service not found")
		}
		if errors.Is(err, database.ErrDuplicateKey) {
			slug, _ := set["slug"].(string)
			return nil, slugConflict(slug, err)
		}
		return nil, err
	}
	if released {
		s.releaseFeatured(ctx)
	}

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NotFoundError("service not found")
	}
	utils.GetLogger().Info("service updated", zap.String("id", id), zap.Int("fields", len(set)-1))
	return updated, nil
}

// SoftDeleteService hides a service for good. Its slug stays reserved.
func (s *DefaultServiceCatalog) SoftDeleteService(ctx context.Context, id string) error {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil || current.IsDeleted {
		return utils.NotFoundError("service not found")
	}

	changed, err := s.Repo.MarkDeleted(ctx, id)
	if err != nil {
		return err
	}
	if !changed {
		return utils.NotFoundError("service not found")
	}
	if current.Featured {
		s.releaseFeatured(ctx)
	}
	utils.GetLogger().Info("service soft-deleted", zap.String("id", id), zap.String("slug", current.Slug))
	return nil
}

func (s *DefaultServiceCatalog) IncrementViews(ctx context.Context, id string) {
	if err := s.Repo.IncrementViews(ctx, id); err != nil {
		utils.GetLogger().Warn("failed to increment service views", zap.String("id", id), zap.Error(err))
	}
}

func (s *DefaultServiceCatalog) RecordBooking(ctx context.Context, slug string) {
	if err := s.Repo.IncrementBookingsBySlug(ctx, slug); err != nil {
		utils.GetLogger().Warn("failed to increment service bookings", zap.String("slug", slug), zap.Error(err))
	}
}

// featuredLowerGrace is how long the counter must sit unchanged before a
// reconcile may lower it. Featured writes hold a slot before their record is
// stored, and they finish well inside this window.
const featuredLowerGrace = 2 * time.Minute

// ReconcileFeatured repairs the featured counter from stored services. A low
// counter is raised at once. A high one is lowered only once it has been idle
// for featuredLowerGrace, and only if no reservation moved it in between.
func (s *DefaultServiceCatalog) ReconcileFeatured(ctx context.Context) error {
	logger := utils.GetLogger()

	counter, err := s.Slots.Snapshot(ctx)
	if err != nil {
		return err
	}
	n, err := s.Repo.CountFeatured(ctx)
	if err != nil {
		return err
	}
	if n > models.MaxFeaturedServices {
		logger.Warn("more featured services stored than allowed", zap.Int64("featured", n))
	}

	switch {
	case n > counter.Count:
		logger.Warn("featured counter behind stored services", zap.Int64("counter", counter.Count), zap.Int64("featured", n))
		return s.Slots.Raise(ctx, n)
	case n == counter.Count:
		return nil
	}

	if s.now().Sub(counter.UpdatedAt) < featuredLowerGrace {
		logger.Debug("featured counter ahead of stored services; changed recently, leaving it",
			zap.Int64("counter", counter.Count), zap.Int64("featured", n))
		return nil
	}
	lowered, err := s.Slots.Lower(ctx, counter.Version, n)
	if err != nil {
		return err
	}
	if lowered {
		logger.Warn("featured counter lowered", zap.Int64("from", counter.Count), zap.Int64("to", n))
	}
	return nil
}

func (s *DefaultServiceCatalog) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

func (s *DefaultServiceCatalog) reserveFeatured(ctx context.Context) error {
	ok, err := s.Slots.Reserve(ctx, models.MaxFeaturedServices)
	if err != nil {
		return err
	}
	if !ok {
		return errFeaturedLimit
	}
	return nil
}

func (s *DefaultServiceCatalog) releaseFeatured(ctx context.Context) {
	if err := s.Slots.Release(ctx); err != nil {
		utils.GetLogger().Error("failed to release featured slot", zap.Error(err))
	}
}

func slugConflict(slug string, cause error) error {
	msg := fmt.Sprintf("a service with slug %q already exists", slug)
	if cause != nil {
		return utils.WrapConflict(msg, cause)
	}
	return utils.ConflictError(msg)
}

// normalizeSlug trims and lower-cases; slugs are compared in that form.
func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func validStatus(status string) bool {
	return status == models.ServiceStatusActive || status == models.ServiceStatusInactive
}

func newService(in models.ServiceInput) (*models.Service, error) {
	svc := &models.Service{
		ServiceName:      strings.TrimSpace(in.ServiceName),
		ServiceType:      strings.TrimSpace(in.ServiceType),
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		Description:      strings.TrimSpace(in.Description),
		BasePrice:        in.BasePrice,
		CoverageArea:     strings.TrimSpace(in.CoverageArea),
		ServiceAreaTypes: cleanList(in.ServiceAreaTypes),
		Image:            strings.TrimSpace(in.Image),
		Gallery:          cleanList(in.Gallery),
		Featured:         in.Featured,
		Inclusions:       cleanList(in.Inclusions),
		Pests:            cleanList(in.Pests),
		Slug:             normalizeSlug(in.Slug),
		Status:           strings.TrimSpace(in.Status),
		SEOTitle:         strings.TrimSpace(in.SEOTitle),
		SEODescription:   strings.TrimSpace(in.SEODescription),
		SEOKeywords:      strings.TrimSpace(in.SEOKeywords),
	}

	required := []struct{ field, value string }{
		{"serviceName", svc.ServiceName},
		{"serviceType", svc.ServiceType},
		{"description", svc.Description},
		{"image", svc.Image},
		{"slug", svc.Slug},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return nil, utils.ValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	if svc.Status == "" {
		svc.Status = models.ServiceStatusActive
	} else if !validStatus(svc.Status) {
		return nil, utils.ValidationError("status must be active or inactive")
	}
	if svc.BasePrice != nil && *svc.BasePrice < 0 {
		return nil, utils.ValidationError("basePrice cannot be negative")
	}

	now := time.Now()
	svc.ID = uuid.New().String()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	return svc, nil
}

// updateDocument turns a partial update into a $set document. Required fields
// cannot be cleared, and unchanged scalar values are skipped.
func updateDocument(current *models.Service, in models.ServiceUpdate) (bson.M, error) {
	set := bson.M{}

	required := []struct {
		field   string
		value   *string
		current string
	}{
		{"serviceName", in.ServiceName, current.ServiceName},
		{"serviceType", in.ServiceType, current.ServiceType},
		{"description", in.Description, current.Description},
		{"image", in.Image, current.Image},
	}
	for _, r := range required {
		if r.value == nil {
			continue
		}
		v := strings.TrimSpace(*r.value)
		if v == "" {
			return nil, utils.ValidationError(r.field + " cannot be empty")
		}
		if v != r.current {
			set[r.field] = v
		}
	}

	optional := []struct {
		field   string
		value   *string
		current string
	}{
		{"shortDescription", in.ShortDescription, current.ShortDescription},
		{"coverageArea", in.CoverageArea, current.CoverageArea},
		{"seoTitle", in.SEOTitle, current.SEOTitle},
		{"seoDescription", in.SEODescription, current.SEODescription},
		{"seoKeywords", in.SEOKeywords, current.SEOKeywords},
	}
	for _, o := range optional {
		if o.value == nil {
			continue
		}
		if v := strings.TrimSpace(*o.value); v != o.current {
			set[o.field] = v
		}
	}

	if in.Slug != nil {
		slug := normalizeSlug(*in.Slug)
		if slug == "" {
			return nil, utils.ValidationError("slug cannot be empty")
		}
		if slug != current.Slug {
			set["slug"] = slug
		}
	}
	if in.Status != nil {
		status := strings.TrimSpace(*in.Status)
		if !validStatus(status) {
			return nil, utils.ValidationError("status must be active or inactive")
		}
		if status != current.Status {
			set["status"] = status
		}
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return nil, utils.ValidationError("basePrice cannot be negative")
		}
		set["basePrice"] = *in.BasePrice
	}
	if in.Featured != nil && *in.Featured != current.Featured {
		set["featured"] = *in.Featured
	}

	lists := []struct {
		field string
		value *[]string
	}{
		{"serviceAreaTypes", in.ServiceAreaTypes},
		{"gallery", in.Gallery},
		{"inclusions", in.Inclusions},
		{"pests", in.Pests},
	}
	for _, l := range lists {
		if l.value != nil {
			set[l.field] = cleanList(*l.value)
		}
	}
	return set, nil
}

// cleanList trims entries and drops blanks. It never returns nil so stored
// documents always carry an array.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
