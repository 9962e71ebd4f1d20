package review

import (
	"context"
	"strings"
	"time"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validate = validator.New()

// CreateLead stores a contact-form enquiry.
func (s *DefaultReviewService) CreateLead(ctx context.Context, in models.LeadInput) (*models.Lead, error) {
	lead := &models.Lead{
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           strings.TrimSpace(in.Phone),
		Address:         strings.TrimSpace(in.Address),
		Message:         strings.TrimSpace(in.Message),
		ServiceInterest: strings.ToLower(strings.TrimSpace(in.ServiceSlug)),
	}
	if lead.Name == "" || lead.Phone == "" {
		return nil, utils.ValidationError("name and phone are required")
	}
	if lead.Email != "" {
		if err := validate.Var(lead.Email, "email"); err != nil {
			return nil, utils.ValidationError("invalid email address")
		}
	}

	now := time.Now()
	lead.ID = uuid.New().String()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if err := s.Leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	if lead.ServiceInterest != "" && s.Bookings != nil {
		s.Bookings.RecordBooking(ctx, lead.ServiceInterest)
	}
	utils.GetLogger().Info("lead captured", zap.String("leadId", lead.ID), zap.String("service", lead.ServiceInterest))
	return lead, nil
}

func (s *DefaultReviewService) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return s.Leads.List(ctx)
}
