package review

import (
	"context"

	leadRepo "pestcontrol/database/repository/lead"
	"pestcontrol/models"
	"pestcontrol/services/notification"
)

// ReviewService covers contact-form leads and the review invitation flow.
type ReviewService interface {
	CreateLead(ctx context.Context, in models.LeadInput) (*models.Lead, error)
	ListLeads(ctx context.Context) ([]models.Lead, error)
	SendInvitation(ctx context.Context, leadID string) (*models.Lead, error)
}

// BookingRecorder bumps a service's booking counter by slug.
type BookingRecorder interface {
	RecordBooking(ctx context.Context, slug string)
}

type DefaultReviewService struct {
	Leads    leadRepo.LeadRepository
	Mailer   notification.Mailer
	Bookings BookingRecorder
}

func NewDefaultReviewService(leads leadRepo.LeadRepository, mailer notification.Mailer, bookings BookingRecorder) *DefaultReviewService {
	return &DefaultReviewService{Leads: leads, Mailer: mailer, Bookings: bookings}
}
