package review

import (
	"context"
	"fmt"
	"strings"

	"pestcontrol/models"
	"pestcontrol/utils"

	"go.uber.org/zap"
)

// SendInvitation mails a review link to the lead. The token is issued once and
// reused on every later invitation.
func (s *DefaultReviewService) SendInvitation(ctx context.Context, leadID string) (*models.Lead, error) {
	logger := utils.GetLogger()

	leadID = strings.TrimSpace(leadID)
	if leadID == "" {
		return nil, utils.ValidationError("leadId is required")
	}

	lead, err := s.lead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Email == "" {
		return nil, utils.ValidationError("lead has no email address")
	}

	if lead.ReviewToken == "" {
		token, err := utils.GenerateReviewToken()
		if err != nil {
			return nil, err
		}
		if _, err := s.Leads.SetReviewTokenIfAbsent(ctx, leadID, token); err != nil {
			return nil, err
		}
		// Another request may have won the race; the stored token is the one to send.
		if lead, err = s.lead(ctx, leadID); err != nil {
			return nil, err
		}
		if lead.ReviewToken == "" {
			return nil, fmt.Errorf("review token for lead %s was not persisted", leadID)
		}
		logger.Info("review token issued", zap.String("leadId", leadID))
	}

	if err := s.Mailer.SendReviewInvitation(ctx, lead); err != nil {
		logger.Error("review invitation delivery failed", zap.String("leadId", leadID), zap.Error(err))
		return nil, fmt.Errorf("failed to send review invitation: %w", err)
	}
	return lead, nil
}

func (s *DefaultReviewService) lead(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.Leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, utils.NotFoundError("lead not found")
	}
	return lead, nil
}
