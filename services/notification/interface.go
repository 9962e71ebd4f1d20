package notification

import (
	"context"

	"pestcontrol/models"
)

// Mailer delivers review invitations. The lead passed in always carries its
// review token.
type Mailer interface {
	SendReviewInvitation(ctx context.Context, lead *models.Lead) error
}
