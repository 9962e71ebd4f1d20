package notification

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"pestcontrol/models"
	"pestcontrol/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const reviewSubject = "How did we do? Leave us a review"

// ReviewLink builds the public deep link a customer follows to leave a review.
func ReviewLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/review?token=" + url.QueryEscape(token)
}

// SMTPMailer sends invitations through an SMTP relay.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

func NewSMTPMailer(host string, port int, username, password, from, frontendURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(host, port, username, password),
		from:        from,
		frontendURL: frontendURL,
	}
}

func (m *SMTPMailer) SendReviewInvitation(ctx context.Context, lead *models.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := m.invitation(lead)
	if err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send review invitation to %s: %w", lead.Email, err)
	}
	utils.GetLogger().Info("review invitation sent", zap.String("leadId", lead.ID))
	return nil
}

func (m *SMTPMailer) invitation(lead *models.Lead) (*gomail.Message, error) {
	if lead.Email == "" || lead.ReviewToken == "" {
		return nil, errors.New("lead needs an email and a review token")
	}
	link := ReviewLink(m.frontendURL, lead.ReviewToken)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", lead.Email, lead.Name)
	msg.SetHeader("Subject", reviewSubject)
	msg.SetBody("text/plain", invitationText(lead.Name, link))
	msg.AddAlternative("text/html", invitationHTML(lead.Name, link))
	return msg, nil
}

func greeting(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return "Hello,"
	}
	return "Hello " + name + ","
}

func invitationText(name, link string) string {
	return fmt.Sprintf("%s\n\nThank you for choosing us. We would love to hear about your experience.\n\nLeave a review: %s\n", greeting(name), link)
}

func invitationHTML(name, link string) string {
	return fmt.Sprintf(`<p>%s</p><p>Thank you for choosing us. We would love to hear about your experience.</p><p><a href="%s">Leave a review</a></p>`, greeting(name), link)
}

// LogMailer only logs the link. It is used when no SMTP relay is configured.
type LogMailer struct {
	FrontendURL string
}

func (m LogMailer) SendReviewInvitation(_ context.Context, lead *models.Lead) error {
	utils.GetLogger().Info("review invitation (mail disabled)",
		zap.String("leadId", lead.ID),
		zap.String("email", lead.Email),
		zap.String("link", ReviewLink(m.FrontendURL, lead.ReviewToken)))
	return nil
}
