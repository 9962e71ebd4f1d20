package notification

import (
	"context"
	"testing"

	"pestcontrol/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewLink(t *testing.T) {
	assert.Equal(t, "https://example.com/review?token=abc123", ReviewLink("https://example.com/", "abc123"))
	assert.Equal(t, "http://localhost:3000/review?token=a%2Bb", ReviewLink("http://localhost:3000", "a+b"))
}

func TestInvitationMessage(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "", "team@example.com", "https://example.com")

	msg, err := m.invitation(&models.Lead{ID: "l1", Name: "Ana", Email: "ana@example.com", ReviewToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, []string{reviewSubject}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"team@example.com"}, msg.GetHeader("From"))
	require.Len(t, msg.GetHeader("To"), 1)
	assert.Contains(t, msg.GetHeader("To")[0], "ana@example.com")

	_, err = m.invitation(&models.Lead{ID: "l2", Email: "x@example.com"})
	assert.Error(t, err)
}

func TestInvitationBody(t *testing.T) {
	text := invitationText("", "https://example.com/review?token=t")
	assert.Contains(t, text, "Hello,")
	assert.Contains(t, text, "https://example.com/review?token=t")
	assert.Contains(t, invitationHTML("Ana", "L"), `href="L"`)
}

func TestSendRespectsCancelledContext(t *testing.T) {
	m := NewSMTPMailer("localhost", 25, "", "", "team@example.com", "https://example.com")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.SendReviewInvitation(ctx, &models.Lead{Email: "a@example.com", ReviewToken: "t"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, LogMailer{FrontendURL: "https://example.com"}.SendReviewInvitation(context.Background(), &models.Lead{ID: "l1", ReviewToken: "t"}))
}
