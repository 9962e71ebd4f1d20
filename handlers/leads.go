package handlers

import (
	"pestcontrol/models"
	"pestcontrol/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LeadHandler struct {
	Svc review.ReviewService
}

func NewLeadHandler(svc review.ReviewService) *LeadHandler {
	return &LeadHandler{Svc: svc}
}

// Contact handles POST /api/contact.
func (h *LeadHandler) Contact(c *gin.Context) {
	var in models.LeadInput
	if !bindJSON(c, &in) {
		return
	}
	lead, err := h.Svc.CreateLead(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, gin.H{"id": lead.ID})
}

func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.Svc.ListLeads(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, leads)
}

// SendReviewInvitation handles POST /api/admin/send-review-invitation.
func (h *LeadHandler) SendReviewInvitation(c *gin.Context) {
	var req models.ReviewInvitationRequest
	if !bindJSON(c, &req) {
		return
	}
	lead, err := h.Svc.SendInvitation(c.Request.Context(), req.LeadID)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("review invitation requested", zap.String("leadId", lead.ID))
	respondMessage(c, "Review invitation sent to "+lead.Email)
}
