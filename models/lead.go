// models/lead.go
package models

import "time"

// Lead is an enquiry captured from the contact form.
type Lead struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string    `bson:"phone" json:"phone"`
	Address         string    `bson:"address,omitempty" json:"address,omitempty"`
	Message         string    `bson:"message,omitempty" json:"message,omitempty"`
	ServiceInterest string    `bson:"serviceInterest,omitempty" json:"serviceInterest,omitempty"` // service slug
	ReviewToken     string    `bson:"reviewToken,omitempty" json:"reviewToken,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LeadInput is the contact form payload.
type LeadInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Message     string `json:"message"`
	ServiceSlug string `json:"serviceSlug"`
}

// ReviewInvitationRequest is the body of POST /admin/send-review-invitation.
type ReviewInvitationRequest struct {
	LeadID string `json:"leadId"`
}
