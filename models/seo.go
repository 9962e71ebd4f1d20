// models/seo.go
package models

import "time"

// SEO page keys.
const (
	SEOPageHome     = "home"
	SEOPageServices = "services"
	SEOPageContact  = "contact"
	SEOPageTariff   = "tariff"
)

// SEOPage holds the metadata injected into one public page.
type SEOPage struct {
	ID          string    `bson:"id" json:"id"`
	Page        string    `bson:"page" json:"page"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Keywords    string    `bson:"keywords,omitempty" json:"keywords,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SEOUpdateRequest is the body of PUT /admin/seo.
type SEOUpdateRequest struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Keywords    *string `json:"keywords"`
}
