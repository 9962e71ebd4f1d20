// models/service.go
package models

import "time"

const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
)

// MaxFeaturedServices caps how many non-deleted services may be featured at once.
const MaxFeaturedServices = 3

// Service is a pest-control offering shown on the public site.
type Service struct {
	ID               string    `bson:"id" json:"id"`
	ServiceName      string    `bson:"serviceName" json:"serviceName"`
	ServiceType      string    `bson:"serviceType" json:"serviceType"` // name of a CatalogType, not enforced
	ShortDescription string    `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	Description      string    `bson:"description" json:"description"`
	BasePrice        *float64  `bson:"basePrice,omitempty" json:"basePrice,omitempty"`
	CoverageArea     string    `bson:"coverageArea,omitempty" json:"coverageArea,omitempty"`
	ServiceAreaTypes []string  `bson:"serviceAreaTypes" json:"serviceAreaTypes"`
	Image            string    `bson:"image" json:"image"`
	Gallery          []string  `bson:"gallery" json:"gallery"`
	Featured         bool      `bson:"featured" json:"featured"`
	Inclusions       []string  `bson:"inclusions" json:"inclusions"`
	Pests            []string  `bson:"pests" json:"pests"`
	Slug             string    `bson:"slug" json:"slug"`
	Status           string    `bson:"status" json:"status"`
	SEOTitle         string    `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SEODescription   string    `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	SEOKeywords      string    `bson:"seoKeywords,omitempty" json:"seoKeywords,omitempty"`
	Views            int64     `bson:"views" json:"views"`
	Bookings         int64     `bson:"bookings" json:"bookings"`
	IsDeleted        bool      `bson:"isDeleted" json:"-"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceInput carries the fields accepted when creating a service.
type ServiceInput struct {
	ServiceName      string   `json:"serviceName"`
	ServiceType      string   `json:"serviceType"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	BasePrice        *float64 `json:"basePrice"`
	CoverageArea     string   `json:"coverageArea"`
	ServiceAreaTypes []string `json:"serviceAreaTypes"`
	Image            string   `json:"image"`
	Gallery          []string `json:"gallery"`
	Featured         bool     `json:"featured"`
	Inclusions       []string `json:"inclusions"`
	Pests            []string `json:"pests"`
	Slug             string   `json:"slug"`
	Status           string   `json:"status"`
	SEOTitle         string   `json:"seoTitle"`
	SEODescription   string   `json:"seoDescription"`
	SEOKeywords      string   `json:"seoKeywords"`
}

// ServiceUpdate is a partial update; nil fields are left untouched.
type ServiceUpdate struct {
	ServiceName      *string   `json:"serviceName"`
	ServiceType      *string   `json:"serviceType"`
	ShortDescription *string   `json:"shortDescription"`
	Description      *string   `json:"description"`
	BasePrice        *float64  `json:"basePrice"`
	CoverageArea     *string   `json:"coverageArea"`
	ServiceAreaTypes *[]string `json:"serviceAreaTypes"`
	Image            *string   `json:"image"`
	Gallery          *[]string `json:"gallery"`
	Featured         *bool     `json:"featured"`
	Inclusions       *[]string `json:"inclusions"`
	Pests            *[]string `json:"pests"`
	Slug             *string   `json:"slug"`
	Status           *string   `json:"status"`
	SEOTitle         *string   `json:"seoTitle"`
	SEODescription   *string   `json:"seoDescription"`
	SEOKeywords      *string   `json:"seoKeywords"`
}

// ServiceFilter narrows the public listing. Nil fields do not filter.
type ServiceFilter struct {
	ServiceType string
	Featured    *bool
	Search      string
}

// PageRequest is a 1-based page window.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalServices int64 `json:"totalServices"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
}

// ServicePage is one page of the listing plus its pagination block.
type ServicePage struct {
	Services   []Service  `json:"services"`
	Pagination Pagination `json:"pagination"`
}
