// models/catalog_type.go
package models

import "time"

// CatalogType is a named classifier for services. Service types ("Termite
// control") and area types ("Residential", "Commercial") share this shape and
// live in separate collections.
type CatalogType struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CatalogTypeRequest is the body of create and update calls.
type CatalogTypeRequest struct {
	Name string `json:"name"`
}
