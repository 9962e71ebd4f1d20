package handlers

import (
	"pestcontrol/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Verifier middleware.AuthVerifier

	// Admin auth
	AdminLoginHandler gin.HandlerFunc

	// Catalog types
	ListServiceTypesHandler  gin.HandlerFunc
	CreateServiceTypeHandler gin.HandlerFunc
	UpdateServiceTypeHandler gin.HandlerFunc
	DeleteServiceTypeHandler gin.HandlerFunc
	ListAreaTypesHandler     gin.HandlerFunc
	CreateAreaTypeHandler    gin.HandlerFunc
	UpdateAreaTypeHandler    gin.HandlerFunc
	DeleteAreaTypeHandler    gin.HandlerFunc

	// Services
	ListServicesHandler      gin.HandlerFunc
	GetServiceBySlugHandler  gin.HandlerFunc
	AdminListServicesHandler gin.HandlerFunc
	CreateServiceHandler     gin.HandlerFunc
	UpdateServiceHandler     gin.HandlerFunc
	DeleteServiceHandler     gin.HandlerFunc

	// Leads and reviews
	ContactHandler              gin.HandlerFunc
	ListLeadsHandler            gin.HandlerFunc
	SendReviewInvitationHandler gin.HandlerFunc

	// SEO
	ListSEOHandler      gin.HandlerFunc
	UpdateSEOHandler    gin.HandlerFunc
	GetSEOByPageHandler gin.HandlerFunc

	// Storage, nil when Cloudinary is not configured
	UploadFileHandler gin.HandlerFunc
	DeleteFileHandler gin.HandlerFunc
}

// Handlers groups the constructed handler values used to fill a bundle.
type Handlers struct {
	Auth         *AuthHandler
	ServiceTypes *CatalogTypeHandler
	AreaTypes    *CatalogTypeHandler
	Services     *ServiceHandler
	Leads        *LeadHandler
	SEO          *SEOHandler
	Storage      *StorageHandler
}

// NewHandlerBundle wires handler methods into the bundle used by the routes.
func NewHandlerBundle(verifier middleware.AuthVerifier, h Handlers) *HandlerBundle {
	hb := &HandlerBundle{
		Verifier: verifier,

		AdminLoginHandler: h.Auth.Login,

		ListServiceTypesHandler:  h.ServiceTypes.List,
		CreateServiceTypeHandler: h.ServiceTypes.Create,
		UpdateServiceTypeHandler: h.ServiceTypes.Update,
		DeleteServiceTypeHandler: h.ServiceTypes.Delete,
		ListAreaTypesHandler:     h.AreaTypes.List,
		CreateAreaTypeHandler:    h.AreaTypes.Create,
		UpdateAreaTypeHandler:    h.AreaTypes.Update,
		DeleteAreaTypeHandler:    h.AreaTypes.Delete,

		ListServicesHandler:      h.Services.ListPublic,
		GetServiceBySlugHandler:  h.Services.GetBySlug,
		AdminListServicesHandler: h.Services.ListAll,
		CreateServiceHandler:     h.Services.Create,
		UpdateServiceHandler:     h.Services.Update,
		DeleteServiceHandler:     h.Services.Delete,

		ContactHandler:              h.Leads.Contact,
		ListLeadsHandler:            h.Leads.List,
		SendReviewInvitationHandler: h.Leads.SendReviewInvitation,

		ListSEOHandler:      h.SEO.List,
		UpdateSEOHandler:    h.SEO.Update,
		GetSEOByPageHandler: h.SEO.GetByPage,
	}
	if h.Storage != nil {
		hb.UploadFileHandler = h.Storage.UploadFileHandler
		hb.DeleteFileHandler = h.Storage.DeleteFileHandler
	}
	return hb
}
