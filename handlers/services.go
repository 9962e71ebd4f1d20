package handlers

import (
	"strconv"
	"strings"

	"pestcontrol/models"
	"pestcontrol/services/catalog"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the public catalog and the admin service endpoints.
type ServiceHandler struct {
	Catalog catalog.ServiceCatalog
}

func NewServiceHandler(cat catalog.ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{Catalog: cat}
}

// pageFromQuery reads page and limit. Unparseable values fall back to defaults.
func pageFromQuery(c *gin.Context) models.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return catalog.NormalizePage(page, limit)
}

func filterFromQuery(c *gin.Context) models.ServiceFilter {
	f := models.ServiceFilter{
		ServiceType: c.Query("serviceType"),
		Search:      c.Query("search"),
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			f.Featured = &featured
		}
	}
	return f
}

// ListPublic handles GET /api/services.
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	page, err := h.Catalog.ListPublic(c.Request.Context(), filterFromQuery(c), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

// GetBySlug handles GET /api/services/:slug.
func (h *ServiceHandler) GetBySlug(c *gin.Context) {
	svc, err := h.Catalog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, svc)
}

// ListAll handles GET /api/admin/services.
func (h *ServiceHandler) ListAll(c *gin.Context) {
	page, err := h.Catalog.ListAllServices(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, page)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var in models.ServiceInput
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.Catalog.CreateService(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var in models.ServiceUpdate
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.Catalog.UpdateService(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.Catalog.SoftDeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "service deleted")
}
