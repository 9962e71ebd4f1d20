package handlers

import (
	"pestcontrol/models"
	"pestcontrol/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogTypeHandler serves one kind of catalog type (service or area types).
type CatalogTypeHandler struct {
	Svc catalog.TypeService
}

func NewCatalogTypeHandler(svc catalog.TypeService) *CatalogTypeHandler {
	return &CatalogTypeHandler{Svc: svc}
}

func (h *CatalogTypeHandler) List(c *gin.Context) {
	types, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, types)
}

func (h *CatalogTypeHandler) Create(c *gin.Context) {
	var req models.CatalogTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, created)
}

func (h *CatalogTypeHandler) Update(c *gin.Context) {
	var req models.CatalogTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, updated)
}

func (h *CatalogTypeHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "deleted")
}
