package handlers

import (
	"pestcontrol/models"
	"pestcontrol/services/seo"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct {
	Svc seo.SEOService
}

func NewSEOHandler(svc seo.SEOService) *SEOHandler {
	return &SEOHandler{Svc: svc}
}

func (h *SEOHandler) List(c *gin.Context) {
	pages, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, pages)
}

func (h *SEOHandler) Update(c *gin.Context) {
	var req models.SEOUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	page, err := h.Svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, page)
}

// GetByPage handles GET /api/seo/:page.
func (h *SEOHandler) GetByPage(c *gin.Context) {
	page, err := h.Svc.GetByPage(c.Request.Context(), c.Param("page"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, page)
}
