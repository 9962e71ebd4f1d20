package handlers

import (
	"net/http"

	"pestcontrol/models"
	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func respondPage(c *gin.Context, page *models.ServicePage) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": page.Services, "pagination": page.Pagination})
}

// respondError logs err and writes the failure envelope with its mapped status.
func respondError(c *gin.Context, err error) {
	status := utils.StatusFor(err)
	logger := getLogger(c).With(zap.String("path", c.FullPath()), zap.Int("status", status))
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.Error(err))
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// bindJSON decodes the body into dest and reports a validation failure otherwise.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, utils.ValidationError("invalid request body: "+err.Error()))
		return false
	}
	return true
}
