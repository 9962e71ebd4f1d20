package handlers

import (
	"net/http"

	"pestcontrol/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the last result of the background monitor.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"success": code == http.StatusOK, "data": status})
}
