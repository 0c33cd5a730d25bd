package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "GRCWalk API is running"})
}

// IndexPage describes the API root.
func IndexPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "GRCWalk API",
		"health":  "/api/health",
		"metrics": "/metrics",
	})
}
