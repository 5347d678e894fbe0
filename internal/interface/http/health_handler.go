package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health serves the liveness probe.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
