package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (a *API) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "video-finder API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"uptime":    time.Since(a.started).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
