package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BucketList returns every object key in the bucket as a flat JSON
// array of strings. Classification into originals and cuts happens
// client-side by folder prefix.
func (a *API) BucketList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	keys, err := a.S3.ListKeys(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to list bucket contents",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list bucket contents", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, keys)
}
