package api

import (
	"net/http"
	"strings"
	"time"

	"cliphaus/video-finder/model"
	"cliphaus/video-finder/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type presignBody struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// StoragePresign issues a short-lived URL authorizing one direct PUT
// into the bucket. The file bytes never pass through this server.
func (a *API) StoragePresign(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data presignBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.UploadKeyValidator(data.Filename, data.ContentType); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	key := data.Filename
	if !strings.HasPrefix(key, model.PrefixOriginal) {
		key = model.PrefixOriginal + key
	}

	ttl := time.Duration(viper.GetInt("upload.presign_ttl")) * time.Second

	url, err := a.S3.PresignPut(c.Request.Context(), key, data.ContentType, ttl)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to create upload URL",
			"requestID": requestID,
		})

		zap.L().Error("Failed to presign upload", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": url,
	})
}
