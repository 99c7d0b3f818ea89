package api

import (
	"net/http"
	"slices"
	"strings"

	"cliphaus/video-finder/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type deleteBody struct {
	FileKey string `json:"file_key"`
}

// BucketDelete removes a video and its conventional thumbnail in one
// batch. When the thumbnail survives but the video went away the
// response still lists the deleted keys so clients can reconcile their
// catalog against what actually happened.
func (a *API) BucketDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data deleteBody
	if err := c.ShouldBind(&data); err != nil || data.FileKey == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "file_key is missing",
			"requestID": requestID,
		})
		return
	}

	keys := []string{data.FileKey, thumbnailKey(data.FileKey)}

	deleted, errored, err := a.S3.DeleteBatch(c.Request.Context(), keys)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to delete file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if len(errored) > 0 {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":         "Some files could not be deleted",
			"failed_files":  errored,
			"deleted_files": deleted,
			"requestID":     requestID,
		})
		return
	}

	if !slices.Contains(deleted, data.FileKey) {
		// S3 treats deletes of absent keys as deleted, so reaching
		// this means the bucket reported nothing either way
		zap.L().Warn("Delete settled without confirmation", zap.String("file_key", data.FileKey))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "File deleted",
		"deleted_files": deleted,
	})
}

// thumbnailKey maps a video key onto its still-image key: folder
// prefix swapped for thumbnails/, extension swapped for .jpg.
func thumbnailKey(fileKey string) string {
	name := fileKey
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	return model.PrefixThumbnail + model.StripExtension(name) + ".jpg"
}
