package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnailKey(t *testing.T) {
	assert.Equal(t, "thumbnails/beach.jpg", thumbnailKey("original/beach.mp4"))
	assert.Equal(t, "thumbnails/beach_cut.jpg", thumbnailKey("output/beach_cut.mp4"))
	assert.Equal(t, "thumbnails/clip.jpg", thumbnailKey("clip.mp4"))
}

func TestBucketDeleteRequiresKey(t *testing.T) {
	a := &API{}
	r := testEngine(a.BucketDelete, http.MethodDelete, "/api/bucket/deletefile")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/bucket/deletefile",
		strings.NewReader(`{"file_key":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file_key is missing")
}
