package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoragePresignRejectsBadRequests(t *testing.T) {
	// Validation runs before any bucket call, so a nil S3 client is
	// fine for these
	a := &API{}
	r := testEngine(a.StoragePresign, http.MethodPost, "/api/storage/s3_input")

	cases := []struct {
		name string
		body string
	}{
		{"empty filename", `{"filename":"","contentType":"video/mp4"}`},
		{"traversal", `{"filename":"original/../x.mp4","contentType":"video/mp4"}`},
		{"foreign folder", `{"filename":"output/x.mp4","contentType":"video/mp4"}`},
		{"not a video", `{"filename":"x.txt","contentType":"video/mp4"}`},
		{"bad content type", `{"filename":"x.mp4","contentType":"image/png"}`},
		{"missing content type", `{"filename":"x.mp4","contentType":""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/storage/s3_input", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
