package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteEntrySuccess(t *testing.T) {
	var body map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathDeleteFile, r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewDecoder(r.Body).Decode(&body)

		json.NewEncoder(w).Encode(map[string]any{
			"message":       "Files deleted",
			"deleted_files": []string{"original/a.mp4", "thumbnails/a.jpg"},
		})
	}))
	defer server.Close()

	c := New(server.URL, testHosts())

	res, err := c.DeleteEntry(context.Background(), "original/a.mp4")
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Equal(t, []string{"original/a.mp4", "thumbnails/a.jpg"}, res.DeletedKeys)
	assert.Equal(t, "original/a.mp4", body["file_key"])
}

func TestDeleteEntryPartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error":         "Some files couldn't be deleted",
			"deleted_files": []string{"thumbnails/a.jpg"},
		})
	}))
	defer server.Close()

	c := New(server.URL, testHosts())

	res, err := c.DeleteEntry(context.Background(), "original/a.mp4")
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Equal(t, []string{"thumbnails/a.jpg"}, res.DeletedKeys)
}

func TestDeleteEntryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to delete files"})
	}))
	defer server.Close()

	c := New(server.URL, testHosts())

	res, err := c.DeleteEntry(context.Background(), "original/a.mp4")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "Failed to delete files")
}
