package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliphaus/video-finder/model"
)

func testHosts() Hosts {
	return Hosts{
		Thumbnail: "https://thumbs.example.com",
		Original:  "https://videos.example.com",
		Cut:       "https://cuts.example.com",
	}
}

func TestBuildCatalogClassifiesByFolder(t *testing.T) {
	c := New("http://unused", testHosts())

	entries := c.BuildCatalog([]string{
		"original/beach-trip.mp4",
		"output/beach-trip_cut.mp4",
		"thumbnails/beach-trip.jpg",
		"original/notes.txt",
		"scratch/leftover.mp4",
	})

	require.Len(t, entries, 2)

	assert.Equal(t, model.KindOriginal, entries[0].Kind)
	assert.Equal(t, "beach-trip.mp4", entries[0].Filename)
	assert.Equal(t, "original/beach-trip.mp4", entries[0].Path)
	assert.Equal(t, "https://thumbs.example.com/beach-trip.jpg", entries[0].Thumbnail)

	assert.Equal(t, model.KindCut, entries[1].Kind)
	assert.Equal(t, "beach-trip_cut.mp4", entries[1].Filename)
}

func TestBuildCatalogExtensionCaseInsensitive(t *testing.T) {
	c := New("http://unused", testHosts())

	entries := c.BuildCatalog([]string{
		"original/clip.MP4",
		"original/clip.MOV",
		"original/clip.jpeg",
	})

	require.Len(t, entries, 2)
}

func TestBuildCatalogIDsUniqueAcrossKinds(t *testing.T) {
	c := New("http://unused", testHosts())

	entries := c.BuildCatalog([]string{
		"original/clip.mp4",
		"output/clip.mp4",
	})

	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestFetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathBucketData, r.URL.Path)
		json.NewEncoder(w).Encode([]string{"original/a.mp4", "output/b.webm"})
	}))
	defer server.Close()

	c := New(server.URL, testHosts())

	entries, err := c.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestFetchCatalogFailureYieldsEmptyCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, testHosts())

	entries, err := c.FetchCatalog(context.Background())
	assert.Error(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFilterKind(t *testing.T) {
	c := New("http://unused", testHosts())
	entries := c.BuildCatalog([]string{
		"original/a.mp4",
		"output/b.mp4",
		"original/c.mkv",
	})

	originals := FilterKind(entries, model.KindOriginal)
	require.Len(t, originals, 2)

	cuts := FilterKind(entries, model.KindCut)
	require.Len(t, cuts, 1)
	assert.Equal(t, "output/b.mp4", cuts[0].Path)
}

func TestRemovePathIdempotent(t *testing.T) {
	c := New("http://unused", testHosts())
	entries := c.BuildCatalog([]string{
		"original/a.mp4",
		"original/b.mp4",
	})

	entries = RemovePath(entries, "original/a.mp4")
	require.Len(t, entries, 1)

	entries = RemovePath(entries, "original/a.mp4")
	require.Len(t, entries, 1)
	assert.Equal(t, "original/b.mp4", entries[0].Path)
}

func TestPlaybackURLByKind(t *testing.T) {
	c := New("http://unused", testHosts())

	orig := model.CatalogEntry{Filename: "a.mp4", Kind: model.KindOriginal}
	cut := model.CatalogEntry{Filename: "b.mp4", Kind: model.KindCut}

	assert.Equal(t, "https://videos.example.com/a.mp4", c.PlaybackURL(orig))
	assert.Equal(t, "https://cuts.example.com/b.mp4", c.PlaybackURL(cut))
}
