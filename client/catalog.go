package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"cliphaus/video-finder/model"

	"go.uber.org/zap"
)

// FetchCatalog queries the listing endpoint and classifies every key
// into the catalog. A transport failure or non-success response yields
// an empty catalog and a recoverable error; callers show the empty
// state and may simply call again later. The fetch has no side
// effects, so repeating it is always safe.
func (c *Client) FetchCatalog(ctx context.Context) ([]model.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+pathBucketData, nil)
	if err != nil {
		return []model.CatalogEntry{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return []model.CatalogEntry{}, fmt.Errorf("failed to fetch bucket listing, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return []model.CatalogEntry{}, fmt.Errorf("bucket listing returned status %d", resp.StatusCode)
	}

	var keys []string
	if err := json.NewDecoder(resp.Body).Decode(&keys); err != nil {
		return []model.CatalogEntry{}, fmt.Errorf("malformed bucket listing, %w", err)
	}

	entries := c.BuildCatalog(keys)

	zap.L().Debug("Catalog fetched",
		zap.Int("keys", len(keys)),
		zap.Int("entries", len(entries)),
	)

	return entries, nil
}

// BuildCatalog turns a flat key list into catalog entries. Keys
// without a recognized video extension are dropped entirely, as are
// keys under any folder other than original/ and output/ (thumbnails
// and scratch files stay in storage but never surface in the gallery).
func (c *Client) BuildCatalog(keys []string) []model.CatalogEntry {
	entries := []model.CatalogEntry{}

	for _, key := range keys {
		if !model.HasVideoExtension(key) {
			continue
		}

		var kind model.Kind
		var filename string

		switch {
		case strings.HasPrefix(key, model.PrefixOriginal):
			kind = model.KindOriginal
			filename = strings.TrimPrefix(key, model.PrefixOriginal)
		case strings.HasPrefix(key, model.PrefixCut):
			kind = model.KindCut
			filename = strings.TrimPrefix(key, model.PrefixCut)
		default:
			continue
		}

		entries = append(entries, model.CatalogEntry{
			ID:        fmt.Sprintf("%s-%s", kind, key),
			Filename:  filename,
			Path:      key,
			Kind:      kind,
			Thumbnail: c.Hosts.Thumbnail + "/" + model.StripExtension(filename) + ".jpg",
		})
	}

	return entries
}

// FilterKind narrows a catalog to one kind. The "all" view is the
// unfiltered slice, not a stored kind.
func FilterKind(entries []model.CatalogEntry, kind model.Kind) []model.CatalogEntry {
	out := []model.CatalogEntry{}
	for _, e := range entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}

	return out
}

// RemovePath drops the entry with the given storage key. Removing a
// key that's already gone is a no-op; a delete settling after a
// refresh must not error.
func RemovePath(entries []model.CatalogEntry, path string) []model.CatalogEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.Path != path {
			out = append(out, e)
		}
	}

	return out
}

// PlaybackURL builds the playable CDN URL for an entry. Originals and
// cuts are served from different distributions.
func (c *Client) PlaybackURL(e model.CatalogEntry) string {
	if e.Kind == model.KindCut {
		return c.Hosts.Cut + "/" + e.Filename
	}

	return c.Hosts.Original + "/" + e.Filename
}
