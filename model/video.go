// Package model defines the records shared between the API and the client
package model

import "strings"

// Storage keys are grouped by folder prefix. Uploads land under
// original/, the AI backend writes derived clips under output/ and
// thumbnails under thumbnails/.
const (
	PrefixOriginal  = "original/"
	PrefixCut       = "output/"
	PrefixThumbnail = "thumbnails/"
)

// Kind classifies a catalog entry by the folder its key lives under.
type Kind string

const (
	KindOriginal Kind = "original"
	KindCut      Kind = "cut"
)

// videoExtensions is the fixed allow-list of playable file suffixes.
// Keys outside of it never surface in the catalog.
var videoExtensions = []string{".mp4", ".avi", ".mov", ".webm", ".mkv", ".flv", ".wmv"}

// HasVideoExtension reports whether the key ends in a recognized
// video extension. The match is case-insensitive.
func HasVideoExtension(key string) bool {
	lower := strings.ToLower(key)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}

// StripExtension cuts the trailing .ext off a filename. Filenames
// without a dot are returned unchanged.
func StripExtension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name
	}

	return name[:i]
}

// TitleFromFilename turns a storage filename into a display title:
// extension stripped, separators turned into spaces.
func TitleFromFilename(name string) string {
	t := StripExtension(name)
	t = strings.ReplaceAll(t, "-", " ")
	t = strings.ReplaceAll(t, "_", " ")

	return t
}

// CatalogEntry is a storage-backed video surfaced in the gallery.
type CatalogEntry struct {
	// Composed from kind + raw key so IDs stay unique across kinds
	ID       string `json:"id"`
	Filename string `json:"filename"`
	// Full storage key, needed for delete calls
	Path      string `json:"path"`
	Kind      Kind   `json:"type"`
	Thumbnail string `json:"thumbnail"`
}

// VideoRecord is a playable result produced by a catalog fetch or a
// normalized AI job response. Result sets are replaced wholesale, never
// merged.
type VideoRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	// M:SS display string, "0:01" when probing failed
	Duration     string `json:"duration"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}
