package validators

import (
	"errors"
	"strings"

	"cliphaus/video-finder/model"
)

var (
	ErrKeyEmpty       = errors.New("no filename provided")
	ErrKeyTraversal   = errors.New("filename must not contain path traversal")
	ErrKeyBadPrefix   = errors.New("filename must be a bare name or live under original/")
	ErrKeyNotVideo    = errors.New("filename must have a video extension")
	ErrContentType    = errors.New("content type must be a video type")
	ErrContentMissing = errors.New("no content type provided")
)

// UploadKeyValidator checks a presign request before a write URL is
// issued. Clients either send a bare filename or one already prefixed
// with original/; anything pointing at another folder is rejected so
// uploads can't shadow derived clips or thumbnails.
func UploadKeyValidator(key, contentType string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if strings.Contains(key, "..") {
		return ErrKeyTraversal
	}

	rest := strings.TrimPrefix(key, model.PrefixOriginal)
	if strings.ContainsRune(rest, '/') {
		return ErrKeyBadPrefix
	}

	if !model.HasVideoExtension(key) {
		return ErrKeyNotVideo
	}

	if contentType == "" {
		return ErrContentMissing
	}

	if !strings.HasPrefix(contentType, "video/") {
		return ErrContentType
	}

	return nil
}
