// Package client implements the browser-side coordination logic of
// video-finder as a Go library: fetching and classifying the storage
// catalog, uploading files through presigned URLs, deleting entries,
// and driving the AI clipping backend through prompt jobs.
package client

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// API paths served by the video-finder backend.
const (
	pathBucketData = "/api/bucket/bucketdata"
	pathDeleteFile = "/api/bucket/deletefile"
	pathPresign    = "/api/storage/s3_input"
	pathVideoAI    = "/api/v1/video_ai"
	pathSignin     = "/api/auth/signin"
	pathSignup     = "/api/auth/signup"
)

// Hosts carries the CDN bases playable URLs are built against. The
// video hosts differ by kind and the still-image host is separate
// from both.
type Hosts struct {
	Thumbnail string
	Original  string
	Cut       string
}

// HostsFromConfig reads the CDN hosts the server was configured with.
func HostsFromConfig() Hosts {
	return Hosts{
		Thumbnail: viper.GetString("cdn.thumbnail_host"),
		Original:  viper.GetString("cdn.original_host"),
		Cut:       viper.GetString("cdn.cut_host"),
	}
}

// Client talks to the video-finder API. All state lives in the
// coordinator types built from it; the Client itself is stateless and
// safe for concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Hosts   Hosts
}

func New(baseURL string, hosts Hosts) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
		Hosts: hosts,
	}
}
