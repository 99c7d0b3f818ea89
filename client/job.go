package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cliphaus/video-finder/model"
)

var (
	ErrJobInFlight  = errors.New("a job is already running")
	ErrNoInputVideo = errors.New("no video selected for processing")
	ErrEmptyPrompt  = errors.New("prompt is empty")
)

var (
	cloudfrontPattern = regexp.MustCompile(`https?://[^\s"']+\.cloudfront\.net/[^\s"']+`)
	s3URLPattern      = regexp.MustCompile(`https?://[^\s"']*s3[^\s"']*amazonaws\.com/[^\s"']+`)
	anyURLPattern     = regexp.MustCompile(`https?://[^\s"'<>]+`)
)

// Dispatcher sends processing prompts to the AI backend and turns the
// response into playable records. One job runs at a time; a submit
// while busy is refused instead of queued.
type Dispatcher struct {
	c          *Client
	probe      *DurationProbe
	transcript *Transcript
	playlist   *Playlist

	mu   sync.Mutex
	busy bool
}

func (c *Client) NewDispatcher(probe *DurationProbe, transcript *Transcript, playlist *Playlist) *Dispatcher {
	return &Dispatcher{
		c:          c,
		probe:      probe,
		transcript: transcript,
		playlist:   playlist,
	}
}

// Busy reports whether a job is currently in flight.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

type jobRequest struct {
	SelectedVideo string `json:"selectedVideo"`
	Prompt        string `json:"prompt"`
}

// jobResponse covers the response shapes the processing backend has
// produced over time. Newer deployments send cloudfrontUrls, older
// ones a single videoUrl or raw s3Urls, and the oldest dump
// everything into allOutputs.
type jobResponse struct {
	OK             *bool    `json:"ok"`
	Error          string   `json:"error"`
	CloudfrontURLs []string `json:"cloudfrontUrls"`
	VideoURL       string   `json:"videoUrl"`
	S3URLs         []string `json:"s3Urls"`
	AllOutputs     []any    `json:"allOutputs"`
}

// SubmitJob records the user's prompt, dispatches the job and settles
// the transcript and playlist from the result. It always appends a
// bot message before returning, success or not, so the conversation
// never goes silent.
func (d *Dispatcher) SubmitJob(ctx context.Context, selectedVideo, prompt string) error {
	if selectedVideo == "" {
		return ErrNoInputVideo
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return ErrJobInFlight
	}
	d.busy = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.busy = false
		d.mu.Unlock()
	}()

	d.transcript.Append(prompt, false)

	// The backend wants the bare filename, not the catalog path
	name := selectedVideo
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	payload, err := json.Marshal(jobRequest{SelectedVideo: name, Prompt: prompt})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.c.BaseURL+pathVideoAI, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.c.HTTP.Do(req)
	if err != nil {
		zap.L().Error("Job dispatch failed", zap.Error(err))
		d.transcript.Append(dispatchFailureMessage(err), true)
		return nil
	}
	defer resp.Body.Close()

	var body jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		d.transcript.Append("The processing service returned an unreadable response.", true)
		return nil
	}

	failed := resp.StatusCode < 200 || resp.StatusCode > 299
	if body.OK != nil && !*body.OK {
		failed = true
	}
	if failed {
		msg := body.Error
		if msg == "" {
			msg = "Video processing failed. Please try again."
		}
		d.transcript.Append(msg, true)
		return nil
	}

	urls, texts := d.extractOutputs(body)
	if len(urls) == 0 {
		if len(texts) == 0 {
			d.transcript.Append("Processing finished but produced no output.", true)
			return nil
		}
		for _, t := range texts {
			d.transcript.Append(t, true)
		}
		return nil
	}

	records := make([]model.VideoRecord, 0, len(urls))
	for i, u := range urls {
		records = append(records, model.VideoRecord{
			ID:       fmt.Sprintf("job-%d", i+1),
			Title:    model.TitleFromFilename(lastSegment(u)),
			URL:      u,
			Duration: d.probe.Probe(ctx, u),
		})
	}

	d.playlist.Replace(records)
	d.transcript.Append(fmt.Sprintf("Done! Produced %d clip(s). Use the player to browse them.", len(records)), true)

	return nil
}

// extractOutputs resolves the playable URLs from whichever fields the
// backend filled in. Sources are tried in order of trust and the
// first one yielding anything wins; plain-text outputs are collected
// regardless so status lines still reach the transcript.
func (d *Dispatcher) extractOutputs(body jobResponse) (urls, texts []string) {
	if len(body.CloudfrontURLs) > 0 {
		return dedupe(body.CloudfrontURLs), nil
	}

	if body.VideoURL != "" {
		return []string{body.VideoURL}, nil
	}

	if len(body.S3URLs) > 0 {
		rewritten := make([]string, 0, len(body.S3URLs))
		for _, u := range body.S3URLs {
			rewritten = append(rewritten, d.c.Hosts.Cut+"/"+lastSegment(u))
		}
		return dedupe(rewritten), nil
	}

	for _, out := range body.AllOutputs {
		s, isString := out.(string)
		if !isString {
			// Object entries carry their URLs in string fields;
			// flattening to JSON lets the same patterns find them
			raw, err := json.Marshal(out)
			if err != nil {
				continue
			}
			s = string(raw)
		}

		if found := cloudfrontPattern.FindAllString(s, -1); len(found) > 0 {
			urls = append(urls, found...)
			continue
		}
		if found := s3URLPattern.FindAllString(s, -1); len(found) > 0 {
			for _, u := range found {
				urls = append(urls, d.c.Hosts.Cut+"/"+lastSegment(u))
			}
			continue
		}
		if found := anyURLPattern.FindAllString(s, -1); len(found) > 0 {
			urls = append(urls, found...)
			continue
		}

		// Only real string outputs read as chat text; a flattened
		// object without URLs is noise
		if !isString {
			continue
		}

		if t := strings.TrimSpace(s); t != "" {
			texts = append(texts, t)
		}
	}

	return dedupe(urls), texts
}

// dispatchFailureMessage picks the chat line for a transport error.
// Refused connections, DNS failures and timeouts get the connectivity
// notice; anything else reads as a plain processing failure.
func dispatchFailureMessage(err error) string {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return "Couldn't reach the processing service. Please check your connection and try again."
	case errors.As(err, &netErr) && netErr.Timeout():
		return "Couldn't reach the processing service. Please check your connection and try again."
	default:
		return "Video processing failed. Please try again."
	}
}

// dedupe drops repeats while keeping first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func lastSegment(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
