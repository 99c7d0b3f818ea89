package client

import (
	"sync"

	"cliphaus/video-finder/model"
)

// Direction selects which neighbor Navigate moves to.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Playlist holds the clips produced by a finished job and tracks
// which one is showing. Navigation wraps at both ends. An index of
// -1 means nothing is selected, which is the state right after a
// Replace.
type Playlist struct {
	mu      sync.Mutex
	items   []model.VideoRecord
	current int
	playing bool
}

func NewPlaylist() *Playlist {
	return &Playlist{current: -1}
}

// Replace swaps the whole playlist and resets selection and playback.
func (p *Playlist) Replace(items []model.VideoRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = items
	p.current = -1
	p.playing = false
}

// Navigate moves one item in the given direction, wrapping around.
// With nothing loaded the index stays pinned at -1.
func (p *Playlist) Navigate(d Direction) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.items)
	if n == 0 {
		p.current = -1
		return p.current
	}

	switch d {
	case Prev:
		if p.current > 0 {
			p.current--
		} else {
			p.current = n - 1
		}
	case Next:
		if p.current < n-1 {
			p.current++
		} else {
			p.current = 0
		}
	}

	return p.current
}

// Select jumps straight to an index. Playback restarts paused so a
// jump never autoplays.
func (p *Playlist) Select(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.items) {
		return false
	}

	p.current = i
	p.playing = false
	return true
}

// Current returns the selected record, or nil when nothing is
// selected.
func (p *Playlist) Current() *model.VideoRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < 0 || p.current >= len(p.items) {
		return nil
	}

	v := p.items[p.current]
	return &v
}

func (p *Playlist) CurrentIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Playlist) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *Playlist) Items() []model.VideoRecord {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.VideoRecord, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Playlist) SetPlaying(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = v
}

func (p *Playlist) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
