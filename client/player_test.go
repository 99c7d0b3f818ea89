package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliphaus/video-finder/model"
)

func testRecords(n int) []model.VideoRecord {
	out := make([]model.VideoRecord, n)
	for i := range out {
		out[i] = model.VideoRecord{ID: string(rune('a' + i))}
	}
	return out
}

func TestPlaylistStartsUnselected(t *testing.T) {
	p := NewPlaylist()
	assert.Equal(t, -1, p.CurrentIndex())
	assert.Nil(t, p.Current())
}

func TestNavigateWrapsForward(t *testing.T) {
	p := NewPlaylist()
	p.Replace(testRecords(3))

	assert.Equal(t, 0, p.Navigate(Next))
	assert.Equal(t, 1, p.Navigate(Next))
	assert.Equal(t, 2, p.Navigate(Next))
	assert.Equal(t, 0, p.Navigate(Next))
}

func TestNavigateWrapsBackward(t *testing.T) {
	p := NewPlaylist()
	p.Replace(testRecords(3))

	assert.Equal(t, 2, p.Navigate(Prev))
	assert.Equal(t, 1, p.Navigate(Prev))
	assert.Equal(t, 0, p.Navigate(Prev))
	assert.Equal(t, 2, p.Navigate(Prev))
}

func TestNavigateEmptyStaysPinned(t *testing.T) {
	p := NewPlaylist()

	assert.Equal(t, -1, p.Navigate(Next))
	assert.Equal(t, -1, p.Navigate(Prev))
}

func TestNavigateSingleItem(t *testing.T) {
	p := NewPlaylist()
	p.Replace(testRecords(1))

	assert.Equal(t, 0, p.Navigate(Next))
	assert.Equal(t, 0, p.Navigate(Next))
	assert.Equal(t, 0, p.Navigate(Prev))
}

func TestSelectResetsPlayback(t *testing.T) {
	p := NewPlaylist()
	p.Replace(testRecords(3))
	p.SetPlaying(true)

	require.True(t, p.Select(2))
	assert.Equal(t, 2, p.CurrentIndex())
	assert.False(t, p.Playing())

	assert.False(t, p.Select(5))
	assert.False(t, p.Select(-1))
	assert.Equal(t, 2, p.CurrentIndex())
}

func TestReplaceResetsSelection(t *testing.T) {
	p := NewPlaylist()
	p.Replace(testRecords(3))
	p.Select(1)
	p.SetPlaying(true)

	p.Replace(testRecords(2))

	assert.Equal(t, -1, p.CurrentIndex())
	assert.False(t, p.Playing())
	assert.Equal(t, 2, p.Len())
}
