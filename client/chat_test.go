package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliphaus/video-finder/model"
)

func TestTranscriptIDsMonotonic(t *testing.T) {
	tr := NewTranscript()

	a := tr.Append("first", false)
	b := tr.Append("second", true)
	c := tr.Append("third", false)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 3, c.ID)

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Text)
	assert.True(t, msgs[1].FromBot)
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.Append("hello", false)

	msgs := tr.Messages()
	msgs[0].Text = "mutated"

	assert.Equal(t, "hello", tr.Messages()[0].Text)
}

func TestDownloadLinks(t *testing.T) {
	m := model.ChatMessage{
		FromBot: true,
		Text:    "Your clips: https://cuts.example.com/a.mp4 and https://cuts.example.com/b.mp4",
	}

	links := DownloadLinks(m)
	require.Len(t, links, 2)
	assert.Equal(t, "https://cuts.example.com/a.mp4", links[0])
}

func TestDownloadLinksIgnoresUserMessages(t *testing.T) {
	m := model.ChatMessage{
		FromBot: false,
		Text:    "see https://example.com/a.mp4",
	}

	assert.Nil(t, DownloadLinks(m))
}
