package client

import (
	"regexp"
	"sync"

	"cliphaus/video-finder/model"
)

var linkPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// Transcript is the append-only chat history between the user and the
// processing backend. Message IDs are monotonic so a renderer can use
// them as stable keys.
type Transcript struct {
	mu     sync.Mutex
	msgs   []model.ChatMessage
	nextID int
}

func NewTranscript() *Transcript {
	return &Transcript{nextID: 1}
}

// Append adds a message and returns it with its assigned ID.
func (t *Transcript) Append(text string, fromBot bool) model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := model.ChatMessage{
		ID:      t.nextID,
		Text:    text,
		FromBot: fromBot,
	}
	t.nextID++
	t.msgs = append(t.msgs, m)
	return m
}

// Messages returns a copy of the history in arrival order.
func (t *Transcript) Messages() []model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]model.ChatMessage, len(t.msgs))
	copy(out, t.msgs)
	return out
}

// DownloadLinks extracts the URLs embedded in a bot message so the
// renderer can offer them as download targets. User messages never
// carry links.
func DownloadLinks(m model.ChatMessage) []string {
	if !m.FromBot {
		return nil
	}
	return linkPattern.FindAllString(m.Text, -1)
}
