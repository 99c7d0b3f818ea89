package model

// ChatMessage is one entry of the prompt transcript. Messages are
// append-only and never mutated once added.
type ChatMessage struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	FromBot bool   `json:"isBot"`
}
