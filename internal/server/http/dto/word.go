package dto

import "time"

// CreateWordRequest asks to add a word to the lexicon.
type CreateWordRequest struct {
	Word string `json:"word"`
}

// UpdateWordRequest carries optional corrections to a stored word.
type UpdateWordRequest struct {
	Type       *string `json:"type"`
	Definition *string `json:"definition"`
}

// WordResponse is the stored word with its synonym list.
type WordResponse struct {
	ID         int64     `json:"id"`
	Word       string    `json:"word"`
	Type       string    `json:"type"`
	Definition string    `json:"definition"`
	Synonyms   []string  `json:"synonyms"`
	CreatedAt  time.Time `json:"created_at"`
}
