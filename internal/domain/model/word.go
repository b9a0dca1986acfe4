package model

import "time"

// Word is a dictionary entry with its synonym adjacency.
type Word struct {
	ID         int64
	Word       string
	Type       string
	Definition string
	Synonyms   []string
	Linked     bool
	CreatedAt  time.Time
}

// WordUpdate carries optional fields for partial word updates.
type WordUpdate struct {
	Type       *string
	Definition *string
}

// DictionaryEntry is what the external dictionary API knows about a word.
type DictionaryEntry struct {
	Word       string
	Type       string
	Definition string
	Synonyms   []string
}

// WordSort names the supported orderings for word listings.
type WordSort string

const (
	WordSortAlphabetical WordSort = "alphabetical"
	WordSortType         WordSort = "type"
	WordSortDate         WordSort = "date"
)
