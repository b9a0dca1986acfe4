package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/singleflight"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/domain/repository"
)

// DictionaryProvider fetches definitions from the external dictionary API.
type DictionaryProvider interface {
	Lookup(ctx context.Context, word string) (*model.DictionaryEntry, error)
}

// VocabularyUseCase manages the lexicon and its synonym graph.
type VocabularyUseCase struct {
	words      repository.WordRepository
	dictionary DictionaryProvider
	lookups    singleflight.Group
}

// NewVocabularyUseCase constructs VocabularyUseCase.
func NewVocabularyUseCase(words repository.WordRepository, dictionary DictionaryProvider) *VocabularyUseCase {
	return &VocabularyUseCase{words: words, dictionary: dictionary}
}

// List returns stored words with the requested ordering, optionally filtered
// to words that have the given synonym.
func (u *VocabularyUseCase) List(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error) {
	return u.words.List(ctx, sort, strings.ToLower(strings.TrimSpace(synonymFilter)))
}

// GetOrCreate returns the stored word, fetching and persisting it from the
// dictionary API on miss. Concurrent lookups for the same word share one
// API call.
func (u *VocabularyUseCase) GetOrCreate(ctx context.Context, word string) (*model.Word, bool, error) {
	word = normalizeWord(word)
	if word == "" {
		return nil, false, domainErrors.ErrInvalidWord
	}

	if existing, err := u.words.GetByWord(ctx, word); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, false, err
	}

	result, err, _ := u.lookups.Do(word, func() (any, error) {
		// Re-check under the flight: a concurrent caller may have stored it.
		if existing, err := u.words.GetByWord(ctx, word); err == nil {
			return lookupResult{word: existing}, nil
		} else if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
		stored, err := u.fetchAndStore(ctx, word)
		if err != nil {
			return nil, err
		}
		return lookupResult{word: stored, created: true}, nil
	})
	if err != nil {
		return nil, false, err
	}

	res := result.(lookupResult)
	return res.word, res.created, nil
}

// lookupResult carries the flight outcome so callers that lost the race to a
// concurrent insert do not report the word as freshly created.
type lookupResult struct {
	word    *model.Word
	created bool
}

// Create stores a word after fetching its definition, returning the existing
// entry unchanged when the word is already known.
func (u *VocabularyUseCase) Create(ctx context.Context, word string) (*model.Word, bool, error) {
	return u.GetOrCreate(ctx, word)
}

func (u *VocabularyUseCase) fetchAndStore(ctx context.Context, word string) (*model.Word, error) {
	entry, err := u.dictionary.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}

	synonyms := make([]string, 0, len(entry.Synonyms))
	for _, syn := range entry.Synonyms {
		if s := normalizeWord(syn); s != "" && s != word {
			synonyms = append(synonyms, s)
		}
	}

	return u.words.Create(ctx, &model.Word{
		Word:       word,
		Type:       entry.Type,
		Definition: entry.Definition,
		Synonyms:   synonyms,
	})
}

// Get fetches a stored word by spelling.
func (u *VocabularyUseCase) Get(ctx context.Context, word string) (*model.Word, error) {
	return u.words.GetByWord(ctx, normalizeWord(word))
}

// Update applies a partial update to a word.
func (u *VocabularyUseCase) Update(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error) {
	return u.words.Update(ctx, id, update)
}

// Delete removes a word together with its synonym edges.
func (u *VocabularyUseCase) Delete(ctx context.Context, id int64) error {
	return u.words.Delete(ctx, id)
}

// WordsForLinking claims a batch of words awaiting synonym linking.
func (u *VocabularyUseCase) WordsForLinking(ctx context.Context, limit int) ([]model.Word, error) {
	return u.words.SelectBatchForLinking(ctx, limit)
}

// LexiconExcept returns every stored word except the given one.
func (u *VocabularyUseCase) LexiconExcept(ctx context.Context, id int64) ([]model.Word, error) {
	return u.words.AllExcept(ctx, id)
}

// LinkSynonyms records an undirected synonym relation between two words.
func (u *VocabularyUseCase) LinkSynonyms(ctx context.Context, a, b *model.Word) error {
	return u.words.LinkSymmetric(ctx, a, b)
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
