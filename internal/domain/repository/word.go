package repository

import (
	"context"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// WordRepository describes persistence operations with the lexicon.
type WordRepository interface {
	// Create persists the word and its synonym edges atomically.
	Create(ctx context.Context, word *model.Word) (*model.Word, error)
	GetByWord(ctx context.Context, word string) (*model.Word, error)
	GetByID(ctx context.Context, id int64) (*model.Word, error)
	List(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error)
	Update(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error)
	Delete(ctx context.Context, id int64) error

	// LinkSymmetric records an undirected synonym relation between two
	// stored words, writing both directions and ignoring duplicates.
	LinkSymmetric(ctx context.Context, a, b *model.Word) error
	// SelectBatchForLinking claims up to limit words not yet processed by
	// the synonym linker, marking them as claimed.
	SelectBatchForLinking(ctx context.Context, limit int) ([]model.Word, error)
	// AllExcept returns every stored word except the one with the given id.
	AllExcept(ctx context.Context, id int64) ([]model.Word, error)
}
