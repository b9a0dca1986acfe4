package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
)

const wordColumns = `id, word, word_type, definition, linked, created_at`

// Create persists the word together with its synonym edges in one
// transaction, so a failed edge insert leaves no stripped word behind.
func (r *wordRepository) Create(ctx context.Context, word *model.Word) (*model.Word, error) {
	const query = `INSERT INTO words (word, word_type, definition)
            VALUES ($1, $2, $3) RETURNING id, created_at`
	created := *word
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, query, word.Word, word.Type, word.Definition).
			Scan(&created.ID, &created.CreatedAt); err != nil {
			return err
		}
		for _, syn := range word.Synonyms {
			if _, err := tx.Exec(ctx, insertEdgeQuery, created.ID, syn); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *wordRepository) GetByWord(ctx context.Context, word string) (*model.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE word=$1`
	return r.getOne(ctx, query, word)
}

func (r *wordRepository) GetByID(ctx context.Context, id int64) (*model.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *wordRepository) getOne(ctx context.Context, query string, arg any) (*model.Word, error) {
	var w model.Word
	err := r.storage.pool.QueryRow(ctx, query, arg).
		Scan(&w.ID, &w.Word, &w.Type, &w.Definition, &w.Linked, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	synonyms, err := r.loadSynonyms(ctx, []int64{w.ID})
	if err != nil {
		return nil, err
	}
	w.Synonyms = synonyms[w.ID]
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error) {
	orderBy := `word`
	switch sort {
	case model.WordSortType:
		orderBy = `word_type, word`
	case model.WordSortDate:
		orderBy = `created_at DESC`
	}

	query := `SELECT ` + wordColumns + ` FROM words`
	var args []any
	if synonymFilter != "" {
		query += ` WHERE EXISTS (SELECT 1 FROM synonyms s WHERE s.word_id = words.id AND s.synonym = $1)`
		args = append(args, synonymFilter)
	}
	query += ` ORDER BY ` + orderBy

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Word
	var ids []int64
	for rows.Next() {
		var w model.Word
		if err := rows.Scan(&w.ID, &w.Word, &w.Type, &w.Definition, &w.Linked, &w.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return result, nil
	}
	synonyms, err := r.loadSynonyms(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Synonyms = synonyms[result[i].ID]
	}
	return result, nil
}

func (r *wordRepository) Update(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error) {
	query := `UPDATE words SET
                word_type = COALESCE($2, word_type),
                definition = COALESCE($3, definition)
            WHERE id=$1
            RETURNING ` + wordColumns
	var w model.Word
	err := r.storage.pool.QueryRow(ctx, query, id, update.Type, update.Definition).
		Scan(&w.ID, &w.Word, &w.Type, &w.Definition, &w.Linked, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	synonyms, err := r.loadSynonyms(ctx, []int64{w.ID})
	if err != nil {
		return nil, err
	}
	w.Synonyms = synonyms[w.ID]
	return &w, nil
}

// Delete removes the word; its synonym edges go with it via ON DELETE CASCADE.
func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM words WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

const insertEdgeQuery = `INSERT INTO synonyms (word_id, synonym) VALUES ($1, $2)
        ON CONFLICT (word_id, synonym) DO NOTHING`

// LinkSymmetric writes both directions of an undirected synonym edge,
// ignoring duplicates, inside one transaction.
func (r *wordRepository) LinkSymmetric(ctx context.Context, a, b *model.Word) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertEdgeQuery, a.ID, b.Word); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertEdgeQuery, b.ID, a.Word); err != nil {
			return err
		}
		return nil
	})
}

// SelectBatchForLinking claims up to limit unlinked words. FOR UPDATE SKIP
// LOCKED lets concurrent workers claim disjoint batches.
func (r *wordRepository) SelectBatchForLinking(ctx context.Context, limit int) ([]model.Word, error) {
	selectQuery := `SELECT ` + wordColumns + ` FROM words
            WHERE NOT linked
            ORDER BY created_at
            LIMIT $1
            FOR UPDATE SKIP LOCKED`

	var words []model.Word
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var w model.Word
			if err := rows.Scan(&w.ID, &w.Word, &w.Type, &w.Definition, &w.Linked, &w.CreatedAt); err != nil {
				return err
			}
			words = append(words, w)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range words {
			if _, err := tx.Exec(ctx, `UPDATE words SET linked=TRUE WHERE id=$1`, words[i].ID); err != nil {
				return err
			}
			words[i].Linked = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

func (r *wordRepository) AllExcept(ctx context.Context, id int64) ([]model.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id <> $1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Word
	for rows.Next() {
		var w model.Word
		if err := rows.Scan(&w.ID, &w.Word, &w.Type, &w.Definition, &w.Linked, &w.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *wordRepository) loadSynonyms(ctx context.Context, wordIDs []int64) (map[int64][]string, error) {
	const query = `SELECT word_id, synonym FROM synonyms WHERE word_id = ANY($1) ORDER BY synonym`
	rows, err := r.storage.pool.Query(ctx, query, wordIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	synonyms := make(map[int64][]string)
	for rows.Next() {
		var wordID int64
		var syn string
		if err := rows.Scan(&wordID, &syn); err != nil {
			return nil, err
		}
		synonyms[wordID] = append(synonyms[wordID], syn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return synonyms, nil
}
