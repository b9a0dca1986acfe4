package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
)

const menuItemColumns = `id, category_id, name, description, price, image_url, in_stock, deleted, created_at, updated_at`

// SnapshotPrices returns current prices for the requested ids. Ids that do
// not exist or are soft-deleted are simply absent from the result.
func (r *menuRepository) SnapshotPrices(ctx context.Context, ids []int64) (map[int64]float64, error) {
	const query = `SELECT id, price FROM menu_items WHERE id = ANY($1) AND NOT deleted`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int64]float64, len(ids))
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *menuRepository) ListByCategory(ctx context.Context) ([]model.MenuCategory, error) {
	const categoriesQuery = `SELECT id, name, created_at FROM menu_categories ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, categoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.MenuCategory
	index := make(map[int64]int)
	for rows.Next() {
		var c model.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsQuery := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE NOT deleted ORDER BY created_at`
	itemRows, err := r.storage.pool.Query(ctx, itemsQuery)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanMenuItem(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[item.CategoryID]; ok {
			categories[i].Items = append(categories[i].Items, *item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	const query = `INSERT INTO menu_items (category_id, name, description, price, image_url, in_stock)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id, created_at, updated_at`
	created := *item
	err := r.storage.pool.QueryRow(ctx, query,
		item.CategoryID, item.Name, item.Description, item.Price, item.ImageURL, item.InStock,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem applies the non-nil fields of the update, keeping stored values
// for the rest.
func (r *menuRepository) UpdateItem(ctx context.Context, id int64, update model.MenuItemUpdate) (*model.MenuItem, error) {
	query := `UPDATE menu_items SET
                name = COALESCE($2, name),
                description = COALESCE($3, description),
                price = COALESCE($4, price),
                category_id = COALESCE($5, category_id),
                image_url = COALESCE($6, image_url),
                updated_at = NOW()
            WHERE id=$1 AND NOT deleted
            RETURNING ` + menuItemColumns
	row := r.storage.pool.QueryRow(ctx, query, id,
		update.Name, update.Description, update.Price, update.CategoryID, update.ImageURL)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem soft-deletes so historical order line items keep a valid
// reference.
func (r *menuRepository) DeleteItem(ctx context.Context, id int64) error {
	const query = `UPDATE menu_items SET deleted=TRUE, updated_at=NOW() WHERE id=$1 AND NOT deleted`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) ToggleStock(ctx context.Context, id int64) (*model.MenuItem, error) {
	query := `UPDATE menu_items SET in_stock = NOT in_stock, updated_at=NOW()
            WHERE id=$1 AND NOT deleted
            RETURNING ` + menuItemColumns
	item, err := scanMenuItem(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var item model.MenuItem
	err := row.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price,
		&item.ImageURL, &item.InStock, &item.Deleted, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
