package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
)

// incrementCounterQuery is the only place the order counter is touched.
// A single atomic upsert serializes concurrent submissions per scope: two
// transactions can never observe the same raw value, and a rolled back
// transaction releases its increment, so failed orders burn no numbers.
const incrementCounterQuery = `INSERT INTO order_counters (scope, value) VALUES ($1, 1)
        ON CONFLICT (scope) DO UPDATE SET value = order_counters.value + 1
        RETURNING value`

const orderColumns = `id, public_id, local, display_number, scheduled_at, total, status, notes, user_id, created_at`

// Create persists the whole order aggregate in one transaction: counter
// increment, header and line items all apply or none do.
func (r *orderRepository) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var raw int64
		if err := tx.QueryRow(ctx, incrementCounterQuery, draft.Local).Scan(&raw); err != nil {
			return fmt.Errorf("%w: %w", domainErrors.ErrCounterUnavailable, err)
		}

		order = model.Order{
			PublicID:      uuid.NewString(),
			Local:         draft.Local,
			DisplayNumber: model.DisplayNumber(raw),
			ScheduledAt:   draft.ScheduledAt,
			Total:         draft.Total,
			Status:        model.OrderStatusPending,
			Notes:         draft.Notes,
			UserID:        draft.UserID,
		}

		const insertHeader = `INSERT INTO orders (public_id, local, display_number, scheduled_at, total, status, notes, user_id)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                RETURNING id, created_at`
		err := tx.QueryRow(ctx, insertHeader,
			order.PublicID, order.Local, order.DisplayNumber, order.ScheduledAt,
			order.Total, order.Status, order.Notes, order.UserID,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return fmt.Errorf("%w: insert header: %w", domainErrors.ErrOrderCreationFailed, err)
		}

		items, err := insertLineItems(ctx, tx, order.ID, draft.Items)
		if err != nil {
			return fmt.Errorf("%w: %w", domainErrors.ErrOrderCreationFailed, err)
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func insertLineItems(ctx context.Context, tx pgx.Tx, orderID int64, items []model.OrderLineItem) ([]model.OrderLineItem, error) {
	const insertItem = `INSERT INTO order_items (order_id, menu_item_id, quantity, price)
            VALUES ($1, $2, $3, $4) RETURNING id`
	result := make([]model.OrderLineItem, 0, len(items))
	for _, item := range items {
		item.OrderID = orderID
		if err := tx.QueryRow(ctx, insertItem, orderID, item.MenuItemID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("insert line item: %w", err)
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *orderRepository) GetByPublicID(ctx context.Context, publicID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE public_id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, publicID).Scan(
		&o.ID, &o.PublicID, &o.Local, &o.DisplayNumber, &o.ScheduledAt,
		&o.Total, &o.Status, &o.Notes, &o.UserID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// ListForToday returns orders in the given status whose creation or
// scheduled time falls on the current date.
func (r *orderRepository) ListForToday(ctx context.Context, status model.OrderStatus, now time.Time) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1 AND (created_at::date = $2::date OR scheduled_at::date = $2::date)
              ORDER BY scheduled_at`
	return r.queryOrders(ctx, query, status, now)
}

// ListActiveByUser returns the user's undelivered orders for today, newest
// scheduled first.
func (r *orderRepository) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE user_id=$1 AND status <> 'DELIVERED'
                AND (created_at::date = $2::date OR scheduled_at::date = $2::date)
              ORDER BY scheduled_at DESC`
	return r.queryOrders(ctx, query, userID, now)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, publicID string, status model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1 WHERE public_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, publicID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByPublicID(ctx, publicID)
}

// Replace swaps an order's line items and header fields in one transaction.
// The original line items are dropped and recreated from the draft.
func (r *orderRepository) Replace(ctx context.Context, publicID string, draft model.OrderDraft) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateHeader = `UPDATE orders SET scheduled_at=$1, total=$2, notes=$3
                WHERE public_id=$4 RETURNING id`
		var orderID int64
		err := tx.QueryRow(ctx, updateHeader, draft.ScheduledAt, draft.Total, draft.Notes, publicID).Scan(&orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, orderID); err != nil {
			return fmt.Errorf("delete line items: %w", err)
		}
		if _, err := insertLineItems(ctx, tx, orderID, draft.Items); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByPublicID(ctx, publicID)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	var ids []int64
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.PublicID, &o.Local, &o.DisplayNumber, &o.ScheduledAt,
			&o.Total, &o.Status, &o.Notes, &o.UserID, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return result, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = items[result[i].ID]
	}
	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]model.OrderLineItem, error) {
	const query = `SELECT id, order_id, menu_item_id, quantity, price
            FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]model.OrderLineItem)
	for rows.Next() {
		var item model.OrderLineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
