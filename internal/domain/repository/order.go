package repository

import (
	"context"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create persists the whole aggregate in one transaction: the per-local
// counter increment, the order header and every line item either all apply
// or none do.
type OrderRepository interface {
	Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.Order, error)
	ListForToday(ctx context.Context, status model.OrderStatus, now time.Time) ([]model.Order, error)
	ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]model.Order, error)
	UpdateStatus(ctx context.Context, publicID string, status model.OrderStatus) (*model.Order, error)
	Replace(ctx context.Context, publicID string, draft model.OrderDraft) (*model.Order, error)
}
