package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/domain/repository"
)

// EventPublisher notifies external consumers about order lifecycle events.
// Publishing failures never fail the order itself.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *model.Order) error
	OrderStatusChanged(ctx context.Context, order *model.Order, from model.OrderStatus) error
}

// OrderUseCase encapsulates order creation and lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
	menu   repository.MenuRepository
	users  repository.UserRepository
	events EventPublisher
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, menu repository.MenuRepository, users repository.UserRepository, events EventPublisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, menu: menu, users: users, events: events, logger: logger}
}

// Submit creates an order for the given submission and returns the persisted
// aggregate carrying its display number.
//
// The block check runs before any mutation. Prices are snapshotted once, the
// aggregate is computed from that snapshot, and the counter increment, order
// header and line items are committed by the repository as one atomic unit:
// a failure anywhere leaves no partial order and no consumed counter value.
func (u *OrderUseCase) Submit(ctx context.Context, sub model.OrderSubmission) (*model.Order, error) {
	blocked, err := u.users.IsBlocked(ctx, sub.UserID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, domainErrors.ErrSubmitterBlocked
	}

	draft, err := u.priceDraft(ctx, sub.Items)
	if err != nil {
		return nil, err
	}
	draft.Local = sub.Local
	draft.ScheduledAt = sub.ScheduledAt
	draft.UserID = sub.UserID
	draft.Notes = sub.Notes

	order, err := u.orders.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := u.events.OrderCreated(ctx, order); err != nil {
		u.logger.Error("publish order created failed",
			slog.String("order", order.PublicID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// priceDraft snapshots current prices for the requested items and builds the
// priced draft from that snapshot.
func (u *OrderUseCase) priceDraft(ctx context.Context, items []model.OrderItemRequest) (model.OrderDraft, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.MenuItemID)
	}

	prices, err := u.menu.SnapshotPrices(ctx, ids)
	if err != nil {
		return model.OrderDraft{}, err
	}

	lineItems, total, err := BuildLineItems(items, prices)
	if err != nil {
		return model.OrderDraft{}, err
	}

	return model.OrderDraft{Total: total, Items: lineItems}, nil
}

// GetByPublicID fetches a single order aggregate.
func (u *OrderUseCase) GetByPublicID(ctx context.Context, publicID string) (*model.Order, error) {
	return u.orders.GetByPublicID(ctx, publicID)
}

// ListForToday returns today's orders in the given status. Admin only.
func (u *OrderUseCase) ListForToday(ctx context.Context, actorID int64, status model.OrderStatus) ([]model.Order, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return u.orders.ListForToday(ctx, status, time.Now())
}

// ListActive returns the user's own undelivered orders for today.
func (u *OrderUseCase) ListActive(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListActiveByUser(ctx, userID, time.Now())
}

// ChangeStatus moves an order along its lifecycle. Admin only; transitions
// never go backwards.
func (u *OrderUseCase) ChangeStatus(ctx context.Context, actorID int64, publicID string, status model.OrderStatus) (*model.Order, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !model.ValidStatus(status) {
		return nil, domainErrors.ErrInvalidStatusChange
	}

	current, err := u.orders.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(current.Status, status) {
		return nil, domainErrors.ErrInvalidStatusChange
	}

	order, err := u.orders.UpdateStatus(ctx, publicID, status)
	if err != nil {
		return nil, err
	}

	if err := u.events.OrderStatusChanged(ctx, order, current.Status); err != nil {
		u.logger.Error("publish status change failed",
			slog.String("order", order.PublicID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// Update replaces an order's line items from a fresh price snapshot and
// recomputes the total. Admin only.
func (u *OrderUseCase) Update(ctx context.Context, actorID int64, publicID string, items []model.OrderItemRequest, scheduledAt *time.Time, notes *string) (*model.Order, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	current, err := u.orders.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	draft, err := u.priceDraft(ctx, items)
	if err != nil {
		return nil, err
	}
	draft.Local = current.Local
	draft.UserID = current.UserID
	draft.ScheduledAt = current.ScheduledAt
	if scheduledAt != nil {
		draft.ScheduledAt = *scheduledAt
	}
	draft.Notes = current.Notes
	if notes != nil {
		draft.Notes = notes
	}

	return u.orders.Replace(ctx, publicID, draft)
}

func (u *OrderUseCase) requireAdmin(ctx context.Context, actorID int64) error {
	actor, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return domainErrors.ErrNotAdmin
	}
	return nil
}
