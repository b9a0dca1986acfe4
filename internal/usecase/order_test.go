package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	testhelpers "github.com/anrodrig/comanda/internal/test"
)

type publisherStub struct {
	created       []string
	statusChanges []model.OrderStatus
	err           error
}

func (p *publisherStub) OrderCreated(ctx context.Context, order *model.Order) error {
	p.created = append(p.created, order.PublicID)
	return p.err
}

func (p *publisherStub) OrderStatusChanged(ctx context.Context, order *model.Order, from model.OrderStatus) error {
	p.statusChanges = append(p.statusChanges, order.Status)
	return p.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderFixture(t *testing.T) (*OrderUseCase, *testhelpers.OrderRepositoryStub, *testhelpers.MenuRepositoryStub, *testhelpers.UserRepositoryStub, *publisherStub) {
	t.Helper()
	orders := &testhelpers.OrderRepositoryStub{}
	menu := &testhelpers.MenuRepositoryStub{Prices: map[int64]float64{1: 5.00, 2: 2.00}}
	users := testhelpers.NewUserRepositoryStub()
	publisher := &publisherStub{}
	uc := NewOrderUseCase(orders, menu, users, publisher, discardLogger())
	return uc, orders, menu, users, publisher
}

func TestOrderSubmit(t *testing.T) {
	uc, orders, _, users, publisher := newOrderFixture(t)
	customer := users.Add(&model.User{Email: "c@example.com", Role: model.RoleUser})

	order, err := uc.Submit(context.Background(), model.OrderSubmission{
		Local:       "centro",
		ScheduledAt: time.Now().Add(time.Hour),
		UserID:      customer.ID,
		Items:       []model.OrderItemRequest{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 2, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Total != 16.00 {
		t.Fatalf("expected total 16.00, got %.2f", order.Total)
	}
	if order.DisplayNumber < 1 || order.DisplayNumber > 100 {
		t.Fatalf("display number %d out of range", order.DisplayNumber)
	}
	if len(orders.CreatedDrafts) != 1 {
		t.Fatalf("expected one persisted draft, got %d", len(orders.CreatedDrafts))
	}
	if orders.CreatedDrafts[0].Total != 16.00 {
		t.Fatalf("draft carries total %.2f, want 16.00", orders.CreatedDrafts[0].Total)
	}
	if len(publisher.created) != 1 {
		t.Fatalf("expected one created event, got %d", len(publisher.created))
	}
}

func TestOrderSubmitBlockedUserNeverReachesStorage(t *testing.T) {
	uc, orders, menu, users, _ := newOrderFixture(t)
	blocked := users.Add(&model.User{Email: "b@example.com", Blocked: true})

	_, err := uc.Submit(context.Background(), model.OrderSubmission{
		Local:       "centro",
		ScheduledAt: time.Now(),
		UserID:      blocked.ID,
		Items:       []model.OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
	})
	if !errors.Is(err, domainErrors.ErrSubmitterBlocked) {
		t.Fatalf("expected ErrSubmitterBlocked, got %v", err)
	}
	if menu.SnapshotCalls != 0 {
		t.Fatal("price snapshot must not run for blocked submitters")
	}
	if len(orders.CreatedDrafts) != 0 {
		t.Fatal("no draft may be persisted for blocked submitters")
	}
}

func TestOrderSubmitUnknownItem(t *testing.T) {
	uc, orders, _, users, _ := newOrderFixture(t)
	customer := users.Add(&model.User{Email: "c@example.com"})

	_, err := uc.Submit(context.Background(), model.OrderSubmission{
		Local:       "centro",
		ScheduledAt: time.Now(),
		UserID:      customer.ID,
		Items:       []model.OrderItemRequest{{MenuItemID: 42, Quantity: 1}},
	})
	if !errors.Is(err, domainErrors.ErrUnknownMenuItem) {
		t.Fatalf("expected ErrUnknownMenuItem, got %v", err)
	}
	if len(orders.CreatedDrafts) != 0 {
		t.Fatal("no draft may be persisted when pricing fails")
	}
}

func TestOrderSubmitPublishFailureDoesNotFailOrder(t *testing.T) {
	uc, _, _, users, publisher := newOrderFixture(t)
	publisher.err = errors.New("broker down")
	customer := users.Add(&model.User{Email: "c@example.com"})

	order, err := uc.Submit(context.Background(), model.OrderSubmission{
		Local:       "centro",
		ScheduledAt: time.Now(),
		UserID:      customer.ID,
		Items:       []model.OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("publish failure must not fail the order: %v", err)
	}
	if order == nil {
		t.Fatal("expected order despite publish failure")
	}
}

func TestOrderChangeStatus(t *testing.T) {
	uc, orders, _, users, publisher := newOrderFixture(t)
	admin := users.Add(&model.User{Email: "a@example.com", Role: model.RoleAdmin})
	orders.GetByPublicIDFn = func(ctx context.Context, publicID string) (*model.Order, error) {
		return &model.Order{PublicID: publicID, Status: model.OrderStatusPending}, nil
	}

	order, err := uc.ChangeStatus(context.Background(), admin.ID, "00000000-0000-0000-0000-000000000001", model.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", order.Status)
	}
	if len(publisher.statusChanges) != 1 {
		t.Fatalf("expected one status event, got %d", len(publisher.statusChanges))
	}
}

func TestOrderChangeStatusRejectsBackwards(t *testing.T) {
	uc, orders, _, users, _ := newOrderFixture(t)
	admin := users.Add(&model.User{Email: "a@example.com", Role: model.RoleAdmin})
	orders.GetByPublicIDFn = func(ctx context.Context, publicID string) (*model.Order, error) {
		return &model.Order{PublicID: publicID, Status: model.OrderStatusDelivered}, nil
	}

	_, err := uc.ChangeStatus(context.Background(), admin.ID, "00000000-0000-0000-0000-000000000001", model.OrderStatusPending)
	if !errors.Is(err, domainErrors.ErrInvalidStatusChange) {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}
}

func TestOrderChangeStatusRequiresAdmin(t *testing.T) {
	uc, _, _, users, _ := newOrderFixture(t)
	customer := users.Add(&model.User{Email: "c@example.com", Role: model.RoleUser})

	_, err := uc.ChangeStatus(context.Background(), customer.ID, "00000000-0000-0000-0000-000000000001", model.OrderStatusConfirmed)
	if !errors.Is(err, domainErrors.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestOrderListForTodayRequiresAdmin(t *testing.T) {
	uc, _, _, users, _ := newOrderFixture(t)
	customer := users.Add(&model.User{Email: "c@example.com", Role: model.RoleUser})

	_, err := uc.ListForToday(context.Background(), customer.ID, model.OrderStatusPending)
	if !errors.Is(err, domainErrors.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestOrderUpdateReplacesItemsAtCurrentPrices(t *testing.T) {
	uc, orders, _, users, _ := newOrderFixture(t)
	admin := users.Add(&model.User{Email: "a@example.com", Role: model.RoleAdmin})
	orders.GetByPublicIDFn = func(ctx context.Context, publicID string) (*model.Order, error) {
		return &model.Order{PublicID: publicID, Local: "centro", UserID: 7, Status: model.OrderStatusPending}, nil
	}
	var replaced model.OrderDraft
	orders.ReplaceFn = func(ctx context.Context, publicID string, draft model.OrderDraft) (*model.Order, error) {
		replaced = draft
		return &model.Order{PublicID: publicID, Total: draft.Total, Items: draft.Items}, nil
	}

	order, err := uc.Update(context.Background(), admin.ID, "00000000-0000-0000-0000-000000000001",
		[]model.OrderItemRequest{{MenuItemID: 2, Quantity: 2}}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Total != 4.00 {
		t.Fatalf("expected recomputed total 4.00, got %.2f", order.Total)
	}
	if replaced.Local != "centro" || replaced.UserID != 7 {
		t.Fatalf("replacement must keep local and owner, got %+v", replaced)
	}
}
