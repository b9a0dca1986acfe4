package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, error)
	BlockFn        func(context.Context, int64, int64) error
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, name, surname, phone string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, name, surname, phone)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser}, "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser}, "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// BlockUser executes configured block handler.
func (s AuthFacadeStub) BlockUser(ctx context.Context, actorID, targetID int64) error {
	if s.BlockFn != nil {
		return s.BlockFn(ctx, actorID, targetID)
	}
	return nil
}

// MenuFacadeStub provides controllable behaviour for menu endpoints.
type MenuFacadeStub struct {
	MenuFn   func(context.Context) ([]model.MenuCategory, error)
	CreateFn func(context.Context, int64, model.MenuItem) (*model.MenuItem, error)
	UpdateFn func(context.Context, int64, int64, model.MenuItemUpdate) (*model.MenuItem, error)
	DeleteFn func(context.Context, int64, int64) error
	ToggleFn func(context.Context, int64, int64) (*model.MenuItem, error)
}

// Menu returns configured categories.
func (s MenuFacadeStub) Menu(ctx context.Context) ([]model.MenuCategory, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx)
	}
	return []model.MenuCategory{{ID: 1, Name: "coffee"}}, nil
}

// CreateMenuItem delegates to override or echoes the item.
func (s MenuFacadeStub) CreateMenuItem(ctx context.Context, actorID int64, item model.MenuItem) (*model.MenuItem, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actorID, item)
	}
	item.ID = 1
	return &item, nil
}

// UpdateMenuItem delegates to override.
func (s MenuFacadeStub) UpdateMenuItem(ctx context.Context, actorID, id int64, update model.MenuItemUpdate) (*model.MenuItem, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actorID, id, update)
	}
	return &model.MenuItem{ID: id}, nil
}

// DeleteMenuItem delegates to override.
func (s MenuFacadeStub) DeleteMenuItem(ctx context.Context, actorID, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actorID, id)
	}
	return nil
}

// ToggleMenuItemStock delegates to override.
func (s MenuFacadeStub) ToggleMenuItemStock(ctx context.Context, actorID, id int64) (*model.MenuItem, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(ctx, actorID, id)
	}
	return &model.MenuItem{ID: id, InStock: false}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	SubmitFn       func(context.Context, model.OrderSubmission) (*model.Order, error)
	OrderFn        func(context.Context, string) (*model.Order, error)
	ActiveFn       func(context.Context, int64) ([]model.Order, error)
	ForTodayFn     func(context.Context, int64, model.OrderStatus) ([]model.Order, error)
	ChangeStatusFn func(context.Context, int64, string, model.OrderStatus) (*model.Order, error)
	UpdateFn       func(context.Context, int64, string, []model.OrderItemRequest, *time.Time, *string) (*model.Order, error)
}

// SubmitOrder delegates to override or returns a pending order.
func (s OrderFacadeStub) SubmitOrder(ctx context.Context, sub model.OrderSubmission) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, sub)
	}
	return &model.Order{
		PublicID:      "00000000-0000-0000-0000-000000000001",
		Local:         sub.Local,
		DisplayNumber: 1,
		Status:        model.OrderStatusPending,
		UserID:        sub.UserID,
	}, nil
}

// Order delegates to override.
func (s OrderFacadeStub) Order(ctx context.Context, publicID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, publicID)
	}
	return &model.Order{PublicID: publicID, DisplayNumber: 1, Status: model.OrderStatusPending}, nil
}

// ActiveOrders delegates to override.
func (s OrderFacadeStub) ActiveOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx, userID)
	}
	return []model.Order{{DisplayNumber: 1, Status: model.OrderStatusPending, UserID: userID}}, nil
}

// OrdersForToday delegates to override.
func (s OrderFacadeStub) OrdersForToday(ctx context.Context, actorID int64, status model.OrderStatus) ([]model.Order, error) {
	if s.ForTodayFn != nil {
		return s.ForTodayFn(ctx, actorID, status)
	}
	return []model.Order{{DisplayNumber: 1, Status: status}}, nil
}

// ChangeOrderStatus delegates to override.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, actorID int64, publicID string, status model.OrderStatus) (*model.Order, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, actorID, publicID, status)
	}
	return &model.Order{PublicID: publicID, Status: status}, nil
}

// UpdateOrder delegates to override.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, actorID int64, publicID string, items []model.OrderItemRequest, scheduledAt *time.Time, notes *string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actorID, publicID, items, scheduledAt, notes)
	}
	return &model.Order{PublicID: publicID, Status: model.OrderStatusPending}, nil
}

// VocabularyFacadeStub provides controllable behaviour for word endpoints.
type VocabularyFacadeStub struct {
	WordsFn  func(context.Context, model.WordSort, string) ([]model.Word, error)
	CreateFn func(context.Context, string) (*model.Word, bool, error)
	WordFn   func(context.Context, string) (*model.Word, error)
	UpdateFn func(context.Context, int64, model.WordUpdate) (*model.Word, error)
	DeleteFn func(context.Context, int64) error
}

// Words delegates to override.
func (s VocabularyFacadeStub) Words(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error) {
	if s.WordsFn != nil {
		return s.WordsFn(ctx, sort, synonymFilter)
	}
	return []model.Word{{ID: 1, Word: "ubiquitous"}}, nil
}

// CreateWord delegates to override or reports a fresh insertion.
func (s VocabularyFacadeStub) CreateWord(ctx context.Context, word string) (*model.Word, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, word)
	}
	return &model.Word{ID: 1, Word: word}, true, nil
}

// Word delegates to override.
func (s VocabularyFacadeStub) Word(ctx context.Context, word string) (*model.Word, error) {
	if s.WordFn != nil {
		return s.WordFn(ctx, word)
	}
	return &model.Word{ID: 1, Word: word}, nil
}

// UpdateWord delegates to override.
func (s VocabularyFacadeStub) UpdateWord(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return &model.Word{ID: id}, nil
}

// DeleteWord delegates to override.
func (s VocabularyFacadeStub) DeleteWord(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// ReportFacadeStub provides controllable behaviour for report endpoints.
type ReportFacadeStub struct {
	DailyBalanceFn func(context.Context, int64) ([]model.DailyBalance, error)
}

// DailyBalance delegates to override.
func (s ReportFacadeStub) DailyBalance(ctx context.Context, actorID int64) ([]model.DailyBalance, error) {
	if s.DailyBalanceFn != nil {
		return s.DailyBalanceFn(ctx, actorID)
	}
	return []model.DailyBalance{{Day: "2024-01-01", Quantity: 2, Balance: 18.5}}, nil
}

// ComandaFacadeStub aggregates facade dependencies for HTTP layer tests.
type ComandaFacadeStub struct {
	AuthFacadeStub
	MenuFacadeStub
	OrderFacadeStub
	VocabularyFacadeStub
	ReportFacadeStub
}

// LinkCall stores information about LinkSynonyms invocations.
type LinkCall struct {
	A, B string
}

// LinkerFacadeStub mimics worker interactions with the application facade.
type LinkerFacadeStub struct {
	Batches        [][]model.Word
	BatchFn        func(context.Context, int) ([]model.Word, error)
	LexiconFn      func(context.Context, int64) ([]model.Word, error)
	CompareFn      func(context.Context, *model.Word, *model.Word) (bool, error)
	LinkFn         func(context.Context, *model.Word, *model.Word) error
	Links          []LinkCall
	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *LinkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *LinkerFacadeStub) Unlock() { s.mu.Unlock() }

// WordsForLinking returns batches from configured queue.
func (s *LinkerFacadeStub) WordsForLinking(ctx context.Context, limit int) ([]model.Word, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// LexiconExcept returns the configured candidate set.
func (s *LinkerFacadeStub) LexiconExcept(ctx context.Context, id int64) ([]model.Word, error) {
	if s.LexiconFn != nil {
		return s.LexiconFn(ctx, id)
	}
	return nil, nil
}

// CompareDefinitions delegates to override or reports no match.
func (s *LinkerFacadeStub) CompareDefinitions(ctx context.Context, a, b *model.Word) (bool, error) {
	if s.CompareFn != nil {
		return s.CompareFn(ctx, a, b)
	}
	return false, nil
}

// LinkSynonyms records the edge.
func (s *LinkerFacadeStub) LinkSynonyms(ctx context.Context, a, b *model.Word) error {
	if s.LinkFn != nil {
		return s.LinkFn(ctx, a, b)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Links = append(s.Links, LinkCall{A: a.Word, B: b.Word})
	return nil
}
