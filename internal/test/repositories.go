package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Add seeds a user, assigning an identifier when missing.
func (s *UserRepositoryStub) Add(user *model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.ByEmail[user.Email] = user
	s.ByID[user.ID] = user
	return user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	return s.Add(&stored), nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// IsBlocked reports the stored blocked flag.
func (s *UserRepositoryStub) IsBlocked(ctx context.Context, id int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	return user.Blocked, nil
}

// SetBlocked flips the stored blocked flag.
func (s *UserRepositoryStub) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Blocked = blocked
	return nil
}

// MenuRepositoryStub allows tests to customize menu behaviour.
type MenuRepositoryStub struct {
	Prices           map[int64]float64
	SnapshotPricesFn func(context.Context, []int64) (map[int64]float64, error)
	ListFn           func(context.Context) ([]model.MenuCategory, error)
	CreateItemFn     func(context.Context, *model.MenuItem) (*model.MenuItem, error)
	UpdateItemFn     func(context.Context, int64, model.MenuItemUpdate) (*model.MenuItem, error)
	DeleteItemFn     func(context.Context, int64) error
	ToggleStockFn    func(context.Context, int64) (*model.MenuItem, error)
	SnapshotCalls    int
}

// SnapshotPrices returns configured prices for the requested ids.
func (s *MenuRepositoryStub) SnapshotPrices(ctx context.Context, ids []int64) (map[int64]float64, error) {
	s.SnapshotCalls++
	if s.SnapshotPricesFn != nil {
		return s.SnapshotPricesFn(ctx, ids)
	}
	out := make(map[int64]float64, len(ids))
	for _, id := range ids {
		if price, ok := s.Prices[id]; ok {
			out[id] = price
		}
	}
	return out, nil
}

// ListByCategory returns configured categories.
func (s *MenuRepositoryStub) ListByCategory(ctx context.Context) ([]model.MenuCategory, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

// CreateItem delegates to override or echoes the item with an id.
func (s *MenuRepositoryStub) CreateItem(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	if s.CreateItemFn != nil {
		return s.CreateItemFn(ctx, item)
	}
	stored := *item
	stored.ID = 1
	return &stored, nil
}

// UpdateItem delegates to override.
func (s *MenuRepositoryStub) UpdateItem(ctx context.Context, id int64, update model.MenuItemUpdate) (*model.MenuItem, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, id, update)
	}
	return &model.MenuItem{ID: id}, nil
}

// DeleteItem delegates to override.
func (s *MenuRepositoryStub) DeleteItem(ctx context.Context, id int64) error {
	if s.DeleteItemFn != nil {
		return s.DeleteItemFn(ctx, id)
	}
	return nil
}

// ToggleStock delegates to override.
func (s *MenuRepositoryStub) ToggleStock(ctx context.Context, id int64) (*model.MenuItem, error) {
	if s.ToggleStockFn != nil {
		return s.ToggleStockFn(ctx, id)
	}
	return &model.MenuItem{ID: id, InStock: true}, nil
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, model.OrderDraft) (*model.Order, error)
	GetByPublicIDFn func(context.Context, string) (*model.Order, error)
	ListForTodayFn  func(context.Context, model.OrderStatus, time.Time) ([]model.Order, error)
	ListActiveFn    func(context.Context, int64, time.Time) ([]model.Order, error)
	UpdateStatusFn  func(context.Context, string, model.OrderStatus) (*model.Order, error)
	ReplaceFn       func(context.Context, string, model.OrderDraft) (*model.Order, error)
	CreatedDrafts   []model.OrderDraft
	NextRawCounter  int64
}

// Create records the draft and simulates the atomic persistence path.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	s.CreatedDrafts = append(s.CreatedDrafts, draft)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	s.NextRawCounter++
	return &model.Order{
		ID:            s.NextRawCounter,
		PublicID:      "00000000-0000-0000-0000-000000000001",
		Local:         draft.Local,
		DisplayNumber: model.DisplayNumber(s.NextRawCounter),
		ScheduledAt:   draft.ScheduledAt,
		Total:         draft.Total,
		Status:        model.OrderStatusPending,
		Notes:         draft.Notes,
		UserID:        draft.UserID,
		Items:         draft.Items,
	}, nil
}

// GetByPublicID delegates to override or returns not found.
func (s *OrderRepositoryStub) GetByPublicID(ctx context.Context, publicID string) (*model.Order, error) {
	if s.GetByPublicIDFn != nil {
		return s.GetByPublicIDFn(ctx, publicID)
	}
	return nil, domainErrors.ErrNotFound
}

// ListForToday delegates to override.
func (s *OrderRepositoryStub) ListForToday(ctx context.Context, status model.OrderStatus, now time.Time) ([]model.Order, error) {
	if s.ListForTodayFn != nil {
		return s.ListForTodayFn(ctx, status, now)
	}
	return nil, nil
}

// ListActiveByUser delegates to override.
func (s *OrderRepositoryStub) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]model.Order, error) {
	if s.ListActiveFn != nil {
		return s.ListActiveFn(ctx, userID, now)
	}
	return nil, nil
}

// UpdateStatus delegates to override.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, publicID string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, publicID, status)
	}
	return &model.Order{PublicID: publicID, Status: status}, nil
}

// Replace delegates to override.
func (s *OrderRepositoryStub) Replace(ctx context.Context, publicID string, draft model.OrderDraft) (*model.Order, error) {
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, publicID, draft)
	}
	return &model.Order{PublicID: publicID, Total: draft.Total, Items: draft.Items}, nil
}

// WordRepositoryStub stores words in-memory for tests. Safe for concurrent
// use so lookup dedup tests can hammer it from several goroutines.
type WordRepositoryStub struct {
	ByWord  map[string]*model.Word
	ByID    map[int64]*model.Word
	Next    int64
	Err     error
	ListFn  func(context.Context, model.WordSort, string) ([]model.Word, error)
	BatchFn func(context.Context, int) ([]model.Word, error)
	Links   [][2]int64
	Creates int

	mu sync.Mutex
}

// NewWordRepositoryStub constructs stub repository with initialized maps.
func NewWordRepositoryStub() *WordRepositoryStub {
	return &WordRepositoryStub{
		ByWord: make(map[string]*model.Word),
		ByID:   make(map[int64]*model.Word),
		Next:   1,
	}
}

// Add seeds a word, assigning an identifier when missing.
func (s *WordRepositoryStub) Add(word *model.Word) *model.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(word)
}

func (s *WordRepositoryStub) add(word *model.Word) *model.Word {
	if word.ID == 0 {
		word.ID = s.Next
		s.Next++
	} else if word.ID >= s.Next {
		s.Next = word.ID + 1
	}
	s.ByWord[word.Word] = word
	s.ByID[word.ID] = word
	return word
}

// Create stores a word unless it already exists.
func (s *WordRepositoryStub) Create(ctx context.Context, word *model.Word) (*model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Creates++
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByWord[word.Word]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *word
	return s.add(&stored), nil
}

// GetByWord fetches a word by spelling.
func (s *WordRepositoryStub) GetByWord(ctx context.Context, word string) (*model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if w, ok := s.ByWord[word]; ok {
		return w, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a word by identifier.
func (s *WordRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if w, ok := s.ByID[id]; ok {
		return w, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List delegates to override or returns every stored word.
func (s *WordRepositoryStub) List(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, sort, synonymFilter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Word, 0, len(s.ByID))
	for _, w := range s.ByID {
		out = append(out, *w)
	}
	return out, nil
}

// Update applies the partial update in place.
func (s *WordRepositoryStub) Update(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.Type != nil {
		w.Type = *update.Type
	}
	if update.Definition != nil {
		w.Definition = *update.Definition
	}
	return w, nil
}

// Delete removes the word.
func (s *WordRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByID, id)
	delete(s.ByWord, w.Word)
	return nil
}

// LinkSymmetric records the undirected edge in both stored words.
func (s *WordRepositoryStub) LinkSymmetric(ctx context.Context, a, b *model.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Links = append(s.Links, [2]int64{a.ID, b.ID})
	if stored, ok := s.ByID[a.ID]; ok {
		stored.Synonyms = append(stored.Synonyms, b.Word)
	}
	if stored, ok := s.ByID[b.ID]; ok {
		stored.Synonyms = append(stored.Synonyms, a.Word)
	}
	return nil
}

// SelectBatchForLinking delegates to override or claims unlinked words.
func (s *WordRepositoryStub) SelectBatchForLinking(ctx context.Context, limit int) ([]model.Word, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Word, 0, limit)
	for _, w := range s.ByID {
		if w.Linked || len(out) == limit {
			continue
		}
		w.Linked = true
		out = append(out, *w)
	}
	return out, nil
}

// AllExcept returns every stored word but the given one.
func (s *WordRepositoryStub) AllExcept(ctx context.Context, id int64) ([]model.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Word, 0, len(s.ByID))
	for _, w := range s.ByID {
		if w.ID == id {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

// ReportRepositoryStub returns configured aggregation rows.
type ReportRepositoryStub struct {
	Rows []model.DailyBalance
	Err  error
	From time.Time
	To   time.Time
}

// DailyBalance records the window and returns configured rows.
func (s *ReportRepositoryStub) DailyBalance(ctx context.Context, from, to time.Time) ([]model.DailyBalance, error) {
	s.From, s.To = from, to
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rows, nil
}
