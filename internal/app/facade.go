package app

import (
	"context"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/usecase"
)

// LanguageModel judges whether two definitions describe synonymous words.
type LanguageModel interface {
	AreSynonyms(ctx context.Context, wordA, defA, wordB, defB string) (bool, error)
}

// ComandaFacade is the single entry point the HTTP layer and the background
// linker talk to.
type ComandaFacade struct {
	auth       *usecase.AuthUseCase
	menu       *usecase.MenuUseCase
	orders     *usecase.OrderUseCase
	vocabulary *usecase.VocabularyUseCase
	reports    *usecase.ReportUseCase
	llm        LanguageModel
}

func NewComandaFacade(
	auth *usecase.AuthUseCase,
	menu *usecase.MenuUseCase,
	orders *usecase.OrderUseCase,
	vocabulary *usecase.VocabularyUseCase,
	reports *usecase.ReportUseCase,
	llm LanguageModel,
) *ComandaFacade {
	return &ComandaFacade{
		auth:       auth,
		menu:       menu,
		orders:     orders,
		vocabulary: vocabulary,
		reports:    reports,
		llm:        llm,
	}
}

func (f *ComandaFacade) Register(ctx context.Context, email, password, name, surname, phone string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, password, name, surname, phone)
}

func (f *ComandaFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *ComandaFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ComandaFacade) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *ComandaFacade) BlockUser(ctx context.Context, actorID, targetID int64) error {
	return f.auth.BlockUser(ctx, actorID, targetID)
}

func (f *ComandaFacade) Menu(ctx context.Context) ([]model.MenuCategory, error) {
	return f.menu.List(ctx)
}

func (f *ComandaFacade) CreateMenuItem(ctx context.Context, actorID int64, item model.MenuItem) (*model.MenuItem, error) {
	return f.menu.CreateItem(ctx, actorID, item)
}

func (f *ComandaFacade) UpdateMenuItem(ctx context.Context, actorID, id int64, update model.MenuItemUpdate) (*model.MenuItem, error) {
	return f.menu.UpdateItem(ctx, actorID, id, update)
}

func (f *ComandaFacade) DeleteMenuItem(ctx context.Context, actorID, id int64) error {
	return f.menu.DeleteItem(ctx, actorID, id)
}

func (f *ComandaFacade) ToggleMenuItemStock(ctx context.Context, actorID, id int64) (*model.MenuItem, error) {
	return f.menu.ToggleStock(ctx, actorID, id)
}

func (f *ComandaFacade) SubmitOrder(ctx context.Context, sub model.OrderSubmission) (*model.Order, error) {
	return f.orders.Submit(ctx, sub)
}

func (f *ComandaFacade) Order(ctx context.Context, publicID string) (*model.Order, error) {
	return f.orders.GetByPublicID(ctx, publicID)
}

func (f *ComandaFacade) OrdersForToday(ctx context.Context, actorID int64, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListForToday(ctx, actorID, status)
}

func (f *ComandaFacade) ActiveOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListActive(ctx, userID)
}

func (f *ComandaFacade) ChangeOrderStatus(ctx context.Context, actorID int64, publicID string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.ChangeStatus(ctx, actorID, publicID, status)
}

func (f *ComandaFacade) UpdateOrder(ctx context.Context, actorID int64, publicID string, items []model.OrderItemRequest, scheduledAt *time.Time, notes *string) (*model.Order, error) {
	return f.orders.Update(ctx, actorID, publicID, items, scheduledAt, notes)
}

func (f *ComandaFacade) DailyBalance(ctx context.Context, actorID int64) ([]model.DailyBalance, error) {
	return f.reports.DailyBalance(ctx, actorID)
}

func (f *ComandaFacade) Words(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error) {
	return f.vocabulary.List(ctx, sort, synonymFilter)
}

func (f *ComandaFacade) CreateWord(ctx context.Context, word string) (*model.Word, bool, error) {
	return f.vocabulary.Create(ctx, word)
}

func (f *ComandaFacade) Word(ctx context.Context, word string) (*model.Word, error) {
	return f.vocabulary.Get(ctx, word)
}

func (f *ComandaFacade) UpdateWord(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error) {
	return f.vocabulary.Update(ctx, id, update)
}

func (f *ComandaFacade) DeleteWord(ctx context.Context, id int64) error {
	return f.vocabulary.Delete(ctx, id)
}

func (f *ComandaFacade) WordsForLinking(ctx context.Context, limit int) ([]model.Word, error) {
	return f.vocabulary.WordsForLinking(ctx, limit)
}

func (f *ComandaFacade) LexiconExcept(ctx context.Context, id int64) ([]model.Word, error) {
	return f.vocabulary.LexiconExcept(ctx, id)
}

func (f *ComandaFacade) CompareDefinitions(ctx context.Context, a, b *model.Word) (bool, error) {
	return f.llm.AreSynonyms(ctx, a.Word, a.Definition, b.Word, b.Definition)
}

func (f *ComandaFacade) LinkSynonyms(ctx context.Context, a, b *model.Word) error {
	return f.vocabulary.LinkSynonyms(ctx, a, b)
}
