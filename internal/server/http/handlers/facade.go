package handlers

import (
	"context"
	"time"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, name, surname, phone string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	BlockUser(ctx context.Context, actorID, targetID int64) error
}

// MenuFacade encapsulates menu operations exposed via HTTP.
type MenuFacade interface {
	Menu(ctx context.Context) ([]model.MenuCategory, error)
	CreateMenuItem(ctx context.Context, actorID int64, item model.MenuItem) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, actorID, id int64, update model.MenuItemUpdate) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, actorID, id int64) error
	ToggleMenuItemStock(ctx context.Context, actorID, id int64) (*model.MenuItem, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, sub model.OrderSubmission) (*model.Order, error)
	Order(ctx context.Context, publicID string) (*model.Order, error)
	ActiveOrders(ctx context.Context, userID int64) ([]model.Order, error)
	OrdersForToday(ctx context.Context, actorID int64, status model.OrderStatus) ([]model.Order, error)
	ChangeOrderStatus(ctx context.Context, actorID int64, publicID string, status model.OrderStatus) (*model.Order, error)
	UpdateOrder(ctx context.Context, actorID int64, publicID string, items []model.OrderItemRequest, scheduledAt *time.Time, notes *string) (*model.Order, error)
}

// VocabularyFacade encapsulates lexicon operations exposed via HTTP.
type VocabularyFacade interface {
	Words(ctx context.Context, sort model.WordSort, synonymFilter string) ([]model.Word, error)
	CreateWord(ctx context.Context, word string) (*model.Word, bool, error)
	Word(ctx context.Context, word string) (*model.Word, error)
	UpdateWord(ctx context.Context, id int64, update model.WordUpdate) (*model.Word, error)
	DeleteWord(ctx context.Context, id int64) error
}

// ReportFacade provides read-only aggregations.
type ReportFacade interface {
	DailyBalance(ctx context.Context, actorID int64) ([]model.DailyBalance, error)
}

// ComandaFacade aggregates the full set of operations used across handlers.
type ComandaFacade interface {
	AuthFacade
	MenuFacade
	OrderFacade
	VocabularyFacade
	ReportFacade
}
