package repository

import (
	"context"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// MenuRepository describes persistence operations with the menu.
type MenuRepository interface {
	// SnapshotPrices returns the current price for every requested item id
	// that exists and is not deleted. Missing ids are absent from the map.
	SnapshotPrices(ctx context.Context, ids []int64) (map[int64]float64, error)

	ListByCategory(ctx context.Context) ([]model.MenuCategory, error)
	CreateItem(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, id int64, update model.MenuItemUpdate) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
	ToggleStock(ctx context.Context, id int64) (*model.MenuItem, error)
}
