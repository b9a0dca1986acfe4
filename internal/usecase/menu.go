package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	"github.com/anrodrig/comanda/internal/domain/repository"
)

// MenuUseCase manages the public menu.
type MenuUseCase struct {
	menu  repository.MenuRepository
	users repository.UserRepository
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository, users repository.UserRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu, users: users}
}

// List returns the menu grouped by category.
func (u *MenuUseCase) List(ctx context.Context) ([]model.MenuCategory, error) {
	return u.menu.ListByCategory(ctx)
}

// CreateItem adds a dish to the menu. Admin only.
func (u *MenuUseCase) CreateItem(ctx context.Context, actorID int64, item model.MenuItem) (*model.MenuItem, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Price < 0 {
		return nil, domainErrors.ErrUnknownMenuItem
	}
	item.InStock = true
	return u.menu.CreateItem(ctx, &item)
}

// UpdateItem applies a partial update to a dish. Admin only.
func (u *MenuUseCase) UpdateItem(ctx context.Context, actorID, id int64, update model.MenuItemUpdate) (*model.MenuItem, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return u.menu.UpdateItem(ctx, id, update)
}

// DeleteItem soft-deletes a dish so historical orders keep referencing it. Admin only.
func (u *MenuUseCase) DeleteItem(ctx context.Context, actorID, id int64) error {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return u.menu.DeleteItem(ctx, id)
}

// ToggleStock flips a dish's availability. Admin only.
func (u *MenuUseCase) ToggleStock(ctx context.Context, actorID, id int64) (*model.MenuItem, error) {
	if err := u.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return u.menu.ToggleStock(ctx, id)
}

func (u *MenuUseCase) requireAdmin(ctx context.Context, actorID int64) error {
	actor, err := u.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return domainErrors.ErrNotAdmin
	}
	return nil
}
