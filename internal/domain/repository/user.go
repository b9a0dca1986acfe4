package repository

import (
	"context"

	"github.com/anrodrig/comanda/internal/domain/model"
)

// UserRepository describes persistence operations with users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	IsBlocked(ctx context.Context, id int64) (bool, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}
