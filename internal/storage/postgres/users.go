package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
)

const uniqueViolation = "23505"

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, name, surname, phone, role)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	created := *user
	err := r.storage.pool.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Surname, user.Phone, user.Role,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, name, surname, phone, role, blocked, created_at
            FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, name, surname, phone, role, blocked, created_at
            FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) IsBlocked(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT blocked FROM users WHERE id=$1`
	var blocked bool
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&blocked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domainErrors.ErrNotFound
		}
		return false, err
	}
	return blocked, nil
}

func (r *userRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	const query = `UPDATE users SET blocked=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, blocked, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Surname, &u.Phone, &u.Role, &u.Blocked, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
