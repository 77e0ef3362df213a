package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/domain/model"
)

func (r *adminRepository) Create(ctx context.Context, login, passwordHash string) (*model.Admin, error) {
	const query = `INSERT INTO admins (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	a.Login = login
	a.PasswordHash = passwordHash
	return &a, nil
}

func (r *adminRepository) GetByLogin(ctx context.Context, login string) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE login=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	const query = `SELECT id, login, password_hash, created_at FROM admins WHERE id=$1`
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
