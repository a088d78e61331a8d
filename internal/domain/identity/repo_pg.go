package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docport/docport/internal/platform/db"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type userRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &userRepoPG{pool: pool} }

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *userRepoPG) Upsert(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	// ON CONFLICT keeps the existing row's id and role
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (id, name, email, role)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, COALESCE(role, '')`,
		u.ID, u.Name, u.Email, u.Role).Scan(&u.ID, &u.Role)
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, name, email, COALESCE(role, '') FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) List(ctx context.Context) ([]*User, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, name, email, COALESCE(role, '') FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *userRepoPG) GrantAdmin(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE users SET role = $2 WHERE id = $1`, id, RoleAdmin)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
