package postgres

import (
	"context"
	"time"

	"errors"

	"github.com/google/uuid"
	"github.com/ironhall/gymhub/internal/domain/user"
	"github.com/ironhall/gymhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) Create(ctx context.Context, username, passwordHash string, isAdmin bool) (user.User, error) {
	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.observe("users.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO users (id, username, password_hash, is_admin, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			u.ID, u.Username, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt,
		)
		return e
	})

	if err != nil {
		// the unique index turns a concurrent duplicate registration into a
		// deterministic failure instead of two rows
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrUsernameTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_username", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, username, password_hash, is_admin, created_at, updated_at
			 FROM users
			 WHERE username = $1`,
			username,
		).Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, username, password_hash, is_admin, created_at, updated_at
			 FROM users
			 WHERE id = $1`,
			id,
		).Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// UpdateProfile changes the username and, when passwordHash is non-nil, the
// stored credential.
func (r *UsersRepo) UpdateProfile(ctx context.Context, id, username string, passwordHash *string) (user.User, error) {
	var u user.User

	err := r.observe("users.update_profile", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE users
				SET username = $2,
						password_hash = COALESCE($3, password_hash),
						updated_at = NOW()
			WHERE id = $1
			RETURNING id, username, password_hash, is_admin, created_at, updated_at`,
			id,
			username,
			passwordHash,
		).Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		if IsUniqueViolation(err) {
			return user.User{}, user.ErrUsernameTaken
		}

		return user.User{}, err
	}

	return u, nil
}
