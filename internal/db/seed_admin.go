package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ironhall/gymhub/internal/config"
	"github.com/ironhall/gymhub/internal/domain/user"
	"github.com/ironhall/gymhub/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, cfg.AdminUsername).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, is_admin, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		`,
		u.ID, u.Username, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt,
	)

	return err
}
