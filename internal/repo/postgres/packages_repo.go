package postgres

import (
	"context"
	"errors"

	"github.com/ironhall/gymhub/internal/domain/membership"
	"github.com/ironhall/gymhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PackagesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

// constructor function

func NewPackagesRepo(pool *pgxpool.Pool, prom *observability.Prom) *PackagesRepo {
	return &PackagesRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *PackagesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *PackagesRepo) Create(ctx context.Context, req membership.CreatePackageRequest) (membership.Package, error) {
	p := membership.NewFromCreateRequest(req)

	err := r.observe("packages.create", func() error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO packages (id, name, description, price, duration, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			p.ID, p.Name, p.Description, p.Price, p.Duration, p.CreatedAt, p.UpdatedAt)
		return e
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return membership.Package{}, membership.ErrNameTaken
		}

		return membership.Package{}, err
	}

	return p, nil
}

func (r *PackagesRepo) List(ctx context.Context) ([]membership.Package, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("packages.list", func() error {
		rows, err = r.pool.Query(ctx,
			`SELECT id, name, description, price, duration, created_at, updated_at
			 FROM packages
			 ORDER BY name ASC, id ASC`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]membership.Package, 0)

	for rows.Next() {
		var p membership.Package

		err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Duration, &p.CreatedAt, &p.UpdatedAt)

		if err != nil {
			return nil, err
		}

		output = append(output, p)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *PackagesRepo) GetByID(ctx context.Context, id string) (membership.Package, error) {
	var p membership.Package

	err := r.observe("packages.get_by_id", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT id, name, description, price, duration, created_at, updated_at
			 FROM packages WHERE id = $1`, id).
			Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Duration, &p.CreatedAt, &p.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership.Package{}, membership.ErrNotFound
		}

		return membership.Package{}, err
	}

	return p, nil
}

func (r *PackagesRepo) Update(ctx context.Context, id string, req membership.UpdatePackageRequest) (membership.Package, error) {
	var p membership.Package

	err := r.observe("packages.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE packages
				SET name = $2,
						description = $3,
						price = $4,
						duration = $5,
						updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, description, price, duration, created_at, updated_at`,
			id,
			req.Name,
			req.Description,
			req.Price,
			req.Duration,
		).Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Duration,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return membership.Package{}, membership.ErrNotFound
		}

		if IsUniqueViolation(err) {
			return membership.Package{}, membership.ErrNameTaken
		}

		return membership.Package{}, err
	}

	return p, nil
}

// Delete removes the package row only. Bookings keep the snapshotted name,
// so there is deliberately no cascade here.
func (r *PackagesRepo) Delete(ctx context.Context, id string) error {
	var affected int64

	err := r.observe("packages.delete", func() error {
		tag, e := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
		affected = tag.RowsAffected()
		return e
	})

	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if affected == 0 {
		return membership.ErrNotFound
	}

	return nil
}
