package postgres

import (
	"context"
	"errors"

	"github.com/ironhall/gymhub/internal/domain/booking"
	"github.com/ironhall/gymhub/internal/domain/membership"
	"github.com/ironhall/gymhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewBookingsRepo(pool *pgxpool.Pool, prom *observability.Prom) *BookingsRepo {
	return &BookingsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *BookingsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create resolves the package and snapshots its current name into a new
// booking row, both inside one transaction. The snapshot is read-at-creation
// only: a package deleted right after the commit does not roll the booking
// back.
func (repo *BookingsRepo) Create(ctx context.Context, req booking.CreateBookingRequest) (b booking.Booking, err error) {
	tx, err := repo.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// 1) resolve the package name at call time
	var packageName string

	err = repo.observe("bookings.create.resolve_package", func() error {
		return tx.QueryRow(ctx, `SELECT name FROM packages WHERE id = $1`, req.PackageID).Scan(&packageName)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = membership.ErrNotFound
		}

		return
	}

	// 2) append the ledger row
	b = booking.New(req.UserID, packageName)

	err = repo.observe("bookings.create.insert", func() error {
		_, e := tx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, package_name, booking_date)
		VALUES ($1,$2,$3,$4)
	`, b.ID, b.UserID, b.PackageName, b.BookingDate)
		return e
	})

	if err != nil {
		return
	}

	err = tx.Commit(ctx)

	if err != nil {
		return
	}

	return
}

func (repo *BookingsRepo) ListForUser(ctx context.Context, userID string) (bookings []booking.Booking, err error) {
	var rows pgx.Rows

	err = repo.observe("bookings.list_for_user", func() error {
		rows, err = repo.pool.Query(ctx,
			`
	SELECT id, user_id, package_name, booking_date
	FROM bookings
	WHERE user_id = $1
	ORDER BY booking_date ASC, id ASC
	`,
			userID,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	bookings = make([]booking.Booking, 0)

	for rows.Next() {
		var b booking.Booking

		e := rows.Scan(&b.ID, &b.UserID, &b.PackageName, &b.BookingDate)

		if e != nil {
			err = e
			return
		}
		bookings = append(bookings, b)
	}

	e := rows.Err()

	if e != nil {
		if repo.prom != nil {
			repo.prom.DbErrorsTotal.WithLabelValues("bookings.list_for_user", "rows_err").Inc()
		}
		err = e
		return
	}

	return
}

func (repo *BookingsRepo) ListAll(ctx context.Context) (bookings []booking.Booking, err error) {
	var rows pgx.Rows

	err = repo.observe("bookings.list_all", func() error {
		rows, err = repo.pool.Query(ctx,
			`
	SELECT id, user_id, package_name, booking_date
	FROM bookings
	ORDER BY booking_date ASC, id ASC
	`,
		)
		return err
	})

	if err != nil {
		return
	}

	defer rows.Close()

	bookings = make([]booking.Booking, 0)

	for rows.Next() {
		var b booking.Booking

		e := rows.Scan(&b.ID, &b.UserID, &b.PackageName, &b.BookingDate)

		if e != nil {
			err = e
			return
		}
		bookings = append(bookings, b)
	}

	e := rows.Err()

	if e != nil {
		if repo.prom != nil {
			repo.prom.DbErrorsTotal.WithLabelValues("bookings.list_all", "rows_err").Inc()
		}
		err = e
		return
	}

	return
}
