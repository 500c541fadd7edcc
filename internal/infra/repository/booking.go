package repository

import (
	"context"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx alike, so every query can run
// either standalone or inside a caller-owned transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const bookingColumns = `id, table_name, booked_on, slot_start, slot_end, name, phone, req_amount, from_who, amount_fact, comment, status`

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindByDate lists every booking on the date across all tables, in id order.
func (r *BookingRepository) FindByDate(ctx context.Context, date time.Time) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booked_on = $1 ORDER BY id`,
		pgconv.DateToPgtype(date),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by date", err)
	}
	defer rows.Close()

	result := []*queries.BookingView{}
	for rows.Next() {
		view, scanErr := scanBookingView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return result, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, db DBTX, id int64) (*queries.BookingView, error) {
	row := db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return view, nil
}

// FindConflict runs the half-open overlap predicate: another row on the same
// table and date with slot_start < end AND slot_end > start. excludeID = 0
// means no exclusion; updates pass their own id so a booking does not block
// itself.
func (r *BookingRepository) FindConflict(ctx context.Context, db DBTX, table string, date time.Time, slot booking.Slot, excludeID int64) (bool, error) {
	var conflict bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(
            SELECT 1 FROM bookings
            WHERE table_name = $1
              AND booked_on = $2
              AND slot_start < $3
              AND slot_end > $4
              AND ($5 = 0 OR id <> $5)
        )`,
		table, pgconv.DateToPgtype(date), slot.End(), slot.Start(), excludeID,
	).Scan(&conflict)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot conflict", err)
	}

	return conflict, nil
}

func (r *BookingRepository) Insert(ctx context.Context, db DBTX, b *booking.Booking) (*queries.BookingView, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO bookings (table_name, booked_on, slot_start, slot_end, name, phone, req_amount, from_who, amount_fact, comment, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING `+bookingColumns,
		b.Table(), pgconv.DateToPgtype(b.Date()), b.Slot().Start(), b.Slot().End(),
		b.Name(), b.Phone(), b.ReqAmount(), b.FromWho(), b.AmountFact(), b.Comment(), b.Status(),
	)

	view, err := scanBookingView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to insert booking", err)
	}

	return view, nil
}

// Replace overwrites every column except id. Full replace, not a patch.
func (r *BookingRepository) Replace(ctx context.Context, db DBTX, id int64, b *booking.Booking) (*queries.BookingView, error) {
	row := db.QueryRow(ctx,
		`UPDATE bookings
         SET table_name = $1, booked_on = $2, slot_start = $3, slot_end = $4,
             name = $5, phone = $6, req_amount = $7, from_who = $8,
             amount_fact = $9, comment = $10, status = $11
         WHERE id = $12
         RETURNING `+bookingColumns,
		b.Table(), pgconv.DateToPgtype(b.Date()), b.Slot().Start(), b.Slot().End(),
		b.Name(), b.Phone(), b.ReqAmount(), b.FromWho(), b.AmountFact(), b.Comment(), b.Status(),
		id,
	)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to replace booking", err)
	}

	return view, nil
}

func (r *BookingRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	tag, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	return nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		view     queries.BookingView
		bookedOn pgtype.Date
	)

	err := row.Scan(
		&view.ID, &view.Table, &bookedOn, &view.Start, &view.End,
		&view.Name, &view.Phone, &view.ReqAmount, &view.FromWho,
		&view.AmountFact, &view.Comment, &view.Status,
	)
	if err != nil {
		return nil, err
	}

	view.Date = pgconv.DateFromPgtype(bookedOn)
	return &view, nil
}
