package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/infra"
	"tablebook/internal/infra/repository"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/pgconv"
	"tablebook/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSlotConflict            = errs.New("time slot conflict")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingRepository interface {
	FindByID(ctx context.Context, db repository.DBTX, id int64) (*queries.BookingView, error)
	FindConflict(ctx context.Context, db repository.DBTX, table string, date time.Time, slot booking.Slot, excludeID int64) (bool, error)
	Insert(ctx context.Context, db repository.DBTX, b *booking.Booking) (*queries.BookingView, error)
	Replace(ctx context.Context, db repository.DBTX, id int64, b *booking.Booking) (*queries.BookingView, error)
	Delete(ctx context.Context, db repository.DBTX, id int64) error
}

// Pool is the slice of pgxpool.Pool the commands need; kept narrow so tests
// can stand in for it.
type Pool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type BookingCommands interface {
	Create(ctx context.Context, b *booking.Booking) (*queries.BookingView, error)
	Update(ctx context.Context, id int64, b *booking.Booking) (*queries.BookingView, error)
	Delete(ctx context.Context, id int64) error
}

type bookingCommandsImpl struct {
	repo BookingRepository
	db   Pool
}

func NewBookingCommands(repo BookingRepository, db Pool) BookingCommands {
	return &bookingCommandsImpl{
		repo: repo,
		db:   db,
	}
}

// Create persists a new booking unless another row already holds an
// overlapping slot on the same table and date. The conflict check and the
// insert share one serializable transaction, so two concurrent requests for
// the same slot cannot both pass the check: the loser aborts with a
// serialization failure, which surfaces as the same conflict error.
func (c *bookingCommandsImpl) Create(ctx context.Context, b *booking.Booking) (*queries.BookingView, error) {
	var view *queries.BookingView

	err := c.inSerializableTx(ctx, func(tx pgx.Tx) error {
		conflict, err := c.repo.FindConflict(ctx, tx, b.Table(), b.Date(), b.Slot(), 0)
		if err != nil {
			return markTxErr(err)
		}
		if conflict {
			return ErrSlotConflict
		}

		view, err = c.repo.Insert(ctx, tx, b)
		if err != nil {
			return markTxErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Update replaces every field except id. The target row is excluded from the
// conflict check so a booking never conflicts with itself.
func (c *bookingCommandsImpl) Update(ctx context.Context, id int64, b *booking.Booking) (*queries.BookingView, error) {
	var view *queries.BookingView

	err := c.inSerializableTx(ctx, func(tx pgx.Tx) error {
		if _, err := c.repo.FindByID(ctx, tx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return markTxErr(err)
		}

		conflict, err := c.repo.FindConflict(ctx, tx, b.Table(), b.Date(), b.Slot(), id)
		if err != nil {
			return markTxErr(err)
		}
		if conflict {
			return ErrSlotConflict
		}

		view, err = c.repo.Replace(ctx, tx, id, b)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return markTxErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Delete removes the row for good. No tombstone, no history.
func (c *bookingCommandsImpl) Delete(ctx context.Context, id int64) error {
	tx, err := c.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	if err := c.repo.Delete(ctx, tx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) inSerializableTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return markTxErr(err)
	}
	return nil
}

// markTxErr classifies an error raised inside a serializable transaction.
// Postgres may abort the losing transaction at the conflicting statement
// rather than at commit, so a serialization failure at any point means the
// slot was contended, not that the database broke.
func markTxErr(err error) error {
	if pgconv.IsSerializationFailure(err) {
		return errs.Mark(err, ErrSlotConflict)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("failed to rollback transaction", "error", err)
	}
}
