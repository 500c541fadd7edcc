package components

import (
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		NewTxBeginner,
		commands.NewBookingCommands,
		queries.NewBookingQueries,
	),
)

func NewTxBeginner(pool *pgxpool.Pool) commands.Pool {
	return pool
}
