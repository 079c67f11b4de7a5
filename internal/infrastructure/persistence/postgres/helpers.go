package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	pkgpostgres "github.com/crestbank/accrual-service/pkg/postgres"
)

// scannable is satisfied by pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// querier resolves the statement target for ctx: the transaction carried by
// ctx when running inside a loan scope, otherwise the pool.
func querier(ctx context.Context, pool *pgxpool.Pool) pkgpostgres.Querier {
	return pkgpostgres.QuerierFrom(ctx, pool)
}
