package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crestbank/accrual-service/internal/domain/model"
	"github.com/crestbank/accrual-service/internal/domain/service"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
	pkgpostgres "github.com/crestbank/accrual-service/pkg/postgres"
)

// Poster implements port.LedgerPoster against the gl_entries table. Rows are
// append-only: a reversal inserts the mirror pair referencing the same
// accrual voucher and never touches the original rows.
type Poster struct {
	pool     *pgxpool.Pool
	defaults valueobject.PostingDefaults
	logger   *slog.Logger
}

// NewPoster creates a GL poster with the given accounting defaults.
func NewPoster(pool *pgxpool.Pool, defaults valueobject.PostingDefaults, logger *slog.Logger) *Poster {
	return &Poster{pool: pool, defaults: defaults, logger: logger}
}

// Post writes the balanced pair for the accrual. The balance invariant is
// checked before any row is written; a violation surfaces as
// service.ErrLedgerImbalance.
func (p *Poster) Post(ctx context.Context, rec model.InterestAccrual, reverse bool) error {
	entries, err := service.BuildAccrualPostings(rec, p.defaults, reverse)
	if err != nil {
		return fmt.Errorf("build postings for accrual %s: %w", rec.ID(), err)
	}

	q := pkgpostgres.QuerierFrom(ctx, p.pool)
	for _, e := range entries {
		_, err := q.Exec(ctx, `
			INSERT INTO gl_entries (
				id, account, party_type, party, against, debit, credit,
				against_voucher_type, against_voucher, voucher_type, voucher_no,
				cost_center, remarks, company, posting_date, is_reversal
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		`,
			e.ID, e.Account, e.PartyType, e.Party, e.Against, e.Debit, e.Credit,
			e.AgainstVoucherType, e.AgainstVoucher, e.VoucherType, e.VoucherNo,
			e.CostCenter, e.Remarks, e.Company, e.PostingDate, e.IsReversal,
		)
		if err != nil {
			return fmt.Errorf("insert gl entry for accrual %s: %w", rec.ID(), err)
		}
	}

	p.logger.Debug("gl entries posted",
		"accrual_id", rec.ID(),
		"loan_id", rec.LoanID(),
		"amount", rec.InterestAmount(),
		"reverse", reverse,
	)
	return nil
}
