package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a single general-ledger row. Accrual submission emits a
// balanced debit/credit pair; cancellation emits the mirror pair referencing
// the same accrual. Rows are append-only.
type LedgerEntry struct {
	ID                 string
	Account            string
	PartyType          string
	Party              string
	Against            string
	Debit              decimal.Decimal
	Credit             decimal.Decimal
	AgainstVoucherType string
	AgainstVoucher     string
	VoucherType        string
	VoucherNo          string
	CostCenter         string
	Remarks            string
	Company            string
	PostingDate        time.Time
	IsReversal         bool
}
