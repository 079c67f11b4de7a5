package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputeDemandInterest calculates pro-rata interest on a demand loan's
// outstanding principal over elapsedDays.
//
//	perDay   = outstanding * rate% / 100 / daysInYear(postingDate.year)
//	interest = perDay * elapsedDays
//
// The divisor follows the posting date's year, so accrual windows falling in
// a leap year use 366. The result is unrounded; the accrual record rounds to
// 2 decimals when it is created.
func ComputeDemandInterest(
	outstandingPrincipal, annualRatePercent decimal.Decimal,
	postingDate time.Time,
	elapsedDays int,
) decimal.Decimal {
	divisor := decimal.NewFromInt(int64(DaysInYear(postingDate.Year()) * 100))
	perDay := outstandingPrincipal.Mul(annualRatePercent).Div(divisor)
	return perDay.Mul(decimal.NewFromInt(int64(elapsedDays)))
}
