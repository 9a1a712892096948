package accounting

import (
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumSides totals the debit and credit lines separately.
func SumSides(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		switch l.Side {
		case domain.Debit:
			debits = debits.Add(l.Amount)
		case domain.Credit:
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}

// SplitBalance nets debit and credit totals into a single trial balance column.
// The column follows the sign of the net, not the normal side, so a debit heavy
// liability lands in the debit column and is reported as anomalous.
func SplitBalance(totalDebits, totalCredits decimal.Decimal, normal domain.Side) (debitBalance, creditBalance decimal.Decimal, anomalous bool) {
	net := totalDebits.Sub(totalCredits)
	switch {
	case net.IsPositive():
		return net, decimal.Zero, normal == domain.Credit
	case net.IsNegative():
		return decimal.Zero, net.Neg(), normal == domain.Debit
	default:
		return decimal.Zero, decimal.Zero, false
	}
}
