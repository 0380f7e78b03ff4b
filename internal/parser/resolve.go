package parser

import (
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// reconcileTolerance absorbs rounding noise in OCR'd balances. A mismatch of
// 0.02 or more is treated as a failed reconciliation.
var reconcileTolerance = decimal.NewFromFloat(0.01)

// resolveByMarker assigns direction from an explicit (Cr)/(Dr) suffix carried
// in the merged text. No marker means no direction evidence: UNKNOWN.
func resolveByMarker(rows []provisional) []models.Transaction {
	txns := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if len(row.tokens) < 1 {
			continue
		}
		txn := models.Transaction{
			Date:        row.date,
			Description: row.desc,
			Amount:      row.tokens[0].Abs(),
		}
		if len(row.tokens) > 1 {
			txn.Balance = row.tokens[len(row.tokens)-1]
		}
		switch row.marker {
		case markerCredit:
			txn.Type = models.Credit
		case markerDebit:
			txn.Type = models.Debit
		default:
			txn.Type = models.Unknown
		}
		txns = append(txns, txn)
	}
	return txns
}

// resolveByColumns assigns direction from separate withdrawal and deposit
// columns: whichever is non-zero determines the direction and supplies the
// amount. Both zero or both non-zero is contradictory column data, so the
// direction stays UNKNOWN. Rows short of the three column tokens carry no
// usable column evidence and are dropped.
func resolveByColumns(rows []provisional) []models.Transaction {
	txns := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if len(row.tokens) < 3 {
			continue
		}
		withdrawal := row.tokens[0]
		deposit := row.tokens[1]
		txn := models.Transaction{
			Date:        row.date,
			Description: row.desc,
			Balance:     row.tokens[2],
		}
		switch {
		case !withdrawal.IsZero() && deposit.IsZero():
			txn.Type = models.Debit
			txn.Amount = withdrawal.Abs()
		case withdrawal.IsZero() && !deposit.IsZero():
			txn.Type = models.Credit
			txn.Amount = deposit.Abs()
		default:
			txn.Type = models.Unknown
			if !withdrawal.IsZero() {
				txn.Amount = withdrawal.Abs()
			} else {
				txn.Amount = deposit.Abs()
			}
		}
		txns = append(txns, txn)
	}
	return txns
}

// resolveByBalance infers direction from running-balance arithmetic when the
// statement carries no explicit debit/credit marker. For record i the
// previous balance either lost or gained the record's amount; whichever
// expectation lands within tolerance of the observed balance wins. When
// neither matches (OCR noise on an amount), the sign of the balance change
// decides and the transaction is flagged low-confidence.
//
// The first record has no predecessor, so its direction is inferred by
// looking ahead: the transition from record 0's balance to record 1's
// balance is reconciled against record 1's amount. A lone record resolves to
// UNKNOWN.
//
// Correctness depends on rows being in strict document order. Rows without
// both an amount and a balance token carry no reconciliation evidence; they
// are dropped before resolution so the remaining balance chain stays
// contiguous.
func resolveByBalance(rows []provisional) []models.Transaction {
	complete := make([]provisional, 0, len(rows))
	for _, row := range rows {
		if len(row.tokens) >= 2 {
			complete = append(complete, row)
		}
	}
	rows = complete

	txns := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		amount := row.tokens[0]
		balance := row.tokens[1]
		txn := models.Transaction{
			Date:        row.date,
			Description: row.desc,
			Amount:      amount.Abs(),
			Balance:     balance,
		}
		if i == 0 {
			if len(rows) < 2 {
				txn.Type = models.Unknown
			} else {
				next := rows[1]
				txn.Type, txn.LowConfidence = reconcile(balance, next.tokens[0], next.tokens[1])
			}
		} else {
			prevBalance := rows[i-1].tokens[1]
			txn.Type, txn.LowConfidence = reconcile(prevBalance, amount, balance)
		}
		txns = append(txns, txn)
	}
	return txns
}

// reconcile checks which arithmetic outcome (previous balance minus amount,
// or plus amount) matches the observed balance. The boolean result reports
// whether the sign-of-change fallback was used.
func reconcile(prev, amount, observed decimal.Decimal) (models.Direction, bool) {
	amount = amount.Abs()
	if prev.Sub(amount).Sub(observed).Abs().LessThanOrEqual(reconcileTolerance) {
		return models.Debit, false
	}
	if prev.Add(amount).Sub(observed).Abs().LessThanOrEqual(reconcileTolerance) {
		return models.Credit, false
	}
	if observed.LessThan(prev) {
		return models.Debit, true
	}
	return models.Credit, true
}
