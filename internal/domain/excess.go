package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExcessResult is the quantity above the combined duty-free allowance.
type ExcessResult struct {
	Category Category        `json:"category"`
	Declared decimal.Decimal `json:"declared"`
	// QuotaUsed is the combined allowance: quota per traveler times travelers.
	QuotaUsed decimal.Decimal `json:"quota_used"`
	Excess    decimal.Decimal `json:"excess"`
	Unit      Unit            `json:"unit"`
	Citation  string          `json:"citation"`
}

// Excess = max(0, declared - quota*travelers). The quota scales linearly.
func Excess(c Category, declared decimal.Decimal, travelers int) (ExcessResult, error) {
	if travelers <= 0 {
		return ExcessResult{}, fmt.Errorf("%w: got %d", ErrInvalidTravelerCount, travelers)
	}
	if declared.IsNegative() {
		return ExcessResult{}, fmt.Errorf("%w: negative amount %s for %s", ErrInvalidDeclaration, declared, c)
	}
	q, err := LookupQuota(c)
	if err != nil {
		return ExcessResult{}, err
	}

	allowance := q.QuotaPerTraveler.Mul(decimal.NewFromInt(int64(travelers)))
	return ExcessResult{
		Category:  c,
		Declared:  declared,
		QuotaUsed: allowance,
		Excess:    decimal.Max(decimal.Zero, declared.Sub(allowance)),
		Unit:      q.Unit,
		Citation:  q.Citation,
	}, nil
}
