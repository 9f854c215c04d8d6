package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kroner represents a fine in whole NOK (no floats, no øre).
type Kroner int64

func (k Kroner) String() string {
	return fmt.Sprintf("%d", int64(k))
}

var nb = message.NewPrinter(language.Norwegian)

// Format renders the amount the way a Norwegian receipt does, e.g. "1 600 kr".
func (k Kroner) Format() string {
	return nb.Sprintf("%d kr", int64(k))
}

// PerHead splits k evenly over n people, rounded to the øre with halves
// going away from zero. n must be positive.
func (k Kroner) PerHead(n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(k)).DivRound(decimal.NewFromInt(int64(n)), 2)
}

// FormatOre renders an amount with øre, e.g. "533,33 kr".
func FormatOre(amount decimal.Decimal) string {
	return nb.Sprintf("%.2f kr", amount.Round(2).InexactFloat64())
}
