package domain

import (
	"errors"
	"fmt"

	"forelegg/internal/money"

	"github.com/shopspring/decimal"
)

// MaxFineThreshold is the ceiling for a simplified fine (forenklet forelegg).
// Above it the case goes to ordinary criminal procedure.
const MaxFineThreshold money.Kroner = 20000

const ScheduleCitation = "Vareførselsforskriften kap. 12-11"

// FineTier applies its Fine to any excess up to and including UpTo.
type FineTier struct {
	UpTo decimal.Decimal `json:"up_to"`
	Fine money.Kroner    `json:"fine"`
}

// FineSchedule is a piecewise-constant step function ordered by UpTo.
type FineSchedule struct {
	Category Category   `json:"category"`
	Tiers    []FineTier `json:"tiers"`
}

// FineFor returns the fine for an excess amount. Amounts past the last tier
// reuse the last tier's fine; there is no extrapolation.
func (s FineSchedule) FineFor(amount decimal.Decimal) money.Kroner {
	if amount.Sign() <= 0 || len(s.Tiers) == 0 {
		return 0
	}
	for _, t := range s.Tiers {
		if amount.LessThanOrEqual(t.UpTo) {
			return t.Fine
		}
	}
	return s.Tiers[len(s.Tiers)-1].Fine
}

// Cap is the highest fine the schedule can produce.
func (s FineSchedule) Cap() money.Kroner {
	if len(s.Tiers) == 0 {
		return 0
	}
	return s.Tiers[len(s.Tiers)-1].Fine
}

func (s FineSchedule) validate() error {
	if len(s.Tiers) == 0 {
		return errors.New("empty schedule")
	}
	for i, t := range s.Tiers {
		if t.UpTo.Sign() <= 0 {
			return fmt.Errorf("tier %d: bound must be positive", i)
		}
		if i == 0 {
			continue
		}
		prev := s.Tiers[i-1]
		if !t.UpTo.GreaterThan(prev.UpTo) {
			return fmt.Errorf("tier %d: bounds must strictly increase", i)
		}
		if t.Fine < prev.Fine {
			return fmt.Errorf("tier %d: fines must not decrease", i)
		}
	}
	return nil
}

func tiers(pairs ...int64) []FineTier {
	out := make([]FineTier, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, FineTier{UpTo: decimal.NewFromInt(pairs[i]), Fine: money.Kroner(pairs[i+1])})
	}
	return out
}

var schedules = map[Category]FineSchedule{
	Beer:       {Category: Beer, Tiers: tiers(10, 400, 20, 800, 30, 1600, 40, 2500, 50, 3400, 60, 4500, 80, 7000, 100, 9500)},
	Wine:       {Category: Wine, Tiers: tiers(2, 400, 4, 800, 6, 1600, 8, 2500, 10, 3400, 12, 4500, 16, 7000, 20, 9500)},
	Spirits:    {Category: Spirits, Tiers: tiers(1, 400, 2, 800, 3, 1600, 4, 2500, 5, 3400, 6, 4500, 8, 7000, 10, 9500)},
	Cigarettes: {Category: Cigarettes, Tiers: tiers(400, 400, 600, 800, 800, 1600, 1000, 2500, 1200, 3600, 1600, 6100, 2000, 8600)},
	Tobacco:    {Category: Tobacco, Tiers: tiers(500, 400, 750, 800, 1000, 1600, 1250, 2500, 1500, 3600, 2000, 6100)},
}

// ScheduleFor returns a copy of the category's schedule.
func ScheduleFor(c Category) (FineSchedule, error) {
	s, ok := schedules[c]
	if !ok {
		return FineSchedule{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	s.Tiers = append([]FineTier(nil), s.Tiers...)
	return s, nil
}

// FineFor looks up the fine for an excess amount in the category's schedule.
func FineFor(c Category, amount decimal.Decimal) (money.Kroner, error) {
	s, ok := schedules[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return s.FineFor(amount), nil
}
