package domain

import (
	"fmt"
	"math"

	"forelegg/internal/money"

	"github.com/shopspring/decimal"
)

type Strategy string

const (
	// StrategyAuto searches exhaustively while the search space is within
	// ExhaustiveLimit and falls back to StrategyDynamic beyond it.
	StrategyAuto       Strategy = "auto"
	StrategyExhaustive Strategy = "exhaustive"
	StrategyDynamic    Strategy = "dynamic"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAuto, StrategyExhaustive, StrategyDynamic:
		return Strategy(s), nil
	case "":
		return StrategyAuto, nil
	}
	return "", fmt.Errorf("unknown optimizer strategy %q", s)
}

const DefaultExhaustiveLimit = 200_000

// DistributionResult is the cheapest way to hand an excess out to travelers.
type DistributionResult struct {
	TotalFine money.Kroner      `json:"total_fine"`
	Shares    []decimal.Decimal `json:"shares"`
	Fines     []money.Kroner    `json:"fines"`
	// Steps is ceil(excess / step), the number of indivisible units split.
	Steps    decimal.Decimal `json:"steps"`
	Strategy Strategy        `json:"strategy"`
}

// Optimizer splits an excess among travelers so the summed per-traveler fine
// is minimal. Both strategies return the same winner: among equal totals the
// lexicographically smallest share sequence, which is the first one an
// in-order enumeration meets.
type Optimizer struct {
	Strategy        Strategy
	ExhaustiveLimit uint64
}

func DefaultOptimizer() Optimizer {
	return Optimizer{
		Strategy:        StrategyAuto,
		ExhaustiveLimit: DefaultExhaustiveLimit,
	}
}

// Optimize runs to completion; it has no cancellation point.
func (o Optimizer) Optimize(c Category, excess decimal.Decimal, travelers int) (DistributionResult, error) {
	if travelers <= 0 {
		return DistributionResult{}, fmt.Errorf("%w: got %d", ErrInvalidTravelerCount, travelers)
	}
	q, err := LookupQuota(c)
	if err != nil {
		return DistributionResult{}, err
	}
	sched, ok := schedules[c]
	if !ok {
		return DistributionResult{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	step := q.Unit.Step()
	if excess.Sign() <= 0 {
		return zeroDistribution(travelers, o.pick(0, travelers)), nil
	}

	// Tier bounds are multiples of step, so rounding up never moves the
	// excess into another tier.
	stepsDec := excess.Div(step).Ceil()
	top := topEnd(sched, step)

	// Past travelers*(top-1) steps some share must reach the cap, and giving
	// everything to the last traveler is the first split that costs only the cap.
	if stepsDec.GreaterThan(decimal.NewFromInt(int64(top - 1)).Mul(decimal.NewFromInt(int64(travelers)))) {
		res := zeroDistribution(travelers, o.pickLarge())
		res.Steps = stepsDec
		res.Shares[travelers-1] = stepsDec.Mul(step)
		res.Fines[travelers-1] = sched.Cap()
		res.TotalFine = sched.Cap()
		return res, nil
	}

	steps := int(stepsDec.IntPart())
	strategy := o.pick(steps, travelers)
	costs := stepCosts(sched, step, min(steps, top))

	var shares []int
	switch strategy {
	case StrategyDynamic:
		shares = searchDynamic(costs, sched, step, steps, travelers)
	default:
		shares = searchExhaustive(costs, steps, travelers)
	}

	res := DistributionResult{
		Shares:   make([]decimal.Decimal, travelers),
		Fines:    make([]money.Kroner, travelers),
		Steps:    stepsDec,
		Strategy: strategy,
	}
	for i, sh := range shares {
		f := costAt(costs, sh)
		res.Shares[i] = step.Mul(decimal.NewFromInt(int64(sh)))
		res.Fines[i] = f
		res.TotalFine += f
	}
	return res, nil
}

func (o Optimizer) pick(steps, travelers int) Strategy {
	switch o.Strategy {
	case StrategyExhaustive, StrategyDynamic:
		return o.Strategy
	}
	limit := o.ExhaustiveLimit
	if limit == 0 {
		limit = DefaultExhaustiveLimit
	}
	if CompositionCount(steps, travelers, limit) > limit {
		return StrategyDynamic
	}
	return StrategyExhaustive
}

// pickLarge names the strategy reported for an excess beyond every tier
// combination; auto would always have chosen the dynamic search there.
func (o Optimizer) pickLarge() Strategy {
	if o.Strategy == StrategyExhaustive {
		return StrategyExhaustive
	}
	return StrategyDynamic
}

func zeroDistribution(travelers int, strategy Strategy) DistributionResult {
	res := DistributionResult{
		Shares:   make([]decimal.Decimal, travelers),
		Fines:    make([]money.Kroner, travelers),
		Steps:    decimal.Zero,
		Strategy: strategy,
	}
	for i := range res.Shares {
		res.Shares[i] = decimal.Zero
	}
	return res
}

// topEnd is the step count of the last tier bound. Any share of topEnd steps
// or more costs the schedule's cap.
func topEnd(sched FineSchedule, step decimal.Decimal) int {
	return int(sched.Tiers[len(sched.Tiers)-1].UpTo.Div(step).Ceil().IntPart())
}

// stepCosts[s] is the fine for a single traveler holding s steps, up to n.
// The last entry repeats for any larger share (see costAt).
func stepCosts(sched FineSchedule, step decimal.Decimal, n int) []money.Kroner {
	costs := make([]money.Kroner, n+1)
	for s := 1; s <= n; s++ {
		costs[s] = sched.FineFor(step.Mul(decimal.NewFromInt(int64(s))))
	}
	return costs
}

func costAt(costs []money.Kroner, s int) money.Kroner {
	if s >= len(costs) {
		return costs[len(costs)-1]
	}
	return costs[s]
}

func searchExhaustive(costs []money.Kroner, steps, travelers int) []int {
	best := make([]int, travelers)
	bestTotal := money.Kroner(-1)
	for shares := range Compositions(steps, travelers) {
		var total money.Kroner
		for _, s := range shares {
			total += costAt(costs, s)
		}
		if bestTotal < 0 || total < bestTotal {
			bestTotal = total
			copy(best, shares)
		}
	}
	return best
}

// searchDynamic fills best[k][r], the cheapest way to spread r steps over k
// travelers, then walks forward taking the smallest share that stays optimal.
//
// Within one tier the fine is flat while best[k-1] never increases as the
// share grows, so each tier only needs its largest share checked. That keeps
// a cell at O(tiers) instead of O(steps). Row k stops at k*(top-1) steps:
// beyond that some share reaches the cap, so the row's value is the cap.
func searchDynamic(costs []money.Kroner, sched FineSchedule, step decimal.Decimal, steps, travelers int) []int {
	ends := tierEnds(sched, step)
	top := topEnd(sched, step)
	capFine := sched.Cap()

	best := make([][]money.Kroner, travelers+1)
	at := func(k, r int) money.Kroner {
		if r >= len(best[k]) {
			return capFine
		}
		return best[k][r]
	}

	for k := 1; k <= travelers; k++ {
		row := make([]money.Kroner, min(steps, k*(top-1))+1)
		for r := range row {
			if k == 1 {
				row[r] = costAt(costs, r)
				continue
			}
			m := money.Kroner(math.MaxInt64)
			try := func(s int) {
				if v := costAt(costs, s) + at(k-1, r-s); v < m {
					m = v
				}
			}
			try(0)
			for _, e := range ends {
				if e >= r {
					break
				}
				try(e)
			}
			try(r)
			row[r] = m
		}
		best[k] = row
	}

	shares := make([]int, travelers)
	r := steps
	for i := 0; i < travelers-1; i++ {
		k := travelers - i
		want := at(k, r)
		for s := 0; s <= r; s++ {
			if costAt(costs, s)+at(k-1, r-s) == want {
				shares[i] = s
				r -= s
				break
			}
		}
	}
	shares[travelers-1] = r
	return shares
}

// tierEnds lists, per tier, the largest step count whose quantity still falls
// inside that tier.
func tierEnds(sched FineSchedule, step decimal.Decimal) []int {
	ends := make([]int, 0, len(sched.Tiers))
	for _, t := range sched.Tiers {
		e := int(t.UpTo.Div(step).Floor().IntPart())
		if e > 0 {
			ends = append(ends, e)
		}
	}
	return ends
}
