package domain

import (
	"context"
	"fmt"

	"forelegg/internal/money"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Declaration is what the travelers carried, already parsed into numbers.
// Categories absent from Declared count as zero.
type Declaration struct {
	Travelers int                          `json:"travelers"`
	Declared  map[Category]decimal.Decimal `json:"declared"`
}

func (d Declaration) Validate() error {
	if d.Travelers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTravelerCount, d.Travelers)
	}
	for c, amt := range d.Declared {
		if _, err := LookupQuota(c); err != nil {
			return err
		}
		if amt.IsNegative() {
			return fmt.Errorf("%w: negative amount %s for %s", ErrInvalidDeclaration, amt, c)
		}
	}
	return nil
}

type CategoryAssessment struct {
	ExcessResult
	// SingleFine is the fine if one traveler carries the whole excess.
	SingleFine   money.Kroner       `json:"single_fine"`
	Distribution DistributionResult `json:"distribution"`
}

type AssessmentResult struct {
	Travelers           int                  `json:"travelers"`
	Categories          []CategoryAssessment `json:"categories"`
	SingleTravelerTotal money.Kroner         `json:"single_traveler_total"`
	OptimalTotal        money.Kroner         `json:"optimal_total"`
	// PerTravelerAverage is OptimalTotal spread evenly, to the øre.
	PerTravelerAverage decimal.Decimal `json:"per_traveler_average"`
	// SplitSaves reports that sharing the excess lowers the combined fine.
	SplitSaves          bool         `json:"split_saves"`
	ExceedsMaxThreshold bool         `json:"exceeds_max_threshold"`
	MaxFineThreshold    money.Kroner `json:"max_fine_threshold"`
}

// Category returns the assessment line for c, if present.
func (r *AssessmentResult) Category(c Category) (CategoryAssessment, bool) {
	for _, ca := range r.Categories {
		if ca.Category == c {
			return ca, true
		}
	}
	return CategoryAssessment{}, false
}

// Engine is stateless; one value can serve concurrent callers.
type Engine struct {
	Optimizer Optimizer
	// Parallelism bounds AssessBatch; zero or less means one at a time.
	Parallelism int
}

func DefaultEngine() Engine {
	return Engine{
		Optimizer:   DefaultOptimizer(),
		Parallelism: 4,
	}
}

func (e Engine) Assess(d Declaration) (*AssessmentResult, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	res := &AssessmentResult{
		Travelers:        d.Travelers,
		Categories:       make([]CategoryAssessment, 0, len(Categories)),
		MaxFineThreshold: MaxFineThreshold,
	}
	for _, c := range Categories {
		declared, ok := d.Declared[c]
		if !ok {
			declared = decimal.Zero
		}

		ex, err := Excess(c, declared, d.Travelers)
		if err != nil {
			return nil, err
		}
		single, err := FineFor(c, ex.Excess)
		if err != nil {
			return nil, err
		}
		dist, err := e.Optimizer.Optimize(c, ex.Excess, d.Travelers)
		if err != nil {
			return nil, err
		}

		res.Categories = append(res.Categories, CategoryAssessment{
			ExcessResult: ex,
			SingleFine:   single,
			Distribution: dist,
		})
		res.SingleTravelerTotal += single
		res.OptimalTotal += dist.TotalFine
	}

	res.PerTravelerAverage = res.OptimalTotal.PerHead(d.Travelers)
	res.SplitSaves = d.Travelers > 1 && res.OptimalTotal < res.SingleTravelerTotal
	res.ExceedsMaxThreshold = res.OptimalTotal > MaxFineThreshold
	return res, nil
}

// AssessBatch assesses independent declarations concurrently. The first
// failure cancels the rest and no partial results are returned. ctx is only
// consulted between declarations.
func (e Engine) AssessBatch(ctx context.Context, ds []Declaration) ([]*AssessmentResult, error) {
	out := make([]*AssessmentResult, len(ds))

	g, gctx := errgroup.WithContext(ctx)
	limit := e.Parallelism
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i := range ds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := e.Assess(ds[i])
			if err != nil {
				return fmt.Errorf("declaration %d: %w", i, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
