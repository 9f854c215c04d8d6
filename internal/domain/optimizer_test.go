package domain

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"forelegg/internal/money"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func shareStrings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, x := range ds {
		out[i] = x.String()
	}
	return out
}

func TestCompositions_LexicographicOrder(t *testing.T) {
	var got [][]int
	for c := range Compositions(2, 3) {
		got = append(got, slices.Clone(c))
	}
	want := [][]int{
		{0, 0, 2}, {0, 1, 1}, {0, 2, 0},
		{1, 0, 1}, {1, 1, 0},
		{2, 0, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("compositions mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositions_EarlyStop(t *testing.T) {
	n := 0
	for range Compositions(10, 3) {
		n++
		if n == 5 {
			break
		}
	}
	if n != 5 {
		t.Fatalf("iterations = %d, want 5", n)
	}
}

func TestCompositionCount(t *testing.T) {
	cases := []struct {
		total, parts int
		want         uint64
	}{
		{0, 1, 1},
		{5, 1, 1},
		{0, 4, 1},
		{2, 3, 6},
		{16, 2, 17},
		{60, 4, 39711},
	}
	for _, tc := range cases {
		if got := CompositionCount(tc.total, tc.parts, 1<<40); got != tc.want {
			t.Fatalf("CompositionCount(%d, %d) = %d, want %d", tc.total, tc.parts, got, tc.want)
		}
	}

	t.Run("saturates above limit", func(t *testing.T) {
		if got := CompositionCount(100000, 4, 1000); got != 1001 {
			t.Fatalf("CompositionCount = %d, want 1001", got)
		}
	})

	t.Run("matches enumeration", func(t *testing.T) {
		n := 0
		for range Compositions(7, 4) {
			n++
		}
		if got := CompositionCount(7, 4, 1<<20); got != uint64(n) {
			t.Fatalf("CompositionCount = %d, enumerated %d", got, n)
		}
	})
}

func TestOptimize_ZeroExcess(t *testing.T) {
	got, err := DefaultOptimizer().Optimize(Beer, decimal.Zero, 3)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got.TotalFine != 0 {
		t.Fatalf("total = %d, want 0", got.TotalFine)
	}
	if diff := cmp.Diff([]string{"0", "0", "0"}, shareStrings(got.Shares)); diff != "" {
		t.Fatalf("shares mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimize_SingleTraveler(t *testing.T) {
	got, err := DefaultOptimizer().Optimize(Beer, d("24"), 1)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got.TotalFine != 1600 {
		t.Fatalf("total = %d, want 1600", got.TotalFine)
	}
	if diff := cmp.Diff([]string{"24"}, shareStrings(got.Shares)); diff != "" {
		t.Fatalf("shares mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimize_TieBreakKeepsFirstInOrder(t *testing.T) {
	for _, strategy := range []Strategy{StrategyExhaustive, StrategyDynamic} {
		t.Run(string(strategy), func(t *testing.T) {
			o := Optimizer{Strategy: strategy}

			// 8 l over two travelers: [0, 8] and [8, 0] both cost 400.
			got, err := o.Optimize(Beer, d("8"), 2)
			if err != nil {
				t.Fatalf("Optimize: %v", err)
			}
			if got.TotalFine != 400 {
				t.Fatalf("total = %d, want 400", got.TotalFine)
			}
			if diff := cmp.Diff([]string{"0", "8"}, shareStrings(got.Shares)); diff != "" {
				t.Fatalf("shares mismatch (-want +got):\n%s", diff)
			}

			// 24 l: the first split reaching 1200 gives the first traveler 4 l.
			got, err = o.Optimize(Beer, d("24"), 2)
			if err != nil {
				t.Fatalf("Optimize: %v", err)
			}
			if got.TotalFine != 1200 {
				t.Fatalf("total = %d, want 1200", got.TotalFine)
			}
			if diff := cmp.Diff([]string{"4", "20"}, shareStrings(got.Shares)); diff != "" {
				t.Fatalf("shares mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]money.Kroner{400, 800}, got.Fines); diff != "" {
				t.Fatalf("fines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptimize_RoundsUpToWholeSteps(t *testing.T) {
	t.Run("quarter litre rounds up to the next half", func(t *testing.T) {
		got, err := Optimizer{Strategy: StrategyExhaustive}.Optimize(Spirits, d("1.25"), 1)
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}
		if !got.Steps.Equal(d("3")) || !got.Shares[0].Equal(d("1.5")) {
			t.Fatalf("steps = %s shares = %v, want 3 steps of 1.5 l", got.Steps, shareStrings(got.Shares))
		}
	})

	t.Run("remainder below half a step still costs a step", func(t *testing.T) {
		got, err := Optimizer{Strategy: StrategyExhaustive}.Optimize(Cigarettes, d("0.4"), 2)
		if err != nil {
			t.Fatalf("Optimize: %v", err)
		}
		if !got.Steps.Equal(d("1")) || got.TotalFine != 400 {
			t.Fatalf("steps = %s total = %d, want 1 and 400", got.Steps, got.TotalFine)
		}
	})

	t.Run("one traveler pays the single fine on fractional excess", func(t *testing.T) {
		cases := []struct {
			cat    Category
			excess string
			want   money.Kroner
		}{
			{Beer, "0.2", 400},
			{Beer, "10.2", 800},
			{Cigarettes, "400.4", 800},
			{Tobacco, "2000.3", 6100},
		}
		for _, tc := range cases {
			for _, strategy := range []Strategy{StrategyExhaustive, StrategyDynamic} {
				got, err := Optimizer{Strategy: strategy}.Optimize(tc.cat, d(tc.excess), 1)
				if err != nil {
					t.Fatalf("Optimize: %v", err)
				}
				if got.TotalFine != tc.want {
					t.Fatalf("%s %s %s: total = %d, want %d", strategy, tc.cat, tc.excess, got.TotalFine, tc.want)
				}
			}
		}
	})
}

func TestOptimize_VeryLargeExcess(t *testing.T) {
	cases := []struct {
		name      string
		cat       Category
		excess    string
		travelers int
	}{
		{"1e20 cigarettes", Cigarettes, "100000000000000000000", 1},
		{"1e20 cigarettes shared", Cigarettes, "100000000000000000000", 4},
		{"20 tonnes of tobacco", Tobacco, "20000000", 4},
		{"200 tonnes of tobacco, ten travelers", Tobacco, "200000000", 10},
		{"a lake of beer", Beer, "123456789012.3", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, strategy := range []Strategy{StrategyAuto, StrategyExhaustive, StrategyDynamic} {
				got, err := Optimizer{Strategy: strategy}.Optimize(tc.cat, d(tc.excess), tc.travelers)
				if err != nil {
					t.Fatalf("Optimize: %v", err)
				}
				s, _ := ScheduleFor(tc.cat)
				if got.TotalFine != s.Cap() {
					t.Fatalf("total = %d, want cap %d", got.TotalFine, s.Cap())
				}
				last := got.Shares[tc.travelers-1]
				if last.LessThan(d(tc.excess)) {
					t.Fatalf("last share %s below excess %s", last, tc.excess)
				}
				for i := 0; i < tc.travelers-1; i++ {
					if !got.Shares[i].IsZero() {
						t.Fatalf("share %d = %s, want 0", i, got.Shares[i])
					}
				}
			}
		})
	}
}

// Just past travelers*(top-1) steps the closed-form split must match what a
// full search over the same steps finds.
func TestOptimize_LargeExcessMatchesSearch(t *testing.T) {
	for _, c := range []Category{Spirits, Wine} {
		q, _ := LookupQuota(c)
		sched := schedules[c]
		step := q.Unit.Step()
		top := topEnd(sched, step)

		for n := 1; n <= 3; n++ {
			threshold := n * (top - 1)
			for steps := threshold - 2; steps <= threshold+3; steps++ {
				costs := stepCosts(sched, step, min(steps, top))
				want := searchExhaustive(costs, steps, n)
				if dyn := searchDynamic(costs, sched, step, steps, n); !slices.Equal(want, dyn) {
					t.Fatalf("%s n=%d steps=%d: dynamic %v, exhaustive %v", c, n, steps, dyn, want)
				}

				excess := step.Mul(decimal.NewFromInt(int64(steps)))
				got, err := DefaultOptimizer().Optimize(c, excess, n)
				if err != nil {
					t.Fatalf("Optimize: %v", err)
				}
				wantShares := make([]string, n)
				for i, s := range want {
					wantShares[i] = step.Mul(decimal.NewFromInt(int64(s))).String()
				}
				if diff := cmp.Diff(wantShares, shareStrings(got.Shares)); diff != "" {
					t.Fatalf("%s n=%d steps=%d (-search +optimize):\n%s", c, n, steps, diff)
				}
			}
		}
	}
}

func TestOptimize_InvalidInput(t *testing.T) {
	o := DefaultOptimizer()
	if _, err := o.Optimize(Beer, d("1"), 0); !errors.Is(err, ErrInvalidTravelerCount) {
		t.Fatalf("err = %v, want ErrInvalidTravelerCount", err)
	}
	if _, err := o.Optimize(Category("mead"), d("1"), 1); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}
}

func TestOptimize_AutoSwitchesToDynamic(t *testing.T) {
	o := Optimizer{Strategy: StrategyAuto, ExhaustiveLimit: 100}

	small, err := o.Optimize(Beer, d("2"), 2)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if small.Strategy != StrategyExhaustive {
		t.Fatalf("strategy = %s, want exhaustive", small.Strategy)
	}

	large, err := o.Optimize(Cigarettes, d("5000"), 4)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if large.Strategy != StrategyDynamic {
		t.Fatalf("strategy = %s, want dynamic", large.Strategy)
	}
	single, _ := FineFor(Cigarettes, d("5000"))
	if large.TotalFine > single {
		t.Fatalf("total = %d exceeds single fine %d", large.TotalFine, single)
	}
}

type gridCase struct {
	cat       Category
	excess    decimal.Decimal
	travelers int
}

func optimizerGrid() []gridCase {
	var out []gridCase
	for _, c := range []Category{Beer, Wine, Spirits} {
		for half := int64(0); half <= 48; half += 3 {
			for n := 1; n <= 4; n++ {
				out = append(out, gridCase{c, decimal.NewFromInt(half).Div(d("2")), n})
			}
		}
	}
	for _, c := range []Category{Beer, Wine, Spirits} {
		for _, x := range []string{"0.2", "0.7", "10.2", "16.2", "19.9", "1000000"} {
			for n := 1; n <= 4; n++ {
				out = append(out, gridCase{c, d(x), n})
			}
		}
	}
	for _, c := range []Category{Cigarettes, Tobacco} {
		for _, x := range []string{"0", "0.4", "1", "150", "400.4", "401", "600.4", "620", "850", "1e20"} {
			for n := 1; n <= 3; n++ {
				out = append(out, gridCase{c, d(x), n})
			}
		}
	}
	return out
}

func TestOptimize_StrategiesAgree(t *testing.T) {
	ex := Optimizer{Strategy: StrategyExhaustive}
	dp := Optimizer{Strategy: StrategyDynamic}

	for _, tc := range optimizerGrid() {
		name := fmt.Sprintf("%s/%s/%d", tc.cat, tc.excess, tc.travelers)
		a, err := ex.Optimize(tc.cat, tc.excess, tc.travelers)
		if err != nil {
			t.Fatalf("%s exhaustive: %v", name, err)
		}
		b, err := dp.Optimize(tc.cat, tc.excess, tc.travelers)
		if err != nil {
			t.Fatalf("%s dynamic: %v", name, err)
		}
		if a.TotalFine != b.TotalFine {
			t.Fatalf("%s: exhaustive total %d != dynamic total %d", name, a.TotalFine, b.TotalFine)
		}
		if diff := cmp.Diff(shareStrings(a.Shares), shareStrings(b.Shares)); diff != "" {
			t.Fatalf("%s: winners differ (-exhaustive +dynamic):\n%s", name, diff)
		}
	}
}

func TestOptimize_Properties(t *testing.T) {
	o := DefaultOptimizer()
	for _, tc := range optimizerGrid() {
		name := fmt.Sprintf("%s/%s/%d", tc.cat, tc.excess, tc.travelers)
		got, err := o.Optimize(tc.cat, tc.excess, tc.travelers)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got.Shares) != tc.travelers {
			t.Fatalf("%s: %d shares, want %d", name, len(got.Shares), tc.travelers)
		}

		q, _ := LookupQuota(tc.cat)
		sum := decimal.Sum(decimal.Zero, got.Shares...)
		if sum.Sub(tc.excess).Abs().GreaterThan(q.Unit.Step()) {
			t.Fatalf("%s: shares sum to %s, excess %s", name, sum, tc.excess)
		}

		single, _ := FineFor(tc.cat, tc.excess)
		if got.TotalFine > single {
			t.Fatalf("%s: split total %d > single fine %d", name, got.TotalFine, single)
		}
		if tc.travelers == 1 && got.TotalFine != single {
			t.Fatalf("%s: one traveler total %d != single fine %d", name, got.TotalFine, single)
		}
	}
}

func BenchmarkOptimize(b *testing.B) {
	for _, strategy := range []Strategy{StrategyExhaustive, StrategyDynamic} {
		o := Optimizer{Strategy: strategy}
		b.Run(string(strategy), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := o.Optimize(Beer, d("60"), 4); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
