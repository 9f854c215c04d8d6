package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	Beer       Category = "beer"
	Wine       Category = "wine"
	Spirits    Category = "spirits"
	Cigarettes Category = "cigarettes"
	Tobacco    Category = "tobacco"
)

// Categories is the fixed assessment order.
var Categories = []Category{Beer, Wine, Spirits, Cigarettes, Tobacco}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := quotas[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

type Unit string

const (
	UnitLiter Unit = "liter"
	UnitCount Unit = "stk"
	UnitGram  Unit = "gram"
)

var (
	halfStep  = decimal.RequireFromString("0.5")
	wholeStep = decimal.NewFromInt(1)
)

// Step is the smallest quantity that can be handed to a single traveler.
func (u Unit) Step() decimal.Decimal {
	if u == UnitLiter {
		return halfStep
	}
	return wholeStep
}

// QuotaRule is the duty-free allowance for one category, per traveler.
type QuotaRule struct {
	Category         Category        `json:"category"`
	Label            string          `json:"label"`
	QuotaPerTraveler decimal.Decimal `json:"quota_per_traveler"`
	Unit             Unit            `json:"unit"`
	Citation         string          `json:"citation"`
}

const QuotaCitation = "Tollforskriften § 5-1"

var quotas = map[Category]QuotaRule{
	Beer:       {Category: Beer, Label: "Øl", QuotaPerTraveler: decimal.NewFromInt(16), Unit: UnitLiter, Citation: QuotaCitation},
	Wine:       {Category: Wine, Label: "Vin", QuotaPerTraveler: decimal.NewFromInt(4), Unit: UnitLiter, Citation: QuotaCitation},
	Spirits:    {Category: Spirits, Label: "Sprit", QuotaPerTraveler: decimal.NewFromInt(1), Unit: UnitLiter, Citation: QuotaCitation},
	Cigarettes: {Category: Cigarettes, Label: "Sigaretter", QuotaPerTraveler: decimal.NewFromInt(200), Unit: UnitCount, Citation: QuotaCitation},
	Tobacco:    {Category: Tobacco, Label: "Tobakk / snus", QuotaPerTraveler: decimal.NewFromInt(250), Unit: UnitGram, Citation: QuotaCitation},
}

func LookupQuota(c Category) (QuotaRule, error) {
	q, ok := quotas[c]
	if !ok {
		return QuotaRule{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return q, nil
}

// QuotaRules returns every rule in Categories order.
func QuotaRules() []QuotaRule {
	out := make([]QuotaRule, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, quotas[c])
	}
	return out
}

// The two tables must move in lockstep; a mismatch is a build-time mistake.
func init() {
	if len(quotas) != len(Categories) || len(schedules) != len(Categories) {
		panic("domain: quota and fine tables out of sync")
	}
	for _, c := range Categories {
		if _, ok := quotas[c]; !ok {
			panic(fmt.Sprintf("domain: no quota for %s", c))
		}
		s, ok := schedules[c]
		if !ok {
			panic(fmt.Sprintf("domain: no fine schedule for %s", c))
		}
		if err := s.validate(); err != nil {
			panic(fmt.Sprintf("domain: %s: %v", c, err))
		}
	}
}
