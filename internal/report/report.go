// Package report renders assessments and rule tables for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"forelegg/internal/domain"
	"forelegg/internal/money"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

const (
	NoteAdvisory = "Veiledende beregning – endelig avgjørelse tas av saksbehandler"
	NoteSplit    = "Deling gir lavere samlet forelegg"
	NoteExceeds  = "Beløpet overstiger maksgrense for forenklet forelegg"
	NoteReferral = "Saken må vurderes for ordinær straffesaksbehandling"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Notes lists the advisory lines that accompany a result, advisory first.
func Notes(res *domain.AssessmentResult) []string {
	notes := []string{NoteAdvisory}
	if res.SplitSaves {
		notes = append(notes, NoteSplit)
	}
	if res.ExceedsMaxThreshold {
		notes = append(notes,
			fmt.Sprintf("%s (%s)", NoteExceeds, res.MaxFineThreshold.Format()),
			NoteReferral,
		)
	}
	return notes
}

func quantity(q decimal.Decimal, u domain.Unit) string {
	return q.String() + " " + string(u)
}

func shares(ca domain.CategoryAssessment) string {
	parts := make([]string, len(ca.Distribution.Shares))
	for i, s := range ca.Distribution.Shares {
		parts[i] = s.String()
	}
	return strings.Join(parts, " + ")
}

// Render writes a human-readable summary of res to w.
func Render(w io.Writer, res *domain.AssessmentResult) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Forenklet forelegg"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(domain.ScheduleCitation))
	b.WriteString("\n\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Vare", "Innført", "Kvote", "Overskudd", "Forelegg (1)", "Fordeling", "Forelegg (delt)")
	for _, ca := range res.Categories {
		q, err := domain.LookupQuota(ca.Category)
		if err != nil {
			return err
		}
		t.Row(
			q.Label,
			quantity(ca.Declared, ca.Unit),
			quantity(ca.QuotaUsed, ca.Unit),
			quantity(ca.Excess, ca.Unit),
			ca.SingleFine.Format(),
			shares(ca),
			ca.Distribution.TotalFine.Format(),
		)
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", totalStyle.Render("Forelegg (1 person):"), res.SingleTravelerTotal.Format())
	fmt.Fprintf(&b, "%s %s\n", totalStyle.Render(fmt.Sprintf("Forelegg delt på %d personer:", res.Travelers)), res.OptimalTotal.Format())
	fmt.Fprintf(&b, "%s %s\n\n", totalStyle.Render("Per person:"), money.FormatOre(res.PerTravelerAverage))

	for _, n := range Notes(res) {
		switch n {
		case NoteAdvisory:
			b.WriteString(mutedStyle.Render(n))
		case NoteSplit:
			b.WriteString(goodStyle.Render(n))
		case NoteReferral:
			b.WriteString(warnStyle.Render(n))
		default:
			b.WriteString(badStyle.Render(n))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderRules writes the quota and fine tables for the given categories.
func RenderRules(w io.Writer, cats []domain.Category) error {
	var b strings.Builder
	for _, c := range cats {
		q, err := domain.LookupQuota(c)
		if err != nil {
			return err
		}
		s, err := domain.ScheduleFor(c)
		if err != nil {
			return err
		}

		fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("%s (%s)", q.Label, c)))
		fmt.Fprintf(&b, "Kvote per person: %s  %s\n", quantity(q.QuotaPerTraveler, q.Unit), mutedStyle.Render(q.Citation))
		fmt.Fprintf(&b, "Minste deling: %s\n", quantity(q.Unit.Step(), q.Unit))

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			Headers("Overskudd opp til", "Forelegg")
		for _, tier := range s.Tiers {
			t.Row(quantity(tier.UpTo, q.Unit), tier.Fine.Format())
		}
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Maksgrense for forenklet forelegg: %s\n", domain.MaxFineThreshold.Format())

	_, err := io.WriteString(w, b.String())
	return err
}
