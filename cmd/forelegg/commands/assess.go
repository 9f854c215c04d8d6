package commands

import (
	"encoding/json"
	"fmt"

	"forelegg/internal/domain"
	"forelegg/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func assessCmd() *cobra.Command {
	var (
		travelers int
		asJSON    bool
		amounts   = map[domain.Category]*string{}
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute the fine for a declaration",
		Example: `  forelegg assess --beer 40
  forelegg assess --travelers 2 --beer 40 --cigarettes 1000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkTravelers(travelers); err != nil {
				return err
			}

			decl := domain.Declaration{
				Travelers: travelers,
				Declared:  map[domain.Category]decimal.Decimal{},
			}
			for c, raw := range amounts {
				if *raw == "" {
					continue
				}
				amt, err := decimal.NewFromString(*raw)
				if err != nil {
					return fmt.Errorf("--%s: %w", c, err)
				}
				decl.Declared[c] = amt
			}

			res, err := cfg.Engine().Assess(decl)
			if err != nil {
				return err
			}
			logger.Debug("assessed",
				zap.Int("travelers", res.Travelers),
				zap.Int64("optimal_total", int64(res.OptimalTotal)),
			)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					*domain.AssessmentResult
					Notes []string `json:"notes"`
				}{res, report.Notes(res)})
			}
			return report.Render(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVarP(&travelers, "travelers", "n", 1, "number of travelers sharing the goods")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	for _, c := range domain.Categories {
		q, _ := domain.LookupQuota(c)
		amounts[c] = cmd.Flags().String(string(c), "", fmt.Sprintf("%s declared (%s)", q.Label, q.Unit))
	}
	return cmd
}
