package commands

import (
	"forelegg/internal/domain"
	"forelegg/internal/report"

	"github.com/spf13/cobra"
)

func categoryNames() []string {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, string(c))
	}
	return names
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "rules [category]",
		Short:     "Print duty-free quotas and fine schedules",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: categoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := domain.Categories
			if len(args) == 1 {
				c, err := domain.ParseCategory(args[0])
				if err != nil {
					return err
				}
				cats = []domain.Category{c}
			}
			return report.RenderRules(cmd.OutOrStdout(), cats)
		},
	}
}
