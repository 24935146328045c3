package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/finfluency/internal/breakeven"
	"github.com/abhisek/finfluency/internal/ui/components"
)

func newBreakevenCmd() *cobra.Command {
	def := breakeven.Default()
	c := &cobra.Command{
		Use:   "breakeven",
		Short: "Compute contribution margin and break-even volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in breakeven.Input
			in.FixedCosts, _ = cmd.Flags().GetFloat64("fixed")
			in.Price, _ = cmd.Flags().GetFloat64("price")
			in.VariableCost, _ = cmd.Flags().GetFloat64("variable")

			r, err := breakeven.Compute(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contribution margin:  $%s per unit (%s%%)\n",
				components.Amount(r.ContributionMargin, 4), components.Amount(r.MarginRatio, 1))
			if r.Units == 0 {
				fmt.Fprintln(out, "Break-even:           never (price does not cover variable cost)")
				return nil
			}
			fmt.Fprintf(out, "Break-even volume:    %s units\n", humanize.Comma(r.Units))
			fmt.Fprintf(out, "Break-even revenue:   $%s\n", components.Amount(r.Revenue, 2))
			return nil
		},
	}
	c.Flags().Float64("fixed", def.FixedCosts, "Fixed costs for the period")
	c.Flags().Float64("price", def.Price, "Price or fee per unit")
	c.Flags().Float64("variable", def.VariableCost, "Variable cost per unit")
	return c
}
