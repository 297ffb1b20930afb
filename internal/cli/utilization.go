package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) utilizationCmd() *cobra.Command {
	var (
		alert     bool
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Show average daily hours per site and type",
		Long: `Show average engine plus idle hours per day for each site and equipment type.
With --alert, groups below the threshold are emailed at their site contact.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = svc.Threshold
			}

			groups, err := svc.Utilization.SummarizeUtilization(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SITE\tTYPE\tUNITS\tHRS/DAY\tCONTACT")
			for _, g := range groups {
				hours := fmt.Sprintf("%.2f", g.AverageHours)
				if g.AverageHours < threshold {
					hours = color.New(color.FgRed).Sprint(hours)
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", g.SiteID, g.Type, g.Units, hours, g.ContactDetails)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !alert {
				return nil
			}
			alerted, err := svc.Utilization.CheckLowUtilization(cmd.Context(), threshold)
			fmt.Fprintf(cmd.OutOrStdout(), "%s Sent %d low-utilization alerts\n", okMark, len(alerted))
			return err
		},
	}
	cmd.Flags().BoolVar(&alert, "alert", false, "Email sites below the threshold")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Hours per day (defaults to the configured threshold)")
	return cmd
}
