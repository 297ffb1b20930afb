package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) siteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage sites",
	}
	cmd.AddCommand(a.siteAddCmd())
	cmd.AddCommand(a.siteListCmd())
	return cmd
}

func (a *app) siteAddCmd() *cobra.Command {
	var (
		siteID   int32
		location string
		contact  string
	)
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a site",
		Example: `  fleetctl site add --site-id 3 --location "Quarry Road" --contact ops3@example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			site, err := svc.Registry.RegisterSite(cmd.Context(), siteID, location, contact)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Registered site %d (%s)\n", okMark, site.SiteID, site.Location)
			return nil
		},
	}
	cmd.Flags().Int32Var(&siteID, "site-id", 0, "Site number")
	cmd.Flags().StringVar(&location, "location", "", "Site location")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact email for alerts and requests")
	_ = cmd.MarkFlagRequired("site-id")
	return cmd
}

func (a *app) siteListCmd() *cobra.Command {
	var siteID int32
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			sites, err := svc.Registry.ListSites(cmd.Context(), optionalInt32(cmd, "site-id", siteID))
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sites registered.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SITE\tLOCATION\tCONTACT")
			for _, s := range sites {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.SiteID, s.Location, s.ContactDetails)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int32Var(&siteID, "site-id", 0, "Only show this site")
	return cmd
}

// optionalInt32 returns nil unless the flag was set explicitly.
func optionalInt32(cmd *cobra.Command, name string, v int32) *int32 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}
