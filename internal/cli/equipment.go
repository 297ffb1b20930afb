package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) equipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "equipment",
		Aliases: []string{"eq"},
		Short:   "Rent, check in and share equipment",
	}
	cmd.AddCommand(a.equipmentListCmd())
	cmd.AddCommand(a.equipmentRentCmd())
	cmd.AddCommand(a.equipmentClaimCmd())
	cmd.AddCommand(a.equipmentCheckInCmd())
	cmd.AddCommand(a.equipmentShareCmd())
	return cmd
}

func (a *app) equipmentListCmd() *cobra.Command {
	var (
		availability string
		siteID       int32
		equipType    string
		shareReady   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			filter := domain.EquipmentFilter{
				Availability: domain.Availability(availability),
				SiteID:       optionalInt32(cmd, "site-id", siteID),
				Type:         equipType,
			}
			if cmd.Flags().Changed("share-ready") {
				filter.ReadyToShare = &shareReady
			}
			units, err := svc.Registry.ListEquipment(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(units) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No equipment found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tSTATUS\tSITE\tCHECK-IN\tDAYS LEFT\tSHARE")
			for _, e := range units {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.EquipmentID, e.Type, availabilityLabel(e.Availability),
					int32OrDash(e.SiteID), stringOrDash(e.CheckInDate), daysLeftLabel(e.DaysLeft), shareLabel(e))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&availability, "availability", "", "Available or Rented")
	cmd.Flags().Int32Var(&siteID, "site-id", 0, "Owning site")
	cmd.Flags().StringVar(&equipType, "type", "", "Equipment type")
	cmd.Flags().BoolVar(&shareReady, "share-ready", false, "Only units offered (or not) for sharing")
	return cmd
}

type checkoutFlags struct {
	siteID     int32
	days       int32
	start      string
	location   string
	rentalType string
}

func (f *checkoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int32Var(&f.siteID, "site-id", 0, "Renting site")
	cmd.Flags().Int32Var(&f.days, "days", 0, "Operating days")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.location, "location", "", "Where the unit will work")
	cmd.Flags().StringVar(&f.rentalType, "rental-type", "", "Rigid or Flexible")
	_ = cmd.MarkFlagRequired("site-id")
	_ = cmd.MarkFlagRequired("start")
}

func (f *checkoutFlags) checkout(equipmentID string) domain.Checkout {
	return domain.Checkout{
		EquipmentID:   equipmentID,
		SiteID:        f.siteID,
		OperatingDays: f.days,
		Location:      f.location,
		StartDate:     f.start,
		RentalType:    domain.RentalType(f.rentalType),
	}
}

func (a *app) equipmentRentCmd() *cobra.Command {
	var flags checkoutFlags
	cmd := &cobra.Command{
		Use:     "rent <equipment-id>",
		Short:   "Rent one available unit",
		Example: `  fleetctl equipment rent EQX1001 --site-id 2 --days 10 --start 2025-01-01 --rental-type Flexible`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			e, err := svc.Registry.RentEquipment(cmd.Context(), flags.checkout(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Rented %s to site %s, due back %s (%s)\n",
				okMark, e.EquipmentID, int32OrDash(e.SiteID), stringOrDash(e.CheckInDate), daysLeftLabel(e.DaysLeft))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) equipmentClaimCmd() *cobra.Command {
	var (
		flags    checkoutFlags
		quantity int
	)
	cmd := &cobra.Command{
		Use:     "claim <type>",
		Short:   "Rent the next N available units of a type",
		Example: `  fleetctl equipment claim Crane --quantity 3 --site-id 2 --days 5 --start 2025-01-01`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			ids, err := svc.Registry.ClaimEquipment(cmd.Context(), args[0], quantity, flags.checkout(""))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Claimed %d %s: %s\n", okMark, len(ids), args[0], strings.Join(ids, ", "))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Number of units")
	return cmd
}

func (a *app) equipmentCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-in <equipment-id>",
		Short: "Return a rented unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			if err := svc.Registry.CheckInEquipment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Checked in %s\n", okMark, args[0])
			return nil
		},
	}
}

func (a *app) equipmentShareCmd() *cobra.Command {
	var (
		off      bool
		sharer   int32
		preserve bool
	)
	cmd := &cobra.Command{
		Use:   "share <equipment-id>",
		Short: "Offer a Flexible unit to other sites, or withdraw it with --off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			e, err := svc.Sharing.SetReadyToShare(cmd.Context(), domain.ShareUpdate{
				EquipmentID:    args[0],
				Ready:          !off,
				SharedBySiteID: optionalInt32(cmd, "shared-by", sharer),
				PreserveSharer: preserve,
			})
			if err != nil {
				return err
			}
			if e.ReadyToShare {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is ready to share (shared by site %s)\n", okMark, e.EquipmentID, int32OrDash(e.SharedBySiteID))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s is no longer shared\n", okMark, e.EquipmentID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Withdraw the unit from sharing")
	cmd.Flags().Int32Var(&sharer, "shared-by", 0, "Site stamped as the sharer")
	cmd.Flags().BoolVar(&preserve, "preserve", false, "Keep the existing sharer when --shared-by is not given")
	return cmd
}

func availabilityLabel(a domain.Availability) string {
	if a == domain.AvailabilityRented {
		return color.New(color.FgYellow).Sprint(a)
	}
	return color.New(color.FgGreen).Sprint(a)
}

func daysLeftLabel(d *int32) string {
	if d == nil {
		return "-"
	}
	if *d < 0 {
		return color.New(color.FgRed).Sprintf("%d overdue", -*d)
	}
	return fmt.Sprintf("%d days", *d)
}

func shareLabel(e domain.Equipment) string {
	if !e.ReadyToShare {
		return "-"
	}
	return color.New(color.FgCyan).Sprintf("by %s", int32OrDash(e.SharedBySiteID))
}

func int32OrDash(v *int32) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func stringOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
