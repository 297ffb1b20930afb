package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) requestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "request",
		Aliases: []string{"req"},
		Short:   "File and decide inter-site rental requests",
	}
	cmd.AddCommand(a.requestSubmitCmd())
	cmd.AddCommand(a.requestListCmd())
	cmd.AddCommand(a.requestApproveCmd())
	cmd.AddCommand(a.requestRejectCmd())
	return cmd
}

func (a *app) requestSubmitCmd() *cobra.Command {
	var (
		requester int32
		location  string
		from, to  string
	)
	cmd := &cobra.Command{
		Use:     "submit <equipment-id>",
		Short:   "Ask the owning site for a shared unit",
		Example: `  fleetctl request submit EQX1001 --requester 4 --from 2025-03-01 --to 2025-03-05 --location "East Yard"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			req, err := svc.Sharing.SubmitRentalRequest(cmd.Context(), args[0], requester, location, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Filed request %d for %s with site %d\n", okMark, req.RequestID, req.EquipmentID, req.OwnerSiteID)
			return nil
		},
	}
	cmd.Flags().Int32Var(&requester, "requester", 0, "Requesting site")
	cmd.Flags().StringVar(&location, "location", "", "Where the unit is needed")
	cmd.Flags().StringVar(&from, "from", "", "Start of the rental window")
	cmd.Flags().StringVar(&to, "to", "", "End of the rental window")
	_ = cmd.MarkFlagRequired("requester")
	return cmd
}

func (a *app) requestListCmd() *cobra.Command {
	var owner, requester int32
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending requests for an owner, or all requests filed by a requester",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}

			var reqs []domain.RentalRequest
			switch {
			case cmd.Flags().Changed("owner"):
				reqs, err = svc.Sharing.ListPendingRequestsForOwner(cmd.Context(), owner)
			case cmd.Flags().Changed("requester"):
				reqs, err = svc.Sharing.ListRequestsByRequester(cmd.Context(), requester)
			default:
				return errors.New("one of --owner or --requester is required")
			}
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No requests.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEQUIPMENT\tREQUESTER\tOWNER\tFROM\tTO\tSTATUS")
			for _, r := range reqs {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
					r.RequestID, r.EquipmentID, r.RequesterSiteID, r.OwnerSiteID, r.TimeFrom, r.TimeTo, statusLabel(r.Status))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int32Var(&owner, "owner", 0, "Owning site inbox")
	cmd.Flags().Int32Var(&requester, "requester", 0, "Requesting site history")
	cmd.MarkFlagsMutuallyExclusive("owner", "requester")
	return cmd
}

func (a *app) requestApproveCmd() *cobra.Command {
	var (
		requester   int32
		equipmentID string
	)
	cmd := &cobra.Command{
		Use:   "approve <request-id>",
		Short: "Approve a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.services()
			if err != nil {
				return err
			}
			req, err := svc.Sharing.ApproveRequest(cmd.Context(), requestID, requester, equipmentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Request %d %s\n", okMark, req.RequestID, statusLabel(req.Status))
			return nil
		},
	}
	cmd.Flags().Int32Var(&requester, "requester", 0, "Requesting site")
	cmd.Flags().StringVar(&equipmentID, "equipment", "", "Requested unit")
	_ = cmd.MarkFlagRequired("requester")
	_ = cmd.MarkFlagRequired("equipment")
	return cmd
}

func (a *app) requestRejectCmd() *cobra.Command {
	var requester int32
	cmd := &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseRequestID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.services()
			if err != nil {
				return err
			}
			req, err := svc.Sharing.UpdateRequestStatus(cmd.Context(), requestID, domain.RequestStatusRejected, requester)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Request %d %s\n", okMark, req.RequestID, statusLabel(req.Status))
			return nil
		},
	}
	cmd.Flags().Int32Var(&requester, "requester", 0, "Requesting site")
	_ = cmd.MarkFlagRequired("requester")
	return cmd
}

func parseRequestID(raw string) (int32, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid request id %q", raw)
	}
	return int32(v), nil
}

func statusLabel(s domain.RequestStatus) string {
	switch s {
	case domain.RequestStatusApproved:
		return color.New(color.FgGreen).Sprint(s)
	case domain.RequestStatusRejected:
		return color.New(color.FgRed).Sprint(s)
	default:
		return color.New(color.FgYellow).Sprint(s)
	}
}
