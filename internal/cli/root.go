package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Services are the operations the admin commands drive.
type Services struct {
	Registry    service.RegistryService
	Sharing     service.SharingService
	Utilization service.UtilizationService
	// Threshold is the configured low-utilization threshold in hours per day.
	Threshold float64
}

// Loader opens the services for configPath. The returned func releases them.
type Loader func(ctx context.Context, configPath string) (*Services, func(), error)

type app struct {
	load       Loader
	configPath string
	svc        *Services
	closeFn    func()
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// NewRootCmd builds the fleetctl command tree. Services are opened lazily
// before any subcommand runs. The returned func closes them and must be called
// after Execute returns, including when the command failed.
func NewRootCmd(load Loader) (*cobra.Command, func()) {
	a := &app{load: load}

	root := &cobra.Command{
		Use:   "fleetctl",
		Short: "Administer the equipment registry",
		Long: `fleetctl registers sites and equipment, rents and checks in units,
and drives the inter-site sharing workflow against the registry database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.svc != nil {
				return nil
			}
			svc, closeFn, err := a.load(cmd.Context(), a.configPath)
			if err != nil {
				return fmt.Errorf("failed to open registry: %w", err)
			}
			a.svc, a.closeFn = svc, closeFn
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "config/config.dev.yaml", "Path to configuration file")

	root.AddCommand(a.seedCmd())
	root.AddCommand(a.siteCmd())
	root.AddCommand(a.equipmentCmd())
	root.AddCommand(a.requestCmd())
	root.AddCommand(a.utilizationCmd())
	return root, a.close
}

func (a *app) close() {
	if a.closeFn != nil {
		a.closeFn()
		a.closeFn = nil
	}
}

func (a *app) services() (*Services, error) {
	if a.svc == nil {
		return nil, errors.New("registry is not open")
	}
	return a.svc, nil
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default fleet into an empty registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			n, err := svc.Registry.SeedFleet(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Fleet already seeded\n", warnMark)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Seeded %d units\n", okMark, n)
			return nil
		},
	}
}
