package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/hostnet"
	"github.com/evelink/evelink/pkg/linkmgr"
)

func newFlapCmd() *cobra.Command {
	f := &endpointFlags{}
	var count int
	var delaySeconds float64

	cmd := &cobra.Command{
		Use:   "flap",
		Short: "Flap (suspend then resume) an interface repeatedly",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			delay := time.Duration(delaySeconds * float64(time.Second))

			if f.hostInterface != "" {
				return flapHostInterface(f.hostInterface, count, delay)
			}

			lab, err := requireLab()
			if err != nil {
				return err
			}
			runner, closeRunner, err := newRunner()
			if err != nil {
				return err
			}
			defer closeRunner()
			exec := newExecutor(runner, lab)
			flapper := linkmgr.NewFlapper(exec, logger)

			var ep linkmgr.Endpoint
			switch {
			case f.hasEndpoint():
				ep = linkmgr.Endpoint{DeviceID: f.deviceID, InterfaceID: f.interfaceID}
			case f.hasNames():
				client, err := connectAPI(ctx)
				if err != nil {
					return err
				}
				resolver := linkmgr.NewResolver(client, lab, logger)
				ep, err = resolveNamedEndpoint(ctx, resolver, f.deviceName, f.interfaceName)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("specify --host-interface, --device-id/--interface-id, or --device/--interface")
			}

			return printResult(flapper.Flap(ctx, ep, count, delay, f.dryRun))
		},
	}

	f.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of suspend/resume cycles")
	cmd.Flags().Float64Var(&delaySeconds, "delay", 1.0, "seconds between suspend and resume")
	return cmd
}

// flapHostInterface cycles a host interface down/up with the same delay
// rules as the wrapper-based flap: no sleep after the final up.
func flapHostInterface(name string, count int, delay time.Duration) error {
	if count < 1 {
		return fmt.Errorf("flap count must be at least 1, got %d", count)
	}
	ctrl := hostnet.NewController(logger)

	for i := 0; i < count; i++ {
		logger.WithField("interface", name).Infof("flap %d/%d", i+1, count)
		if err := ctrl.Down(name); err != nil {
			return fmt.Errorf("flap %s (down failed): %w", name, err)
		}
		time.Sleep(delay)
		if err := ctrl.Up(name); err != nil {
			return fmt.Errorf("flap %s (up failed): %w", name, err)
		}
		if i < count-1 {
			time.Sleep(delay)
		}
	}

	fmt.Printf("%s flapped %s %d times\n", green("✓"), name, count)
	return nil
}
