package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/hostnet"
	"github.com/evelink/evelink/pkg/linkmgr"
)

const (
	opSuspend = linkmgr.OpSuspend
	opResume  = linkmgr.OpResume
)

// endpointFlags selects the transition target: a host interface, an
// explicit endpoint, an explicit link, or a named endpoint needing
// resolution.
type endpointFlags struct {
	deviceID    string
	interfaceID string

	device1ID    string
	interface1ID string
	device2ID    string
	interface2ID string

	deviceName    string
	interfaceName string

	hostInterface string

	dryRun bool
}

func (f *endpointFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.deviceID, "device-id", "", "EVE-NG device ID")
	cmd.Flags().StringVar(&f.interfaceID, "interface-id", "", "EVE-NG interface ID")
	cmd.Flags().StringVar(&f.device1ID, "device1-id", "", "first device ID for a link operation")
	cmd.Flags().StringVar(&f.interface1ID, "interface1-id", "", "first interface ID for a link operation")
	cmd.Flags().StringVar(&f.device2ID, "device2-id", "", "second device ID for a link operation")
	cmd.Flags().StringVar(&f.interface2ID, "interface2-id", "", "second interface ID for a link operation")
	cmd.Flags().StringVarP(&f.deviceName, "device", "d", "", "device display name (resolved via the API)")
	cmd.Flags().StringVarP(&f.interfaceName, "interface", "i", "", "interface display name (resolved via the API)")
	cmd.Flags().StringVar(&f.hostInterface, "host-interface", "", "host interface to control directly")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report the action without applying it")
}

func (f *endpointFlags) hasLink() bool {
	return f.device1ID != "" && f.interface1ID != "" && f.device2ID != "" && f.interface2ID != ""
}

func (f *endpointFlags) hasEndpoint() bool {
	return f.deviceID != "" && f.interfaceID != ""
}

func (f *endpointFlags) hasNames() bool {
	return f.deviceName != "" && f.interfaceName != ""
}

func newTransitionCmd(op linkmgr.Op) *cobra.Command {
	f := &endpointFlags{}
	cmd := &cobra.Command{
		Use:   string(op),
		Short: fmt.Sprintf("%s an interface or link", string(op)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd, op, f)
		},
	}
	f.register(cmd)
	return cmd
}

func runTransition(cmd *cobra.Command, op linkmgr.Op, f *endpointFlags) error {
	ctx := cmd.Context()

	// Host-side path: no lab or API involved.
	if f.hostInterface != "" {
		ctrl := hostnet.NewController(logger)
		var err error
		if op == opSuspend {
			err = ctrl.Down(f.hostInterface)
		} else {
			err = ctrl.Up(f.hostInterface)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s %s %s\n", green("✓"), op.Past(), f.hostInterface)
		return nil
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

	switch {
	case f.hasLink():
		ep1 := linkmgr.Endpoint{DeviceID: f.device1ID, InterfaceID: f.interface1ID}
		ep2 := linkmgr.Endpoint{DeviceID: f.device2ID, InterfaceID: f.interface2ID}
		return printResult(exec.TransitionLink(ctx, ep1, ep2, op, f.dryRun))

	case f.hasEndpoint():
		ep := linkmgr.Endpoint{DeviceID: f.deviceID, InterfaceID: f.interfaceID}
		return printResult(exec.Transition(ctx, ep, op, f.dryRun))

	case f.hasNames():
		client, err := connectAPI(ctx)
		if err != nil {
			return err
		}
		resolver := linkmgr.NewResolver(client, lab, logger)
		ep, err := resolveNamedEndpoint(ctx, resolver, f.deviceName, f.interfaceName)
		if err != nil {
			return err
		}
		return printResult(exec.Transition(ctx, ep, op, f.dryRun))

	default:
		return fmt.Errorf("specify --host-interface, --device-id/--interface-id, --device/--interface, or the four link ID flags")
	}
}

func resolveNamedEndpoint(ctx context.Context, resolver *linkmgr.Resolver, deviceName, interfaceName string) (linkmgr.Endpoint, error) {
	deviceID, err := resolver.ResolveDevice(ctx, deviceName)
	if err != nil {
		return linkmgr.Endpoint{}, err
	}
	interfaceID, err := resolver.ResolveInterface(ctx, deviceID, interfaceName)
	if err != nil {
		return linkmgr.Endpoint{}, err
	}
	return linkmgr.Endpoint{DeviceID: deviceID, InterfaceID: interfaceID}, nil
}
