package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/hostnet"
	"github.com/evelink/evelink/pkg/mapping"
)

func newHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Control host network interfaces directly",
		Long: `Control host interfaces with netlink, bypassing the EVE-NG wrapper.
Interfaces are named directly, or looked up from a mapping file with
--mapping plus --device/--interface.`,
	}

	cmd.AddCommand(
		newHostStateCmd("down", "Bring a host interface down"),
		newHostStateCmd("up", "Bring a host interface up"),
		newHostBridgeCmd(),
		newHostMACsCmd(),
	)
	return cmd
}

func newHostStateCmd(direction, short string) *cobra.Command {
	var mappingFile, deviceName, interfaceName string

	cmd := &cobra.Command{
		Use:   direction + " [interface]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iface, err := hostInterfaceArg(args, mappingFile, deviceName, interfaceName)
			if err != nil {
				return err
			}

			ctrl := hostnet.NewController(logger)
			if direction == "down" {
				err = ctrl.Down(iface)
			} else {
				err = ctrl.Up(iface)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %s is %s\n", green("✓"), iface, direction)
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingFile, "mapping", "", "mapping file for device/interface lookup")
	cmd.Flags().StringVarP(&deviceName, "device", "d", "", "device name to look up in the mapping file")
	cmd.Flags().StringVarP(&interfaceName, "interface", "i", "", "interface name to look up in the mapping file")
	return cmd
}

// hostInterfaceArg returns the host interface named on the command line, or
// resolves one from the mapping file.
func hostInterfaceArg(args []string, mappingFile, device, iface string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if mappingFile == "" || device == "" || iface == "" {
		return "", fmt.Errorf("name an interface, or give --mapping with --device and --interface")
	}

	table, err := mapping.Load(mappingFile)
	if err != nil {
		return "", err
	}
	host, ok := table.HostInterface(device, iface)
	if !ok {
		return "", fmt.Errorf("no host interface mapped for %s %s in %s", device, iface, mappingFile)
	}
	return host, nil
}

func newHostBridgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Manage bridge membership of host interfaces",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <bridge> <interface>",
			Short: "Attach an interface to a bridge",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl := hostnet.NewController(logger)
				if err := ctrl.AddToBridge(args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("%s %s added to bridge %s\n", green("✓"), args[1], args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <bridge> <interface>",
			Short: "Detach an interface from a bridge",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctrl := hostnet.NewController(logger)
				if err := ctrl.RemoveFromBridge(args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("%s %s removed from bridge %s\n", green("✓"), args[1], args[0])
				return nil
			},
		},
	)
	return cmd
}

func newHostMACsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "macs",
		Short: "Print the host MAC address table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := hostnet.NewController(logger)
			macs, err := ctrl.MACTable()
			if err != nil {
				return err
			}
			printMACTable(macs)
			return nil
		},
	}
}

func printMACTable(macs map[string]string) {
	for _, mac := range sortedKeys(macs) {
		fmt.Printf("%s  %s\n", mac, macs[mac])
	}
}
