package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/cli"
	"github.com/evelink/evelink/pkg/eveng"
	"github.com/evelink/evelink/pkg/hostnet"
	"github.com/evelink/evelink/pkg/mapping"
)

func newInventoryCmd() *cobra.Command {
	var writeMapping string
	var showMACs bool

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List lab devices and their interfaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lab, err := requireLab()
			if err != nil {
				return err
			}
			client, err := connectAPI(ctx)
			if err != nil {
				return err
			}

			nodes, err := client.ListNodes(ctx, lab)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				fmt.Printf("%s no nodes found in lab %s\n", yellow("!"), lab)
				return nil
			}

			interfaces := make(map[string]map[string]map[string]eveng.Interface, len(nodes))
			for _, nodeID := range sortedKeys(nodes) {
				ifaces, err := client.NodeInterfaces(ctx, lab, nodeID)
				if err != nil {
					return err
				}
				interfaces[nodeID] = ifaces
			}

			t := cli.NewTable("DEVICE ID", "DEVICE", "CLASS", "IF ID", "INTERFACE")
			for _, nodeID := range sortedKeys(nodes) {
				node := nodes[nodeID]
				for _, class := range sortedKeys(interfaces[nodeID]) {
					bucket := interfaces[nodeID][class]
					for _, localID := range sortedKeys(bucket) {
						name := bucket[localID].Name
						if name == "" {
							name = cli.Dim("(unnamed)")
						}
						t.Row(nodeID, node.Name, class, localID, name)
					}
				}
			}
			t.Flush()

			if writeMapping != "" {
				skel := mapping.Skeleton(nodes, interfaces)
				if err := skel.Save(writeMapping); err != nil {
					return err
				}
				fmt.Printf("%s wrote mapping skeleton to %s (fill in host interfaces by hand)\n", green("✓"), writeMapping)
			}

			if showMACs {
				ctrl := hostnet.NewController(logger)
				macs, err := ctrl.MACTable()
				if err != nil {
					return err
				}
				mt := cli.NewTable("MAC", "HOST INTERFACE")
				for _, mac := range sortedKeys(macs) {
					mt.Row(mac, macs[mac])
				}
				mt.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&writeMapping, "write-mapping", "", "write a mapping file skeleton to this path")
	cmd.Flags().BoolVar(&showMACs, "macs", false, "also print the host MAC address table")
	return cmd
}

// sortedKeys returns map keys sorted numerically when both parse as
// integers, lexically otherwise. Node and interface IDs are numeric
// strings, so plain string sorting would put "10" before "2".
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
