// evelink is a link failure simulator for EVE-NG labs.
//
// evelink suspends and resumes lab interfaces or whole links, singly or as
// repeated flaps, to generate link events for demos and testing without
// clicking through the EVE-NG UI.
//
// Usage:
//
//	evelink suspend --device R1 --interface e0/0      Suspend by name
//	evelink resume --device-id 1 --interface-id 0     Resume by ID
//	evelink flap --device R1 --interface e0/0 -c 3    Flap an interface
//	evelink batch -o suspend -f links.txt             Batch from a file
//	evelink inventory                                 List lab devices
//	evelink host down eth3                            Host-side control
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/cli"
	"github.com/evelink/evelink/pkg/util"
	"github.com/evelink/evelink/pkg/version"
)

var (
	flagHost     string
	flagUsername string
	flagPassword string
	flagLab      string
	flagInsecure bool
	flagSSH      bool
	flagVerbose  bool

	logger *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "evelink",
	Short:             "Link failure simulation for EVE-NG labs",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `evelink suspends and resumes interfaces or links in an EVE-NG lab,
singly or as repeated flaps, to generate link events for demos.

  evelink suspend --device R1 --interface e0/0 --lab demo/core.unl`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if flagVerbose {
			level = "debug"
		}
		logger = util.NewLogger(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "EVE-NG server (host name or URL)")
	rootCmd.PersistentFlags().StringVar(&flagUsername, "username", "", "EVE-NG username")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "EVE-NG password")
	rootCmd.PersistentFlags().StringVarP(&flagLab, "lab", "L", "", "lab path (relative to /opt/unetlab/labs/)")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", true, "skip TLS certificate verification")
	rootCmd.PersistentFlags().BoolVar(&flagSSH, "ssh", false, "run unl_wrapper on --host over SSH instead of locally")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newTransitionCmd(opSuspend),
		newTransitionCmd(opResume),
		newFlapCmd(),
		newBatchCmd(),
		newInventoryCmd(),
		newHostCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version.Version == "dev" {
				fmt.Println("evelink dev build")
			} else {
				fmt.Printf("evelink %s\n", version.Info())
			}
		},
	}
}

// Color helpers, delegating to pkg/cli.
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
