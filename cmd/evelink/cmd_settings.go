package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evelink/evelink/pkg/cli"
	"github.com/evelink/evelink/pkg/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persistent defaults",
		Long: `Manage defaults stored in ~/.evelink/settings.json. Stored values are
used when the matching flag and environment variable are absent.

Keys: host, username, lab, wrapper-path`,
	}

	cmd.AddCommand(
		newSettingsShowCmd(),
		newSettingsSetCmd(),
		newSettingsClearCmd(),
	)
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return err
			}
			t := cli.NewTable("KEY", "VALUE")
			t.Row("host", orUnset(s.Host))
			t.Row("username", orUnset(s.Username))
			t.Row("lab", orUnset(s.Lab))
			t.Row("wrapper-path", s.GetWrapperPath())
			t.Flush()
			return nil
		},
	}
}

func orUnset(v string) string {
	if v == "" {
		return cli.Dim("(unset)")
	}
	return v
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a default value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "host":
				s.Host = value
			case "username":
				s.Username = value
			case "lab":
				s.Lab = value
			case "wrapper-path":
				s.WrapperPath = value
			default:
				return fmt.Errorf("unknown setting %q (keys: host, username, lab, wrapper-path)", key)
			}

			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("%s %s = %s\n", green("✓"), key, value)
			return nil
		},
	}
}

func newSettingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return err
			}
			s.Clear()
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("%s settings cleared\n", green("✓"))
			return nil
		},
	}
}
