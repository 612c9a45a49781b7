package main

import (
	"fmt"

	"shop-assistant/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect, export and validate the activity registry",
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in registry as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			if out == "" {
				return writeJSON(cmd.OutOrStdout(), reg)
			}
			if err := reg.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry written to %s\n", out)
			return nil
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")

	validate := &cobra.Command{
		Use:   "validate <path>",
		Short: "Load and validate a registry override file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(args[0])
			if err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed (%d activities).\n", len(reg.Activities))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <taskType>",
		Short: "Print one activity from the built-in registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := registry.Default().Find(args[0])
			if !ok {
				return fmt.Errorf("no activity for task type %q", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), a)
		},
	}

	cmd.AddCommand(export, validate, show)
	return cmd
}
