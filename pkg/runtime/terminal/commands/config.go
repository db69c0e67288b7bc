package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/aws-profile-manager/pkg/runtime/terminal/export"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

func NewStatusCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show active profile, environment and file health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			return reporter.Status(mgr.GetStatus(ctx))
		},
	}
}

func NewCleanCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove orphaned profile sections from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			if err := mgr.CleanConfig(ctx); err != nil {
				return err
			}
			reporter.Message("Config file cleaned")
			return nil
		},
	}
}

func NewResetCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clean the config file and re-seed credentials from the base file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			if err := mgr.ForceCleanReset(ctx); err != nil {
				return err
			}
			reporter.Message("Config reset from the base file")
			return nil
		},
	}
}
