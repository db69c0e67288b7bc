package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/aws-profile-manager/pkg/runtime/terminal/export"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

func NewEnvironmentsCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "environments",
		Short: "List environments found in the base file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			envs, err := mgr.ListEnvironments(ctx)
			if err != nil {
				return err
			}
			return reporter.Environments(envs)
		},
	}
}

func NewSyncCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <environment>",
		Short: "Copy an environment's credentials into the AWS files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			if err := mgr.SyncCredentials(ctx, args[0]); err != nil {
				return err
			}
			reporter.Message("Synced environment %q", args[0])
			return nil
		},
	}
}

func NewRefreshCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-sync the active environment's credentials from the base file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			if err := mgr.ForceRefresh(ctx); err != nil {
				return err
			}
			reporter.Message("Refreshed credentials from the base file")
			return nil
		},
	}
}
