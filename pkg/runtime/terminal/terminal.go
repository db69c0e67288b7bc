package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/aws-profile-manager/pkg/runtime/terminal/commands"
	"github.com/de-tools/aws-profile-manager/pkg/runtime/terminal/export"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

// CLI represents the command-line interface
type CLI struct {
	manager  manager.Manager
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Manager manager.Manager
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		manager:  opts.Manager,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "awsprofile",
		Short: "Manage AWS CLI profiles and credentials",
	}

	cmd.AddCommand(commands.NewStatusCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewProfilesCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewEnvironmentsCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewSyncCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewSwitchCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewRemoveCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewSaveCredentialsCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewSaveRoleCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewRefreshCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewCleanCmd(cli.manager, cli.reporter))
	cmd.AddCommand(commands.NewResetCmd(cli.manager, cli.reporter))

	return cmd
}
