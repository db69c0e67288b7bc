package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/runtime/terminal/export"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

const commandTimeout = 30 * time.Second

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func NewProfilesCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List managed profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			profiles, err := mgr.ListProfiles(ctx)
			if err != nil {
				return err
			}
			return reporter.Profiles(profiles)
		},
	}
}

func NewSwitchCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <profile>",
		Short: "Make a profile the active default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			if err := mgr.SwitchProfile(ctx, args[0]); err != nil {
				return err
			}
			reporter.Message("Switched to profile %q", args[0])
			return nil
		},
	}
}

func NewRemoveCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <profile>",
		Short: "Remove a profile from both AWS files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			if err := mgr.RemoveProfile(ctx, args[0]); err != nil {
				return err
			}
			reporter.Message("Removed profile %q", args[0])
			return nil
		},
	}
}

type SaveCredentialsCmd struct {
	name         string
	accessKey    string
	secretKey    string
	sessionToken string
	region       string
	overwrite    bool
	mgr          manager.Manager
	reporter     *export.Reporter
}

func NewSaveCredentialsCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	sc := &SaveCredentialsCmd{mgr: mgr, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "save-creds",
		Short: "Create or update a credentials profile",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.name, "name", "", "Profile name")
	cmd.Flags().StringVar(&sc.accessKey, "access-key", "", "AWS access key ID")
	cmd.Flags().StringVar(&sc.secretKey, "secret-key", "", "AWS secret access key")
	cmd.Flags().StringVar(&sc.sessionToken, "session-token", "", "AWS session token (optional)")
	cmd.Flags().StringVar(&sc.region, "region", "", "Default region for the profile")
	cmd.Flags().BoolVar(&sc.overwrite, "overwrite", false, "Overwrite the profile if it already exists")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("access-key")
	_ = cmd.MarkFlagRequired("secret-key")

	return cmd
}

func (sc *SaveCredentialsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	creds := domain.Credentials{
		AccessKeyID:     sc.accessKey,
		SecretAccessKey: sc.secretKey,
		SessionToken:    sc.sessionToken,
	}

	if sc.overwrite {
		if err := sc.mgr.UpdateCredentials(ctx, sc.name, creds); err != nil {
			return err
		}
		sc.reporter.Message("Saved credentials for profile %q", sc.name)
		return nil
	}

	if _, err := sc.mgr.CreateCredentialsProfile(ctx, sc.name, creds, sc.region); err != nil {
		return err
	}
	sc.reporter.Message("Created profile %q", sc.name)
	return nil
}

type SaveRoleCmd struct {
	name          string
	roleARN       string
	sourceProfile string
	region        string
	externalID    string
	duration      int
	mgr           manager.Manager
	reporter      *export.Reporter
}

func NewSaveRoleCmd(mgr manager.Manager, reporter *export.Reporter) *cobra.Command {
	sr := &SaveRoleCmd{mgr: mgr, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "save-role",
		Short: "Create a role profile backed by a source profile",
		RunE:  sr.run,
	}

	cmd.Flags().StringVar(&sr.name, "name", "", "Profile name")
	cmd.Flags().StringVar(&sr.roleARN, "role-arn", "", "ARN of the role to assume")
	cmd.Flags().StringVar(&sr.sourceProfile, "source-profile", "", "Credentials profile that assumes the role")
	cmd.Flags().StringVar(&sr.region, "region", "", "Default region for the profile")
	cmd.Flags().StringVar(&sr.externalID, "external-id", "", "External ID for the role (optional)")
	cmd.Flags().IntVar(&sr.duration, "duration", 0, "Session duration in seconds (optional)")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("role-arn")
	_ = cmd.MarkFlagRequired("source-profile")

	return cmd
}

func (sr *SaveRoleCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	_, err := sr.mgr.CreateRoleProfile(ctx, sr.name, domain.RoleSpec{
		RoleARN:         sr.roleARN,
		SourceProfile:   sr.sourceProfile,
		Region:          sr.region,
		ExternalID:      sr.externalID,
		DurationSeconds: sr.duration,
	})
	if err != nil {
		return err
	}
	sr.reporter.Message("Created role profile %q", sr.name)
	return nil
}
