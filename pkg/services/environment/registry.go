// Package environment syncs the AWS credentials file from a base/source
// credentials file keyed by environment name. The base file is the source of
// truth and is never written to. The active environment, like the active
// profile, is derived by comparing the credentials file's default section
// against each environment section in the base file.
package environment

import (
	"context"
	"errors"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/store/awsfile"
	"gopkg.in/ini.v1"
)

type Registry interface {
	ListEnvironments(ctx context.Context) ([]domain.Environment, error)
	SyncCredentials(ctx context.Context, name string) error
	ForceRefresh(ctx context.Context) error
	CleanConfig(ctx context.Context) error
	ForceCleanReset(ctx context.Context) error
	ActiveEnvironment(ctx context.Context) (string, error)
}

type registry struct {
	paths domain.Paths
}

func NewRegistry(paths domain.Paths) Registry {
	return &registry{paths: paths}
}

func (r *registry) ListEnvironments(_ context.Context) ([]domain.Environment, error) {
	base, err := r.loadBase()
	if err != nil {
		return nil, err
	}

	var envs []domain.Environment
	for _, name := range awsfile.SectionNames(base) {
		section := base.Section(name)
		envs = append(envs, domain.Environment{
			Name:        name,
			Region:      section.Key(awsfile.KeyRegion).String(),
			Credentials: awsfile.SectionCredentials(section),
		})
	}
	return envs, nil
}

// SyncCredentials copies the environment's credentials from the base file
// into the credentials file: into the default section and into a mirror
// section named after the environment. If the environment carries a region,
// the config file's default section is updated too.
func (r *registry) SyncCredentials(_ context.Context, name string) error {
	base, err := r.loadBase()
	if err != nil {
		return err
	}
	if !awsfile.HasSection(base, name) {
		return domain.NotFoundf("environment %q", name)
	}
	section := base.Section(name)
	creds := awsfile.SectionCredentials(section)
	if !creds.Valid() {
		return domain.ParseErrorf("environment %q carries no usable credentials", name)
	}

	credsFile, err := awsfile.LoadOrEmpty(r.paths.CredentialsFile)
	if err != nil {
		return err
	}
	awsfile.SetCredentials(credsFile.Section(awsfile.DefaultSection), creds)
	awsfile.SetCredentials(credsFile.Section(name), creds)
	if err := awsfile.Save(credsFile, r.paths.CredentialsFile); err != nil {
		return err
	}

	if region := section.Key(awsfile.KeyRegion).String(); region != "" {
		cfgFile, err := awsfile.LoadOrEmpty(r.paths.ConfigFile)
		if err != nil {
			return err
		}
		cfgFile.Section(awsfile.DefaultSection).Key(awsfile.KeyRegion).SetValue(region)
		if err := awsfile.Save(cfgFile, r.paths.ConfigFile); err != nil {
			return err
		}
	}
	return nil
}

// ForceRefresh re-syncs the currently active environment, discarding manual
// edits to the credentials file's default section.
func (r *registry) ForceRefresh(ctx context.Context) error {
	active, err := r.ActiveEnvironment(ctx)
	if err != nil {
		return err
	}
	if active == "" {
		return domain.NotFoundf("no active environment to refresh")
	}
	return r.SyncCredentials(ctx, active)
}

// CleanConfig removes orphaned sections from the config file: sections that
// are neither default nor `profile X`, and profile sections whose profile
// exists nowhere (no credentials-file section and no usable role
// definition). Running it twice produces the same file as running it once.
func (r *registry) CleanConfig(_ context.Context) error {
	cfgFile, err := awsfile.Load(r.paths.ConfigFile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	credsFile, err := awsfile.LoadOrEmpty(r.paths.CredentialsFile)
	if err != nil {
		return err
	}

	var doomed []string
	for _, sectionName := range awsfile.SectionNames(cfgFile) {
		if sectionName == awsfile.DefaultSection {
			continue
		}
		name, ok := awsfile.ProfileNameFromSection(sectionName)
		if !ok {
			doomed = append(doomed, sectionName)
			continue
		}
		if awsfile.HasSection(credsFile, name) {
			continue
		}
		section := cfgFile.Section(sectionName)
		roleARN := section.Key(awsfile.KeyRoleARN).String()
		source := section.Key(awsfile.KeySourceProfile).String()
		if roleARN != "" && source != "" && awsfile.HasSection(credsFile, source) {
			continue
		}
		doomed = append(doomed, sectionName)
	}

	if len(doomed) == 0 {
		return nil
	}
	for _, sectionName := range doomed {
		cfgFile.DeleteSection(sectionName)
	}
	return awsfile.Save(cfgFile, r.paths.ConfigFile)
}

// ForceCleanReset is CleanConfig plus a re-seed from the base file: the
// active environment if one is derivable, otherwise the first environment
// in the base file. Unlike CleanConfig it rewrites the credentials file.
func (r *registry) ForceCleanReset(ctx context.Context) error {
	if err := r.CleanConfig(ctx); err != nil {
		return err
	}

	target, err := r.ActiveEnvironment(ctx)
	if err != nil {
		return err
	}
	if target == "" {
		envs, err := r.ListEnvironments(ctx)
		if err != nil {
			return err
		}
		if len(envs) == 0 {
			return domain.NotFoundf("base file defines no environments")
		}
		target = envs[0].Name
	}
	return r.SyncCredentials(ctx, target)
}

func (r *registry) ActiveEnvironment(_ context.Context) (string, error) {
	base, err := r.loadBase()
	if err != nil {
		return "", err
	}
	credsFile, err := awsfile.LoadOrEmpty(r.paths.CredentialsFile)
	if err != nil {
		return "", err
	}
	return activeEnvironmentName(base, credsFile), nil
}

func (r *registry) loadBase() (*ini.File, error) {
	base, err := awsfile.Load(r.paths.BaseFile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.SourceFileMissingf("base file %s", r.paths.BaseFile)
		}
		return nil, err
	}
	return base, nil
}

func activeEnvironmentName(base, credsFile *ini.File) string {
	defCreds := awsfile.SectionCredentials(credsFile.Section(awsfile.DefaultSection))
	if !defCreds.Valid() {
		return ""
	}
	for _, name := range awsfile.SectionNames(base) {
		if awsfile.SectionCredentials(base.Section(name)) == defCreds {
			return name
		}
	}
	return ""
}
