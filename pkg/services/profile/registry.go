// Package profile manages named profiles across the AWS credentials and
// config files. A profile spans up to two physical sections: `[name]` in the
// credentials file and `[profile name]` in the config file. The active
// profile is never stored; it is derived by comparing the default section's
// values against each named profile.
package profile

import (
	"context"
	"strconv"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/store/awsfile"
	"gopkg.in/ini.v1"
)

type Registry interface {
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	CreateCredentialsProfile(ctx context.Context, name string, creds domain.Credentials, region string) (*domain.Profile, error)
	CreateRoleProfile(ctx context.Context, name string, spec domain.RoleSpec) (*domain.Profile, error)
	SwitchProfile(ctx context.Context, name string) error
	RemoveProfile(ctx context.Context, name string) error
	UpdateCredentials(ctx context.Context, name string, creds domain.Credentials) error
	ActiveProfile(ctx context.Context) (string, error)
}

type registry struct {
	paths domain.Paths
}

func NewRegistry(paths domain.Paths) Registry {
	return &registry{paths: paths}
}

func (r *registry) ListProfiles(_ context.Context) ([]domain.Profile, error) {
	creds, err := awsfile.LoadOrEmpty(r.paths.CredentialsFile)
	if err != nil {
		return nil, err
	}
	cfg, err := awsfile.LoadOrEmpty(r.paths.ConfigFile)
	if err != nil {
		return nil, err
	}

	active := activeProfileName(creds, cfg)

	var profiles []domain.Profile
	seen := map[string]bool{}

	for _, name := range awsfile.SectionNames(creds) {
		if name == awsfile.DefaultSection {
			continue
		}
		region := ""
		if awsfile.HasSection(cfg, awsfile.ProfileSectionName(name)) {
			region = cfg.Section(awsfile.ProfileSectionName(name)).Key(awsfile.KeyRegion).String()
		}
		profiles = append(profiles, domain.Profile{
			Name:   name,
			Kind:   domain.ProfileKindCredentials,
			Region: region,
			Active: name == active,
		})
		seen[name] = true
	}

	for _, section := range awsfile.SectionNames(cfg) {
		name, ok := awsfile.ProfileNameFromSection(section)
		if !ok || name == awsfile.DefaultSection || seen[name] {
			continue
		}
		profiles = append(profiles, domain.Profile{
			Name:   name,
			Kind:   domain.ProfileKindRole,
			Region: cfg.Section(section).Key(awsfile.KeyRegion).String(),
			Active: name == active,
		})
	}

	return profiles, nil
}

func (r *registry) CreateCredentialsProfile(
	_ context.Context,
	name string,
	creds domain.Credentials,
	region string,
) (*domain.Profile, error) {
	if name == "" || name == awsfile.DefaultSection {
		return nil, domain.InvalidInputf("profile name %q", name)
	}
	if !creds.Valid() {
		return nil, domain.InvalidInputf("access key and secret key are required")
	}

	credsFile, cfgFile, err := r.loadBoth()
	if err != nil {
		return nil, err
	}
	if r.exists(credsFile, cfgFile, name) {
		return nil, domain.DuplicateNamef("profile %q already exists", name)
	}

	awsfile.SetCredentials(credsFile.Section(name), creds)
	if err := awsfile.Save(credsFile, r.paths.CredentialsFile); err != nil {
		return nil, err
	}

	if region != "" {
		cfgFile.Section(awsfile.ProfileSectionName(name)).Key(awsfile.KeyRegion).SetValue(region)
		if err := awsfile.Save(cfgFile, r.paths.ConfigFile); err != nil {
			return nil, err
		}
	}

	return &domain.Profile{Name: name, Kind: domain.ProfileKindCredentials, Region: region}, nil
}

func (r *registry) CreateRoleProfile(
	_ context.Context,
	name string,
	spec domain.RoleSpec,
) (*domain.Profile, error) {
	if name == "" || name == awsfile.DefaultSection {
		return nil, domain.InvalidInputf("profile name %q", name)
	}
	if spec.RoleARN == "" || spec.SourceProfile == "" {
		return nil, domain.InvalidInputf("role_arn and source_profile are required")
	}

	credsFile, cfgFile, err := r.loadBoth()
	if err != nil {
		return nil, err
	}
	if !awsfile.HasSection(credsFile, spec.SourceProfile) {
		return nil, domain.UnknownSourceProfilef("source profile %q", spec.SourceProfile)
	}
	if r.exists(credsFile, cfgFile, name) {
		return nil, domain.DuplicateNamef("profile %q already exists", name)
	}

	section := cfgFile.Section(awsfile.ProfileSectionName(name))
	section.Key(awsfile.KeyRoleARN).SetValue(spec.RoleARN)
	section.Key(awsfile.KeySourceProfile).SetValue(spec.SourceProfile)
	if spec.Region != "" {
		section.Key(awsfile.KeyRegion).SetValue(spec.Region)
	}
	if spec.ExternalID != "" {
		section.Key(awsfile.KeyExternalID).SetValue(spec.ExternalID)
	}
	if spec.DurationSeconds > 0 {
		section.Key(awsfile.KeyDurationSeconds).SetValue(strconv.Itoa(spec.DurationSeconds))
	}

	if err := awsfile.Save(cfgFile, r.paths.ConfigFile); err != nil {
		return nil, err
	}
	return &domain.Profile{Name: name, Kind: domain.ProfileKindRole, Region: spec.Region}, nil
}

// SwitchProfile copies the named profile's values into the default section
// of both files. Whatever was in default before is overwritten.
func (r *registry) SwitchProfile(_ context.Context, name string) error {
	credsFile, cfgFile, err := r.loadBoth()
	if err != nil {
		return err
	}

	inCreds := awsfile.HasSection(credsFile, name)
	cfgSection := awsfile.ProfileSectionName(name)
	inConfig := awsfile.HasSection(cfgFile, cfgSection)
	if !inCreds && !inConfig {
		return domain.NotFoundf("profile %q", name)
	}

	if inCreds {
		awsfile.CopySection(credsFile, awsfile.DefaultSection, credsFile.Section(name))
		if err := awsfile.Save(credsFile, r.paths.CredentialsFile); err != nil {
			return err
		}
	}
	if inConfig {
		awsfile.CopySection(cfgFile, awsfile.DefaultSection, cfgFile.Section(cfgSection))
		if err := awsfile.Save(cfgFile, r.paths.ConfigFile); err != nil {
			return err
		}
	}
	return nil
}

// RemoveProfile deletes both physical sections. Removing the currently
// active profile is refused so the default section never silently points at
// values that no longer belong to any profile.
func (r *registry) RemoveProfile(_ context.Context, name string) error {
	if name == awsfile.DefaultSection {
		return domain.InvalidInputf("the default section is not a removable profile")
	}

	credsFile, cfgFile, err := r.loadBoth()
	if err != nil {
		return err
	}

	inCreds := awsfile.HasSection(credsFile, name)
	cfgSection := awsfile.ProfileSectionName(name)
	inConfig := awsfile.HasSection(cfgFile, cfgSection)
	if !inCreds && !inConfig {
		return domain.NotFoundf("profile %q", name)
	}
	if activeProfileName(credsFile, cfgFile) == name {
		return domain.ErrCannotRemoveActive
	}

	if inCreds {
		credsFile.DeleteSection(name)
		if err := awsfile.Save(credsFile, r.paths.CredentialsFile); err != nil {
			return err
		}
	}
	if inConfig {
		cfgFile.DeleteSection(cfgSection)
		if err := awsfile.Save(cfgFile, r.paths.ConfigFile); err != nil {
			return err
		}
	}
	return nil
}

// UpdateCredentials writes credentials into the named section, creating it
// if absent. Unlike CreateCredentialsProfile this may target an existing
// profile, including default.
func (r *registry) UpdateCredentials(_ context.Context, name string, creds domain.Credentials) error {
	if name == "" {
		return domain.InvalidInputf("profile name is required")
	}
	if !creds.Valid() {
		return domain.InvalidInputf("access key and secret key are required")
	}

	credsFile, err := awsfile.LoadOrEmpty(r.paths.CredentialsFile)
	if err != nil {
		return err
	}
	awsfile.SetCredentials(credsFile.Section(name), creds)
	return awsfile.Save(credsFile, r.paths.CredentialsFile)
}

func (r *registry) ActiveProfile(_ context.Context) (string, error) {
	credsFile, cfgFile, err := r.loadBoth()
	if err != nil {
		return "", err
	}
	return activeProfileName(credsFile, cfgFile), nil
}

func (r *registry) loadBoth() (*ini.File, *ini.File, error) {
	credsFile, err := awsfile.LoadOrEmpty(r.paths.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	cfgFile, err := awsfile.LoadOrEmpty(r.paths.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	return credsFile, cfgFile, nil
}

func (r *registry) exists(credsFile, cfgFile *ini.File, name string) bool {
	return awsfile.HasSection(credsFile, name) ||
		awsfile.HasSection(cfgFile, awsfile.ProfileSectionName(name))
}

// activeProfileName derives the active profile by value comparison: the
// named profile whose fields equal the current default section. Credential
// profiles are matched on the credentials file, role profiles on the config
// file. Best effort; returns "" when nothing matches.
func activeProfileName(credsFile, cfgFile *ini.File) string {
	defCreds := awsfile.SectionCredentials(credsFile.Section(awsfile.DefaultSection))
	if defCreds.Valid() {
		for _, name := range awsfile.SectionNames(credsFile) {
			if name == awsfile.DefaultSection {
				continue
			}
			if awsfile.SectionCredentials(credsFile.Section(name)) == defCreds {
				return name
			}
		}
	}

	def := cfgFile.Section(awsfile.DefaultSection)
	roleARN := def.Key(awsfile.KeyRoleARN).String()
	if roleARN == "" {
		return ""
	}
	source := def.Key(awsfile.KeySourceProfile).String()
	for _, sectionName := range awsfile.SectionNames(cfgFile) {
		name, ok := awsfile.ProfileNameFromSection(sectionName)
		if !ok || name == awsfile.DefaultSection {
			continue
		}
		section := cfgFile.Section(sectionName)
		if section.Key(awsfile.KeyRoleARN).String() == roleARN &&
			section.Key(awsfile.KeySourceProfile).String() == source {
			return name
		}
	}
	return ""
}

