// Package manager is the single entry point surrounding the profile and
// environment registries plus the status reporter. The web handlers and the
// CLI both talk to this interface and nothing below it.
package manager

import (
	"context"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/services/environment"
	"github.com/de-tools/aws-profile-manager/pkg/services/profile"
	"github.com/de-tools/aws-profile-manager/pkg/services/status"
)

type Manager interface {
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	CreateCredentialsProfile(ctx context.Context, name string, creds domain.Credentials, region string) (*domain.Profile, error)
	CreateRoleProfile(ctx context.Context, name string, spec domain.RoleSpec) (*domain.Profile, error)
	SwitchProfile(ctx context.Context, name string) error
	RemoveProfile(ctx context.Context, name string) error
	UpdateCredentials(ctx context.Context, name string, creds domain.Credentials) error

	ListEnvironments(ctx context.Context) ([]domain.Environment, error)
	SyncCredentials(ctx context.Context, name string) error
	ForceRefresh(ctx context.Context) error
	CleanConfig(ctx context.Context) error
	ForceCleanReset(ctx context.Context) error

	GetStatus(ctx context.Context) domain.StatusSnapshot
}

type Dependencies struct {
	Profiles     profile.Registry
	Environments environment.Registry
	Status       status.Reporter
}

type facade struct {
	profiles     profile.Registry
	environments environment.Registry
	status       status.Reporter
}

func New(deps Dependencies) Manager {
	return &facade{
		profiles:     deps.Profiles,
		environments: deps.Environments,
		status:       deps.Status,
	}
}

// NewFromPaths wires the default registries over the given files.
func NewFromPaths(paths domain.Paths) Manager {
	profiles := profile.NewRegistry(paths)
	environments := environment.NewRegistry(paths)
	return New(Dependencies{
		Profiles:     profiles,
		Environments: environments,
		Status:       status.NewReporter(paths, profiles, environments),
	})
}

func (f *facade) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return f.profiles.ListProfiles(ctx)
}

func (f *facade) CreateCredentialsProfile(
	ctx context.Context,
	name string,
	creds domain.Credentials,
	region string,
) (*domain.Profile, error) {
	return f.profiles.CreateCredentialsProfile(ctx, name, creds, region)
}

func (f *facade) CreateRoleProfile(ctx context.Context, name string, spec domain.RoleSpec) (*domain.Profile, error) {
	return f.profiles.CreateRoleProfile(ctx, name, spec)
}

func (f *facade) SwitchProfile(ctx context.Context, name string) error {
	return f.profiles.SwitchProfile(ctx, name)
}

func (f *facade) RemoveProfile(ctx context.Context, name string) error {
	return f.profiles.RemoveProfile(ctx, name)
}

func (f *facade) UpdateCredentials(ctx context.Context, name string, creds domain.Credentials) error {
	return f.profiles.UpdateCredentials(ctx, name, creds)
}

func (f *facade) ListEnvironments(ctx context.Context) ([]domain.Environment, error) {
	return f.environments.ListEnvironments(ctx)
}

func (f *facade) SyncCredentials(ctx context.Context, name string) error {
	return f.environments.SyncCredentials(ctx, name)
}

func (f *facade) ForceRefresh(ctx context.Context) error {
	return f.environments.ForceRefresh(ctx)
}

func (f *facade) CleanConfig(ctx context.Context) error {
	return f.environments.CleanConfig(ctx)
}

func (f *facade) ForceCleanReset(ctx context.Context) error {
	return f.environments.ForceCleanReset(ctx)
}

func (f *facade) GetStatus(ctx context.Context) domain.StatusSnapshot {
	return f.status.GetStatus(ctx)
}
