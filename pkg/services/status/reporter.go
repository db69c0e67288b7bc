// Package status aggregates a read-only snapshot across the three files.
// It is explicitly tolerant: a half-configured setup (missing or unreadable
// files) is reported as status, never as an error.
package status

import (
	"context"
	"os"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/services/environment"
	"github.com/de-tools/aws-profile-manager/pkg/services/profile"
)

type Reporter interface {
	GetStatus(ctx context.Context) domain.StatusSnapshot
}

type reporter struct {
	paths        domain.Paths
	profiles     profile.Registry
	environments environment.Registry
}

func NewReporter(paths domain.Paths, profiles profile.Registry, environments environment.Registry) Reporter {
	return &reporter{
		paths:        paths,
		profiles:     profiles,
		environments: environments,
	}
}

func (r *reporter) GetStatus(ctx context.Context) domain.StatusSnapshot {
	snapshot := domain.StatusSnapshot{
		ActiveProfile:     domain.ActiveUnknown,
		ActiveEnvironment: domain.ActiveUnknown,
		BaseFile:          fileStatus(r.paths.BaseFile),
		CredentialsFile:   fileStatus(r.paths.CredentialsFile),
		ConfigFile:        fileStatus(r.paths.ConfigFile),
	}

	if active, err := r.profiles.ActiveProfile(ctx); err == nil && active != "" {
		snapshot.ActiveProfile = active
	}
	if active, err := r.environments.ActiveEnvironment(ctx); err == nil && active != "" {
		snapshot.ActiveEnvironment = active
	}
	if profiles, err := r.profiles.ListProfiles(ctx); err == nil {
		snapshot.ProfileCount = len(profiles)
	}
	if envs, err := r.environments.ListEnvironments(ctx); err == nil {
		snapshot.EnvironmentCount = len(envs)
	}
	return snapshot
}

func fileStatus(path string) domain.FileStatus {
	status := domain.FileStatus{Path: path}
	if _, err := os.Stat(path); err != nil {
		return status
	}
	status.Exists = true
	f, err := os.Open(path)
	if err != nil {
		return status
	}
	f.Close()
	status.Readable = true
	return status
}
