package adapters

import (
	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
)

func MapProfileDomainToApi(p domain.Profile) api.Profile {
	return api.Profile{
		Name:   p.Name,
		Kind:   string(p.Kind),
		Region: p.Region,
		Active: p.Active,
	}
}

func MapProfilesDomainToApi(profiles []domain.Profile) []api.Profile {
	mapped := make([]api.Profile, 0, len(profiles))
	for _, p := range profiles {
		mapped = append(mapped, MapProfileDomainToApi(p))
	}
	return mapped
}

func MapEnvironmentDomainToApi(env domain.Environment) api.Environment {
	return api.Environment{
		Name:   env.Name,
		Region: env.Region,
	}
}

func MapEnvironmentsDomainToApi(envs []domain.Environment) []api.Environment {
	mapped := make([]api.Environment, 0, len(envs))
	for _, env := range envs {
		mapped = append(mapped, MapEnvironmentDomainToApi(env))
	}
	return mapped
}

func MapFileStatusDomainToApi(fs domain.FileStatus) api.FileStatus {
	return api.FileStatus{
		Path:     fs.Path,
		Exists:   fs.Exists,
		Readable: fs.Readable,
	}
}

func MapStatusDomainToApi(snapshot domain.StatusSnapshot) api.Status {
	return api.Status{
		ActiveProfile:     snapshot.ActiveProfile,
		ActiveEnvironment: snapshot.ActiveEnvironment,
		BaseFile:          MapFileStatusDomainToApi(snapshot.BaseFile),
		CredentialsFile:   MapFileStatusDomainToApi(snapshot.CredentialsFile),
		ConfigFile:        MapFileStatusDomainToApi(snapshot.ConfigFile),
		ProfileCount:      snapshot.ProfileCount,
		EnvironmentCount:  snapshot.EnvironmentCount,
	}
}
