package domain

import "fmt"

type ProfileKind string

const (
	ProfileKindCredentials ProfileKind = "credentials"
	ProfileKindRole        ProfileKind = "role"
)

type Profile struct {
	Name   string
	Kind   ProfileKind
	Region string
	Active bool
}

func (p Profile) String() string {
	return fmt.Sprintf("%s:%s", p.Kind, p.Name)
}

type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

func (c Credentials) Valid() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

type RoleSpec struct {
	RoleARN         string
	SourceProfile   string
	Region          string
	ExternalID      string
	DurationSeconds int
}

type Environment struct {
	Name        string
	Region      string
	Credentials Credentials
}
