// Package role assumes IAM roles through STS and persists the temporary
// credentials as named profiles in the credentials file, so the rest of the
// tool (and the AWS CLI) can use them like any other profile.
package role

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/store/awsfile"
)

const defaultDurationSeconds = 3600

// STSClient is the slice of the STS API the assumer needs.
type STSClient interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

type AssumedCredentials struct {
	domain.Credentials
	Expiration time.Time
}

type Assumer struct {
	client STSClient
	paths  domain.Paths
}

func NewAssumer(client STSClient, paths domain.Paths) *Assumer {
	return &Assumer{client: client, paths: paths}
}

// NewSTSClient builds a real STS client from the ambient AWS configuration.
func NewSTSClient(ctx context.Context) (STSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return sts.NewFromConfig(cfg), nil
}

// AssumeRole calls STS and, when profileName is non-empty, saves the
// temporary credentials under that profile with an aws_expiration marker so
// CleanExpired can reap them later.
func (a *Assumer) AssumeRole(ctx context.Context, spec domain.RoleSpec, sessionName, profileName string) (*AssumedCredentials, error) {
	if spec.RoleARN == "" || sessionName == "" {
		return nil, domain.InvalidInputf("role_arn and session_name are required")
	}

	duration := spec.DurationSeconds
	if duration <= 0 {
		duration = defaultDurationSeconds
	}
	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(spec.RoleARN),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(int32(duration)),
	}
	if spec.ExternalID != "" {
		input.ExternalId = aws.String(spec.ExternalID)
	}

	out, err := a.client.AssumeRole(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("assuming role %s: %w", spec.RoleARN, err)
	}

	creds := &AssumedCredentials{
		Credentials: domain.Credentials{
			AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
			SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
			SessionToken:    aws.ToString(out.Credentials.SessionToken),
		},
		Expiration: aws.ToTime(out.Credentials.Expiration),
	}

	if profileName != "" {
		if err := a.saveProfile(profileName, creds); err != nil {
			return nil, err
		}
	}
	return creds, nil
}

// RemoveAssumedProfile deletes a previously saved assumed-role profile.
func (a *Assumer) RemoveAssumedProfile(_ context.Context, profileName string) error {
	credsFile, err := awsfile.Load(a.paths.CredentialsFile)
	if err != nil {
		return err
	}
	if !awsfile.HasSection(credsFile, profileName) {
		return domain.NotFoundf("profile %q", profileName)
	}
	credsFile.DeleteSection(profileName)
	return awsfile.Save(credsFile, a.paths.CredentialsFile)
}

// CleanExpired removes every credentials-file section whose aws_expiration
// lies in the past. Sections without the marker are left alone. Returns the
// number of sections removed.
func (a *Assumer) CleanExpired(_ context.Context) (int, error) {
	credsFile, err := awsfile.LoadOrEmpty(a.paths.CredentialsFile)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	var doomed []string
	for _, name := range awsfile.SectionNames(credsFile) {
		raw := credsFile.Section(name).Key(awsfile.KeyExpiration).String()
		if raw == "" {
			continue
		}
		expiration, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil || expiration.Before(now) {
			doomed = append(doomed, name)
		}
	}
	if len(doomed) == 0 {
		return 0, nil
	}
	for _, name := range doomed {
		credsFile.DeleteSection(name)
	}
	if err := awsfile.Save(credsFile, a.paths.CredentialsFile); err != nil {
		return 0, err
	}
	return len(doomed), nil
}

func (a *Assumer) saveProfile(name string, creds *AssumedCredentials) error {
	credsFile, err := awsfile.LoadOrEmpty(a.paths.CredentialsFile)
	if err != nil {
		return err
	}
	section := credsFile.Section(name)
	awsfile.SetCredentials(section, creds.Credentials)
	section.Key(awsfile.KeyExpiration).SetValue(creds.Expiration.UTC().Format(time.RFC3339))
	return awsfile.Save(credsFile, a.paths.CredentialsFile)
}
