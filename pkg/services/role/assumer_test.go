package role

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"github.com/de-tools/aws-profile-manager/pkg/store/awsfile"
)

type mockSTS struct {
	mock.Mock
}

func (m *mockSTS) AssumeRole(
	ctx context.Context,
	params *sts.AssumeRoleInput,
	optFns ...func(*sts.Options),
) (*sts.AssumeRoleOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.AssumeRoleOutput), args.Error(1)
}

func testPaths(t *testing.T) domain.Paths {
	t.Helper()
	dir := t.TempDir()
	return domain.Paths{
		CredentialsFile: filepath.Join(dir, "credentials"),
		ConfigFile:      filepath.Join(dir, "config"),
	}
}

func TestAssumeRole_SavesProfileWithExpiration(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	expiration := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	client := new(mockSTS)
	client.On("AssumeRole", mock.Anything, mock.MatchedBy(func(in *sts.AssumeRoleInput) bool {
		return aws.ToString(in.RoleArn) == "arn:aws:iam::123:role/Deploy" &&
			aws.ToString(in.RoleSessionName) == "deploy-session" &&
			aws.ToInt32(in.DurationSeconds) == 3600
	})).Return(&sts.AssumeRoleOutput{
		Credentials: &ststypes.Credentials{
			AccessKeyId:     aws.String("ASIA_TEMP"),
			SecretAccessKey: aws.String("TEMP_SECRET"),
			SessionToken:    aws.String("TEMP_TOKEN"),
			Expiration:      aws.Time(expiration),
		},
	}, nil)

	assumer := NewAssumer(client, paths)
	creds, err := assumer.AssumeRole(ctx,
		domain.RoleSpec{RoleARN: "arn:aws:iam::123:role/Deploy"}, "deploy-session", "assumed-deploy")
	require.NoError(t, err)
	assert.Equal(t, "ASIA_TEMP", creds.AccessKeyID)
	assert.Equal(t, expiration, creds.Expiration)

	credsFile, err := awsfile.Load(paths.CredentialsFile)
	require.NoError(t, err)
	section := credsFile.Section("assumed-deploy")
	assert.Equal(t, "TEMP_TOKEN", section.Key("aws_session_token").String())
	assert.Equal(t, expiration.Format(time.RFC3339), section.Key("aws_expiration").String())

	client.AssertExpectations(t)
}

func TestAssumeRole_MissingInput(t *testing.T) {
	assumer := NewAssumer(new(mockSTS), testPaths(t))
	_, err := assumer.AssumeRole(context.Background(), domain.RoleSpec{}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveAssumedProfile(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	require.NoError(t, os.WriteFile(paths.CredentialsFile, []byte(`[assumed-deploy]
aws_access_key_id = ASIA
aws_secret_access_key = SECRET
`), 0o600))

	assumer := NewAssumer(new(mockSTS), paths)
	require.NoError(t, assumer.RemoveAssumedProfile(ctx, "assumed-deploy"))

	err := assumer.RemoveAssumedProfile(ctx, "assumed-deploy")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCleanExpired(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	require.NoError(t, os.WriteFile(paths.CredentialsFile, []byte(`[permanent]
aws_access_key_id = AKIA
aws_secret_access_key = SECRET

[stale]
aws_access_key_id = ASIA1
aws_secret_access_key = S1
aws_expiration = `+past+`

[fresh]
aws_access_key_id = ASIA2
aws_secret_access_key = S2
aws_expiration = `+future+`

[garbled]
aws_access_key_id = ASIA3
aws_secret_access_key = S3
aws_expiration = not-a-timestamp
`), 0o600))

	assumer := NewAssumer(new(mockSTS), paths)
	removed, err := assumer.CleanExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	credsFile, err := awsfile.Load(paths.CredentialsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"permanent", "fresh"}, awsfile.SectionNames(credsFile))
}

func TestCleanExpired_NothingToDo(t *testing.T) {
	assumer := NewAssumer(new(mockSTS), testPaths(t))
	removed, err := assumer.CleanExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
}
