package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/aws-profile-manager/pkg/models/api"
	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
)

type mockManager struct {
	mock.Mock
}

func (m *mockManager) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *mockManager) CreateCredentialsProfile(
	ctx context.Context,
	name string,
	creds domain.Credentials,
	region string,
) (*domain.Profile, error) {
	args := m.Called(ctx, name, creds, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockManager) CreateRoleProfile(
	ctx context.Context,
	name string,
	spec domain.RoleSpec,
) (*domain.Profile, error) {
	args := m.Called(ctx, name, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockManager) SwitchProfile(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockManager) RemoveProfile(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockManager) UpdateCredentials(ctx context.Context, name string, creds domain.Credentials) error {
	return m.Called(ctx, name, creds).Error(0)
}

func (m *mockManager) ListEnvironments(ctx context.Context) ([]domain.Environment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Environment), args.Error(1)
}

func (m *mockManager) SyncCredentials(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockManager) ForceRefresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockManager) CleanConfig(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockManager) ForceCleanReset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockManager) GetStatus(ctx context.Context) domain.StatusSnapshot {
	return m.Called(ctx).Get(0).(domain.StatusSnapshot)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	mockMgr := new(mockManager)
	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Manager: mockMgr,
			Logger:  logger,
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:   "GetStatus",
			method: http.MethodGet,
			path:   "/api/v1/status",
			setupMocks: func() {
				mockMgr.On("GetStatus", mock.Anything).Return(domain.StatusSnapshot{
					ActiveProfile:     "dev",
					ActiveEnvironment: "dev",
					BaseFile:          domain.FileStatus{Path: "/tmp/base", Exists: true, Readable: true},
					CredentialsFile:   domain.FileStatus{Path: "/tmp/credentials", Exists: true, Readable: true},
					ConfigFile:        domain.FileStatus{Path: "/tmp/config"},
					ProfileCount:      2,
					EnvironmentCount:  3,
				}).Once()
			},
			expectedStatus: http.StatusOK,
			expected: api.Status{
				ActiveProfile:     "dev",
				ActiveEnvironment: "dev",
				BaseFile:          api.FileStatus{Path: "/tmp/base", Exists: true, Readable: true},
				CredentialsFile:   api.FileStatus{Path: "/tmp/credentials", Exists: true, Readable: true},
				ConfigFile:        api.FileStatus{Path: "/tmp/config"},
				ProfileCount:      2,
				EnvironmentCount:  3,
			},
			parseResponse: unmarshalResponse[api.Status](),
		},
		{
			name:   "ListProfiles",
			method: http.MethodGet,
			path:   "/api/v1/profiles",
			setupMocks: func() {
				mockMgr.On("ListProfiles", mock.Anything).Return([]domain.Profile{
					{Name: "dev", Kind: domain.ProfileKindCredentials, Active: true},
					{Name: "deploy", Kind: domain.ProfileKindRole, Region: "eu-west-1"},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected: []api.Profile{
				{Name: "dev", Kind: "credentials", Active: true},
				{Name: "deploy", Kind: "role", Region: "eu-west-1"},
			},
			parseResponse: unmarshalResponse[[]api.Profile](),
		},
		{
			name:   "CreateCredentialsProfile",
			method: http.MethodPost,
			path:   "/api/v1/profiles",
			body: api.CreateCredentialsProfileRequest{
				Name:            "dev",
				AccessKeyID:     "AKIA",
				SecretAccessKey: "SECRET",
				Region:          "us-west-2",
			},
			setupMocks: func() {
				mockMgr.On("CreateCredentialsProfile", mock.Anything, "dev",
					domain.Credentials{AccessKeyID: "AKIA", SecretAccessKey: "SECRET"}, "us-west-2").
					Return(&domain.Profile{
						Name:   "dev",
						Kind:   domain.ProfileKindCredentials,
						Region: "us-west-2",
					}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expected:       api.Profile{Name: "dev", Kind: "credentials", Region: "us-west-2"},
			parseResponse:  unmarshalResponse[api.Profile](),
		},
		{
			name:   "CreateCredentialsProfile_Duplicate",
			method: http.MethodPost,
			path:   "/api/v1/profiles",
			body:   api.CreateCredentialsProfileRequest{Name: "dev", AccessKeyID: "A", SecretAccessKey: "S"},
			setupMocks: func() {
				mockMgr.On("CreateCredentialsProfile", mock.Anything, "dev",
					domain.Credentials{AccessKeyID: "A", SecretAccessKey: "S"}, "").
					Return(nil, domain.DuplicateNamef("profile %q already exists", "dev")).Once()
			},
			expectedStatus: http.StatusConflict,
			expected:       api.Result{Status: "error", Message: `profile "dev" already exists: duplicate name`},
			parseResponse:  unmarshalResponse[api.Result](),
		},
		{
			name:   "SwitchProfile_NotFound",
			method: http.MethodPost,
			path:   "/api/v1/profiles/ghost/switch",
			setupMocks: func() {
				mockMgr.On("SwitchProfile", mock.Anything, "ghost").
					Return(domain.NotFoundf("profile %q", "ghost")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expected:       api.Result{Status: "error", Message: `profile "ghost": not found`},
			parseResponse:  unmarshalResponse[api.Result](),
		},
		{
			name:   "RemoveProfile_Active",
			method: http.MethodDelete,
			path:   "/api/v1/profiles/dev",
			setupMocks: func() {
				mockMgr.On("RemoveProfile", mock.Anything, "dev").
					Return(domain.ErrCannotRemoveActive).Once()
			},
			expectedStatus: http.StatusConflict,
			expected:       api.Result{Status: "error", Message: "cannot remove active profile"},
			parseResponse:  unmarshalResponse[api.Result](),
		},
		{
			name:   "ListEnvironments",
			method: http.MethodGet,
			path:   "/api/v1/environments",
			setupMocks: func() {
				mockMgr.On("ListEnvironments", mock.Anything).Return([]domain.Environment{
					{Name: "dev", Region: "us-west-2"},
					{Name: "prod"},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected: []api.Environment{
				{Name: "dev", Region: "us-west-2"},
				{Name: "prod"},
			},
			parseResponse: unmarshalResponse[[]api.Environment](),
		},
		{
			name:   "SyncEnvironment",
			method: http.MethodPost,
			path:   "/api/v1/environments/dev/sync",
			setupMocks: func() {
				mockMgr.On("SyncCredentials", mock.Anything, "dev").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected:       api.Result{Status: "ok", Message: "synced environment dev"},
			parseResponse:  unmarshalResponse[api.Result](),
		},
		{
			name:   "SyncEnvironment_MissingBase",
			method: http.MethodPost,
			path:   "/api/v1/environments/dev/sync",
			setupMocks: func() {
				mockMgr.On("SyncCredentials", mock.Anything, "dev").
					Return(domain.SourceFileMissingf("base file %s", "/tmp/base")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expected:       api.Result{Status: "error", Message: "base file /tmp/base: source file missing"},
			parseResponse:  unmarshalResponse[api.Result](),
		},
		{
			name:   "CleanConfig",
			method: http.MethodPost,
			path:   "/api/v1/config/clean",
			setupMocks: func() {
				mockMgr.On("CleanConfig", mock.Anything).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expected:       api.Result{Status: "ok", Message: "config cleaned"},
			parseResponse:  unmarshalResponse[api.Result](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			var body io.Reader
			if tc.body != nil {
				raw, err := json.Marshal(tc.body)
				require.NoError(t, err)
				body = bytes.NewReader(raw)
			}
			req, err := http.NewRequest(tc.method, testServer.URL+tc.path, body)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(raw)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}

	mockMgr.AssertExpectations(t)
}

func TestWebAPI_OptionalRoutesNotMountedWithoutClients(t *testing.T) {
	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Manager: new(mockManager),
			Logger:  zerolog.New(zerolog.NewTestWriter(t)),
		},
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/s3/buckets")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
