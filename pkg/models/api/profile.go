package api

type Profile struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Region string `json:"region,omitempty"`
	Active bool   `json:"active"`
}

type Environment struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type FileStatus struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Readable bool   `json:"readable"`
}

type Status struct {
	ActiveProfile     string     `json:"active_profile"`
	ActiveEnvironment string     `json:"active_environment"`
	BaseFile          FileStatus `json:"base_file"`
	CredentialsFile   FileStatus `json:"credentials_file"`
	ConfigFile        FileStatus `json:"config_file"`
	ProfileCount      int        `json:"profile_count"`
	EnvironmentCount  int        `json:"environment_count"`
}

type CreateCredentialsProfileRequest struct {
	Name            string `json:"name"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
	Region          string `json:"region,omitempty"`
}

type CreateRoleProfileRequest struct {
	Name            string `json:"name"`
	RoleARN         string `json:"role_arn"`
	SourceProfile   string `json:"source_profile"`
	Region          string `json:"region,omitempty"`
	ExternalID      string `json:"external_id,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

type UpdateCredentialsRequest struct {
	Name            string `json:"name"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
}

type AssumeRoleRequest struct {
	RoleARN         string `json:"role_arn"`
	SessionName     string `json:"session_name"`
	ExternalID      string `json:"external_id,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	ProfileName     string `json:"profile_name,omitempty"`
}

type AssumedCredentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token"`
	Expiration      string `json:"expiration"`
}

type Result struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
