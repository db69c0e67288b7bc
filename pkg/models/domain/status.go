package domain

// Paths locates the three files every operation works against. Injected at
// construction time, never derived from a hard-coded home directory.
type Paths struct {
	BaseFile        string
	CredentialsFile string
	ConfigFile      string
}

type FileStatus struct {
	Path     string
	Exists   bool
	Readable bool
}

// ActiveUnknown is reported when the default section matches no known
// profile or environment.
const ActiveUnknown = "Unknown"

type StatusSnapshot struct {
	ActiveProfile     string
	ActiveEnvironment string
	BaseFile          FileStatus
	CredentialsFile   FileStatus
	ConfigFile        FileStatus
	ProfileCount      int
	EnvironmentCount  int
}
