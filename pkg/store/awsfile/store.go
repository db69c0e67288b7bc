// Package awsfile reads and writes AWS CLI style INI files. Section and key
// order survive a load/save cycle, as do comments attached to sections and
// keys. The one normalization applied on save is key/value spacing: ini.v1
// emits `key = value` regardless of the original spacing.
package awsfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const (
	// ProfilePrefix marks non-default profile sections in the AWS config
	// file, e.g. `[profile dev]`.
	ProfilePrefix = "profile "

	DefaultSection = "default"

	KeyAccessKeyID     = "aws_access_key_id"
	KeySecretAccessKey = "aws_secret_access_key"
	KeySessionToken    = "aws_session_token"
	KeyRegion          = "region"
	KeyOutput          = "output"
	KeyRoleARN         = "role_arn"
	KeySourceProfile   = "source_profile"
	KeyExternalID      = "external_id"
	KeyDurationSeconds = "duration_seconds"
	KeyExpiration      = "aws_expiration"
)

// Secret keys and session tokens may contain '#' and ';', so inline
// comment parsing has to stay off.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// Load parses the file at path. A missing file is domain.ErrNotFound,
// malformed content is domain.ErrParse.
func Load(path string) (*ini.File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NotFoundf("file %s", path)
		}
		return nil, domain.NotFoundf("file %s: %v", path, err)
	}
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, domain.ParseErrorf("parsing %s: %v", path, err)
	}
	return cfg, nil
}

// LoadOrEmpty behaves like Load but treats a missing file as an empty one,
// for operations that create the file on first save.
func LoadOrEmpty(path string) (*ini.File, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return ini.Empty(loadOptions), nil
	}
	return nil, err
}

// Save writes cfg to path via an atomic replace: the content goes to a
// temp file in the same directory first, then renames into place, so a
// crash mid-write never leaves a half-written file behind.
func Save(cfg *ini.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return domain.WriteErrorf("creating %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return domain.WriteErrorf("creating temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := cfg.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.WriteErrorf("writing %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.WriteErrorf("closing %s: %v", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return domain.WriteErrorf("setting mode on %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return domain.WriteErrorf("replacing %s: %v", path, err)
	}
	return nil
}

// SectionNames returns the named sections in file order, skipping ini.v1's
// synthetic default section.
func SectionNames(cfg *ini.File) []string {
	var names []string
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, section.Name())
	}
	return names
}

// HasSection reports whether a section with the exact name exists.
// ini.v1's Section() auto-creates, so existence checks go through here.
func HasSection(cfg *ini.File, name string) bool {
	for _, section := range cfg.Sections() {
		if section.Name() == name {
			return true
		}
	}
	return false
}

// ProfileSectionName maps a logical profile name to its config-file
// section header. The default profile is the only one without the prefix.
func ProfileSectionName(name string) string {
	if name == DefaultSection {
		return DefaultSection
	}
	return ProfilePrefix + name
}

// ProfileNameFromSection is the inverse of ProfileSectionName; ok is false
// for sections that are not profile sections at all.
func ProfileNameFromSection(section string) (string, bool) {
	if section == DefaultSection {
		return DefaultSection, true
	}
	if strings.HasPrefix(section, ProfilePrefix) {
		name := strings.TrimSpace(strings.TrimPrefix(section, ProfilePrefix))
		if name != "" {
			return name, true
		}
	}
	return "", false
}

// CopySection replaces the destination section's keys with the source's,
// preserving the destination's position in the file and the source key order.
func CopySection(dst *ini.File, dstName string, src *ini.Section) {
	out := dst.Section(dstName)
	for _, name := range out.KeyStrings() {
		out.DeleteKey(name)
	}
	for _, key := range src.Keys() {
		out.NewKey(key.Name(), key.Value())
	}
}

// SectionCredentials extracts the credential keys from a section.
func SectionCredentials(section *ini.Section) domain.Credentials {
	return domain.Credentials{
		AccessKeyID:     section.Key(KeyAccessKeyID).String(),
		SecretAccessKey: section.Key(KeySecretAccessKey).String(),
		SessionToken:    section.Key(KeySessionToken).String(),
	}
}

// SetCredentials writes the credential keys into a section, dropping the
// session token key when empty.
func SetCredentials(section *ini.Section, creds domain.Credentials) {
	section.Key(KeyAccessKeyID).SetValue(creds.AccessKeyID)
	section.Key(KeySecretAccessKey).SetValue(creds.SecretAccessKey)
	if creds.SessionToken != "" {
		section.Key(KeySessionToken).SetValue(creds.SessionToken)
	} else {
		section.DeleteKey(KeySessionToken)
	}
}
