// Package profile persists named signature profiles as one JSON file each.
// Profile names must be safe filesystem path segments; writes go through a
// temp file and an atomic rename so a crashed save never corrupts a profile.
package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/xob0t/GoSignature/pkg/signature"
)

// namePattern allows letters, digits, spaces, hyphens and underscores.
// Anything else (path separators, dots, reserved characters) is rejected
// outright rather than silently stripped, so a saved profile can always be
// found again under the exact name it was saved with.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// Store manages the profiles directory.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) the profiles directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create profiles dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory profiles are stored in.
func (s *Store) Dir() string { return s.dir }

// ValidateName checks that a profile name is non-empty and a safe path
// segment. Returns the trimmed name.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &signature.ValidationError{
			Field:  "profile",
			Value:  name,
			Reason: "profile name cannot be empty",
		}
	}
	if !namePattern.MatchString(trimmed) {
		return "", &signature.ValidationError{
			Field:  "profile",
			Value:  name,
			Reason: "profile name may contain only letters, digits, spaces, hyphens and underscores",
		}
	}
	return trimmed, nil
}

// Save writes the profile for name, replacing any previous content
// atomically (temp file plus rename).
func (s *Store) Save(name string, data *signature.SignatureData) error {
	trimmed, err := ValidateName(name)
	if err != nil {
		return err
	}

	record := data.ToProfile(trimmed)
	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode profile")
	}
	encoded = append(encoded, '\n')

	target := s.path(trimmed)
	tmp := target + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return errors.Wrapf(err, "write profile %s", trimmed)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "replace profile %s", trimmed)
	}
	return nil
}

// Load reads the profile for name and rebuilds validated signature data.
// defaultWebsite fills a blank website field, matching fresh input.
func (s *Store) Load(name, defaultWebsite string) (*signature.SignatureData, error) {
	trimmed, err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path(trimmed))
	if err != nil {
		return nil, errors.Wrapf(err, "read profile %q", trimmed)
	}

	var record signature.Profile
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Wrapf(err, "parse profile %q", trimmed)
	}

	data, err := signature.FromProfile(record, defaultWebsite)
	if err != nil {
		return nil, errors.Wrapf(err, "profile %q holds invalid data", trimmed)
	}
	return data, nil
}

// Exists reports whether a profile with this name is stored.
func (s *Store) Exists(name string) bool {
	trimmed, err := ValidateName(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(s.path(trimmed))
	return err == nil && info.Mode().IsRegular()
}

// List returns the stored profile names, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list profiles in %s", s.dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the profile for name.
func (s *Store) Delete(name string) error {
	trimmed, err := ValidateName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(s.path(trimmed)); err != nil {
		return errors.Wrapf(err, "delete profile %q", trimmed)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
