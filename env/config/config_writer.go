package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iterum-provenance/dbt-runner/logging"
)

// Writer is the structure responsible for placing the custom
// profiles document into the fetched dbt project
type Writer struct {
	Profile *Profile // nillable, nothing gets written without a profile
	log     logging.Logger
}

// NewWriter parses the passed profile document and instantiates a Writer for it.
// An empty document results in a Writer that does nothing.
func NewWriter(document string, logger logging.Logger) (Writer, error) {
	if document == "" {
		return Writer{log: logger}, nil
	}
	prof := &Profile{}
	if err := prof.FromString(document); err != nil {
		return Writer{}, fmt.Errorf("invalid custom profile: %w", err)
	}
	return Writer{Profile: prof, log: logger}, nil
}

// Write stores the profile as profiles.yml inside projectDir
func (w Writer) Write(projectDir string) error {
	if w.Profile == nil {
		w.log.Debugln("No custom profile submitted, relying on the profile of the project")
		return nil
	}
	if _, err := os.Stat(projectDir); err != nil {
		return fmt.Errorf("cannot write custom profile: %w", err)
	}
	target := filepath.Join(projectDir, ProfileFileName)
	if err := os.WriteFile(target, []byte(w.Profile.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write custom profile: %w", err)
	}
	w.log.Infof("Custom profile(s) %v written to %v", w.Profile.Names(), target)
	return nil
}
