package config

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ProfileFileName is the name dbt looks for in its profiles directory
const ProfileFileName = "profiles.yml"

// Profile is a parsed dbt profiles document.
// This can be set via the environment variable DBT_CUSTOM_PROFILE
type Profile struct {
	Profiles map[string]ProfileEntry // profile name -> entry
	Global   map[string]interface{}  // nillable, the top-level `config:` block
	raw      string
}

// ProfileEntry is a single named profile of the document
type ProfileEntry struct {
	Target  string                            `yaml:"target"`
	Outputs map[string]map[string]interface{} `yaml:"outputs"`
}

// FromString converts a string value into an instance of Profile and also does validation
func (prof *Profile) FromString(stringified string) (err error) {
	var placeholder map[string]yaml.Node
	if err = yaml.Unmarshal([]byte(stringified), &placeholder); err != nil {
		return err
	}
	if len(placeholder) == 0 {
		return errors.New("profile document is empty")
	}

	prof.Profiles = map[string]ProfileEntry{}
	prof.Global = nil
	for name, node := range placeholder {
		if name == "config" {
			if err = node.Decode(&prof.Global); err != nil {
				return fmt.Errorf("profile config block: %w", err)
			}
			continue
		}
		var entry ProfileEntry
		if err = node.Decode(&entry); err != nil {
			return fmt.Errorf("profile '%v': %w", name, err)
		}
		prof.Profiles[name] = entry
	}
	prof.raw = stringified
	return prof.Validate()
}

// Validate does validation of a profile struct,
// ensuring that every profile has outputs and that its target is one of them
func (prof Profile) Validate() error {
	if len(prof.Profiles) == 0 {
		return errors.New("profile document defines no profiles")
	}
	for _, name := range prof.Names() {
		entry := prof.Profiles[name]
		if len(entry.Outputs) == 0 {
			return fmt.Errorf("profile '%v' has no outputs", name)
		}
		if entry.Target != "" {
			if _, ok := entry.Outputs[entry.Target]; !ok {
				return fmt.Errorf("profile '%v' targets unknown output '%v'", name, entry.Target)
			}
		}
	}
	return nil
}

// Names returns the sorted profile names
func (prof Profile) Names() (names []string) {
	for name := range prof.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// String returns the document as it was passed in
func (prof Profile) String() string {
	return prof.raw
}
