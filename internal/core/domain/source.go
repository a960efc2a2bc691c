package domain

import (
	"fmt"

	"github.com/thushan/llmsource/internal/core/constants"
)

type SourceID string

type VendorID string

const VendorLocalAI VendorID = constants.VendorLocalAI

// Source is one configured model provider instance
type Source struct {
	ID       SourceID      `json:"id" yaml:"id"`
	Label    string        `json:"label" yaml:"label"`
	VendorID VendorID      `json:"vendor" yaml:"vendor"`
	Setup    *LocalAISetup `json:"setup,omitempty" yaml:"setup,omitempty"`
}

func (s *Source) GetDisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return string(s.ID)
}

// LocalAISetup is the provider specific configuration bound to a LocalAI source.
type LocalAISetup struct {
	HostURL string `json:"host_url" yaml:"host_url" mapstructure:"host_url"`
}

// SetupPatch carries a partial setup, nil fields are left untouched on merge.
type SetupPatch struct {
	HostURL *string
}

// defaultHostURL is what an absent host URL normalises to. It can be
// overridden once at startup from configuration.
var defaultHostURL = ""

// SetDefaultHostURL replaces the host URL applied by DefaultLocalAISetup.
func SetDefaultHostURL(hostURL string) {
	defaultHostURL = hostURL
}

// DefaultLocalAISetup returns a complete setup with every field at its default.
func DefaultLocalAISetup() LocalAISetup {
	return LocalAISetup{
		HostURL: defaultHostURL,
	}
}

// NormalizeSetup turns a missing setup into a complete one. A stored setup
// is returned as is, an emptied host URL stays empty.
func NormalizeSetup(stored *LocalAISetup) LocalAISetup {
	if stored == nil {
		return DefaultLocalAISetup()
	}
	return *stored
}

// Apply merges the patch into the setup and reports whether anything changed.
func (s *LocalAISetup) Apply(patch SetupPatch) bool {
	changed := false
	if patch.HostURL != nil && *patch.HostURL != s.HostURL {
		s.HostURL = *patch.HostURL
		changed = true
	}
	return changed
}

func HostURLPatch(hostURL string) SetupPatch {
	return SetupPatch{HostURL: &hostURL}
}

type SourceNotFoundError struct {
	SourceID SourceID
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.SourceID)
}

func (s *Source) Clone() *Source {
	c := *s
	if s.Setup != nil {
		setup := *s.Setup
		c.Setup = &setup
	}
	return &c
}
