// Package artifacts holds the output record of a code generation session and handles exporting it to disk.
package artifacts

import (
	"encoding/json"
	"path/filepath"

	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/utils"
	"github.com/pkg/errors"
)

// Artifact is the accumulated output of a code generation session.
type Artifact struct {
	// Bytecode is the full deployment payload: constructor code, bootstrap, runtime code and encoded constructor
	// arguments, as a hex string.
	Bytecode string `json:"bytecode"`

	// Runtime is the runtime-only code as a hex string.
	Runtime string `json:"runtime"`

	// Abi describes the contract interface, if one has been generated.
	Abi *abiutils.Abi `json:"abi,omitempty"`
}

// Clone returns a copy of the artifact which shares no ABI entries with the original.
func (a *Artifact) Clone() *Artifact {
	clone := *a
	if a.Abi != nil {
		entries := make([]abiutils.Entry, len(a.Abi.Entries))
		copy(entries, a.Abi.Entries)
		clone.Abi = &abiutils.Abi{Entries: entries}
	}
	return &clone
}

// ExportResult describes the outcome of an export.
type ExportResult int

const (
	// ExportResultNothingToExport indicates that no artifact existed, so nothing was written.
	ExportResultNothingToExport ExportResult = iota
	// ExportResultWritten indicates that the artifact was written to the output location.
	ExportResultWritten
)

// String returns a human-readable name for the result.
func (r ExportResult) String() string {
	switch r {
	case ExportResultWritten:
		return "written"
	case ExportResultNothingToExport:
		return "nothing to export"
	default:
		return "unknown"
	}
}

// WriteToFile serializes the artifact as indented JSON to the provided path, creating parent directories as needed.
func (a *Artifact) WriteToFile(path string) error {
	b, err := json.MarshalIndent(a, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	file, err := utils.CreateFile(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err = file.Write(b); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// ReadArtifactFromFile reads a JSON-serialized Artifact from the provided path.
func ReadArtifactFromFile(path string) (*Artifact, error) {
	b, err := utils.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact Artifact
	if err = json.Unmarshal(b, &artifact); err != nil {
		return nil, errors.WithStack(err)
	}
	return &artifact, nil
}
