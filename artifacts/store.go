package artifacts

import (
	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/logging"
	"github.com/crytic/huffgen/logging/colors"
)

// Store accumulates the artifact of a generation session. The artifact is created by the first write, whichever
// aspect it sets, and every later write replaces only its own fields. Writes are therefore order-independent and
// idempotent. A Store is not safe for concurrent use.
type Store struct {
	artifact *Artifact
	logger   *logging.Logger
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		logger: logging.GlobalLogger.NewSubLogger("module", logging.ARTIFACT_SERVICE),
	}
}

// ensure returns the artifact, creating it if absent.
func (s *Store) ensure() *Artifact {
	if s.artifact == nil {
		s.artifact = &Artifact{}
	}
	return s.artifact
}

// SetBytecode sets the deployment and runtime bytecode, leaving the ABI untouched.
func (s *Store) SetBytecode(bytecode string, runtime string) *Artifact {
	artifact := s.ensure()
	artifact.Bytecode = bytecode
	artifact.Runtime = runtime
	return artifact
}

// SetAbi sets the interface description, leaving the bytecode fields untouched.
func (s *Store) SetAbi(abi *abiutils.Abi) *Artifact {
	artifact := s.ensure()
	artifact.Abi = abi
	return artifact
}

// Artifact returns the current artifact, or nil if nothing has been written yet.
func (s *Store) Artifact() *Artifact {
	return s.artifact
}

// Export writes the current artifact to path. If no artifact has been created yet, nothing is written and
// ExportResultNothingToExport is returned without an error.
func (s *Store) Export(path string) (ExportResult, error) {
	if s.artifact == nil {
		s.logger.Warn("No compile artifact exists yet, nothing was exported to ", colors.Bold, path, colors.Reset)
		return ExportResultNothingToExport, nil
	}

	if err := s.artifact.WriteToFile(path); err != nil {
		s.logger.Error("Failed to export the compile artifact", err)
		return ExportResultNothingToExport, err
	}
	s.logger.Debug("Exported the compile artifact to ", colors.Bold, path, colors.Reset)
	return ExportResultWritten, nil
}
