// Package codegen lowers a resolved Huff syntax tree into EVM bytecode. It expands macros into flat byte sequences,
// resolves constants into push instructions, assembles deployment bytecode and generates the contract interface.
package codegen

import (
	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/artifacts"
	"github.com/crytic/huffgen/ast"
	"github.com/crytic/huffgen/bytecode"
	"github.com/crytic/huffgen/logging"
	"github.com/crytic/huffgen/logging/colors"
	"github.com/google/uuid"
)

const (
	// ConstructorMacroName is the name of the macro holding the constructor code.
	ConstructorMacroName = "CONSTRUCTOR"
	// MainMacroName is the name of the macro holding the runtime code.
	MainMacroName = "MAIN"
)

// Codegen is a code generation session. It owns the artifact it accumulates and optionally caches a syntax tree
// that is used whenever an operation is not given one. A Codegen is not safe for concurrent use.
type Codegen struct {
	// AST is the cached syntax tree, used when an operation is passed a nil contract.
	AST *ast.Contract

	// MainBytecode is the runtime bytecode from the first successful Roll, if any.
	MainBytecode *string

	// ConstructorBytecode is the constructor bytecode from the first successful Construct, if any.
	ConstructorBytecode *string

	// Events describes the event emitters of the session.
	Events CodegenEvents

	// store accumulates the session's artifact.
	store *artifacts.Store

	// logger describes the session's logger, tagged with a unique session id.
	logger *logging.Logger
}

// NewCodegen creates a new code generation session without a cached syntax tree.
func NewCodegen() *Codegen {
	return &Codegen{
		store: artifacts.NewStore(),
		logger: logging.GlobalLogger.
			NewSubLogger("module", logging.CODEGEN_SERVICE).
			NewSubLogger("session", uuid.New().String()),
	}
}

// GracefulASTGrab returns contract if it is not nil, otherwise the session's cached syntax tree. It fails with
// MissingAst if neither exists.
func (c *Codegen) GracefulASTGrab(contract *ast.Contract) (*ast.Contract, error) {
	if contract != nil {
		return contract, nil
	}
	if c.AST != nil {
		return c.AST, nil
	}
	c.logger.Error("Neither a syntax tree was cached on the session nor passed in")
	return nil, newCodegenError(MissingAst, "", nil)
}

// Construct expands the CONSTRUCTOR macro into the constructor bytecode. The first successful result is cached in
// ConstructorBytecode and returned by every later call.
func (c *Codegen) Construct(contract *ast.Contract) (string, error) {
	if c.ConstructorBytecode != nil {
		return *c.ConstructorBytecode, nil
	}
	code, err := c.expandEntryPoint(contract, ConstructorMacroName, MissingConstructor)
	if err != nil {
		return "", err
	}
	c.ConstructorBytecode = &code
	return code, nil
}

// Roll expands the MAIN macro into the runtime bytecode. The first successful result is cached in MainBytecode and
// returned by every later call.
func (c *Codegen) Roll(contract *ast.Contract) (string, error) {
	if c.MainBytecode != nil {
		return *c.MainBytecode, nil
	}
	code, err := c.expandEntryPoint(contract, MainMacroName, MissingMain)
	if err != nil {
		return "", err
	}
	c.MainBytecode = &code
	return code, nil
}

// expandEntryPoint expands the named top-level macro, failing with missingKind if the contract does not define it.
func (c *Codegen) expandEntryPoint(contract *ast.Contract, name string, missingKind CodegenErrorKind) (string, error) {
	contract, err := c.GracefulASTGrab(contract)
	if err != nil {
		return "", err
	}

	macro := contract.FindMacroByName(name)
	if macro == nil {
		c.logger.Error(colors.Bold, name, colors.Reset, " macro definition missing in syntax tree")
		return "", newCodegenError(missingKind, name, nil)
	}
	c.logger.Debug("Found ", colors.Bold, name, colors.Reset, " macro with ", len(macro.Statements), " statements")

	units, err := c.ExpandMacro(macro, contract)
	if err != nil {
		return "", err
	}
	code := bytecode.Join(units)
	c.logger.Trace(name, " bytecode: ", code)
	return code, nil
}

// Generate runs a whole generation session: it rolls the runtime code, constructs the constructor code, assembles
// the deployment bytecode with the given constructor arguments and generates the interface. It returns a copy of the
// resulting artifact.
func (c *Codegen) Generate(contract *ast.Contract, args []abiutils.ConstructorArg) (*artifacts.Artifact, error) {
	contract, err := c.GracefulASTGrab(contract)
	if err != nil {
		return nil, err
	}

	runtime, err := c.Roll(contract)
	if err != nil {
		return nil, err
	}
	constructor, err := c.Construct(contract)
	if err != nil {
		return nil, err
	}
	if _, err = c.Churn(args, runtime, constructor); err != nil {
		return nil, err
	}
	if _, err = c.AbiGen(contract, ""); err != nil {
		return nil, err
	}

	artifact := c.store.Artifact()
	c.logger.Info("Generated ", colors.Bold, len(artifact.Bytecode)/2, colors.Reset, " bytes of deployment bytecode (",
		len(artifact.Runtime)/2, " bytes runtime)")
	return artifact.Clone(), nil
}

// Artifact returns a copy of the session's artifact, or nil if nothing has been generated yet.
func (c *Codegen) Artifact() *artifacts.Artifact {
	if artifact := c.store.Artifact(); artifact != nil {
		return artifact.Clone()
	}
	return nil
}

// Export writes the session's artifact to path. If nothing has been generated yet, nothing is written and
// artifacts.ExportResultNothingToExport is returned without an error.
func (c *Codegen) Export(path string) (artifacts.ExportResult, error) {
	result, err := c.store.Export(path)
	if err != nil {
		return result, err
	}

	err = c.Events.ArtifactExported.Publish(ArtifactExportedEvent{Codegen: c, Path: path, Result: result})
	return result, err
}
