package codegen

import (
	"fmt"

	"github.com/pkg/errors"
)

// CodegenErrorKind describes the category of a code generation failure.
type CodegenErrorKind string

const (
	// MissingAst indicates that no syntax tree was passed in nor cached on the session.
	MissingAst CodegenErrorKind = "MissingAst"
	// MissingConstructor indicates that the syntax tree has no CONSTRUCTOR macro.
	MissingConstructor CodegenErrorKind = "MissingConstructor"
	// MissingMain indicates that the syntax tree has no MAIN macro.
	MissingMain CodegenErrorKind = "MissingMain"
	// MissingConstantDefinition indicates that a referenced constant has no definition.
	MissingConstantDefinition CodegenErrorKind = "MissingConstantDefinition"
	// MissingMacroDefinition indicates that an invoked macro has no definition.
	MissingMacroDefinition CodegenErrorKind = "MissingMacroDefinition"
	// FailedMacroRecursion indicates that the expansion of an invoked macro failed. The nested error is retained.
	FailedMacroRecursion CodegenErrorKind = "FailedMacroRecursion"
	// InvalidMacroStatement indicates a statement that cannot be expanded, e.g. an unresolved label.
	InvalidMacroStatement CodegenErrorKind = "InvalidMacroStatement"
	// CyclicMacroInvocation indicates that a macro invokes itself, directly or transitively.
	CyclicMacroInvocation CodegenErrorKind = "CyclicMacroInvocation"
	// InvalidConstantLiteral indicates a constant literal that does not fit a single push instruction.
	InvalidConstantLiteral CodegenErrorKind = "InvalidConstantLiteral"
	// InvalidBytecode indicates bytecode input which is not an even-length hex string.
	InvalidBytecode CodegenErrorKind = "InvalidBytecode"
	// BytecodeTooLarge indicates a size or offset which does not fit the two byte bootstrap immediates.
	BytecodeTooLarge CodegenErrorKind = "BytecodeTooLarge"
	// InvalidConstructorArgument indicates a constructor argument which could not be ABI-encoded.
	InvalidConstructorArgument CodegenErrorKind = "InvalidConstructorArgument"
	// InvalidAbiDeclaration indicates a function, event or error declaration which is not a valid ABI entry.
	InvalidAbiDeclaration CodegenErrorKind = "InvalidAbiDeclaration"
)

// CodegenError describes a code generation failure.
type CodegenError struct {
	// Kind describes the category of the failure.
	Kind CodegenErrorKind

	// Name is the macro, constant or path the failure concerns, if any.
	Name string

	// Err is the underlying failure, if any.
	Err error
}

// Sentinel errors for use with errors.Is. A CodegenError matches the sentinel of its kind.
var (
	ErrMissingAst                 = &CodegenError{Kind: MissingAst}
	ErrMissingConstructor         = &CodegenError{Kind: MissingConstructor}
	ErrMissingMain                = &CodegenError{Kind: MissingMain}
	ErrMissingConstantDefinition  = &CodegenError{Kind: MissingConstantDefinition}
	ErrMissingMacroDefinition     = &CodegenError{Kind: MissingMacroDefinition}
	ErrFailedMacroRecursion       = &CodegenError{Kind: FailedMacroRecursion}
	ErrInvalidMacroStatement      = &CodegenError{Kind: InvalidMacroStatement}
	ErrCyclicMacroInvocation      = &CodegenError{Kind: CyclicMacroInvocation}
	ErrInvalidConstantLiteral     = &CodegenError{Kind: InvalidConstantLiteral}
	ErrInvalidBytecode            = &CodegenError{Kind: InvalidBytecode}
	ErrBytecodeTooLarge           = &CodegenError{Kind: BytecodeTooLarge}
	ErrInvalidConstructorArgument = &CodegenError{Kind: InvalidConstructorArgument}
	ErrInvalidAbiDeclaration      = &CodegenError{Kind: InvalidAbiDeclaration}
)

// newCodegenError creates a CodegenError of the given kind, annotated with a stack trace.
func newCodegenError(kind CodegenErrorKind, name string, err error) error {
	return errors.WithStack(&CodegenError{Kind: kind, Name: name, Err: err})
}

// Error returns the error message.
func (e *CodegenError) Error() string {
	msg := string(e.Kind)
	if e.Name != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Name)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying failure.
func (e *CodegenError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a CodegenError of the same kind.
func (e *CodegenError) Is(target error) bool {
	t, ok := target.(*CodegenError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the outermost CodegenError in err's chain, and false if there is none.
func KindOf(err error) (CodegenErrorKind, bool) {
	var codegenErr *CodegenError
	if errors.As(err, &codegenErr) {
		return codegenErr.Kind, true
	}
	return "", false
}
