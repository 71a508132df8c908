package ast

// StatementKind identifies the kind of a macro body statement.
type StatementKind string

const (
	StatementKindOpcode          StatementKind = "opcode"
	StatementKindLiteral         StatementKind = "literal"
	StatementKindCode            StatementKind = "code"
	StatementKindConstant        StatementKind = "constant"
	StatementKindMacroInvocation StatementKind = "macroInvocation"
	StatementKindLabelDefinition StatementKind = "labelDefinition"
	StatementKindLabelCall       StatementKind = "labelCall"
	StatementKindArgCall         StatementKind = "argCall"
)

// Statement is a single statement of a macro body. The set of statement types is closed, the unexported method keeps
// other packages from adding to it.
type Statement interface {
	Kind() StatementKind
	isStatement()
}

// Statement types.
type (
	// OpcodeStatement is an opcode mnemonic such as "mstore".
	OpcodeStatement struct{ Opcode string }

	// LiteralStatement is a hex literal that is pushed onto the stack, e.g. "0x2a".
	LiteralStatement struct{ Value string }

	// CodeStatement is raw, already encoded hex code emitted verbatim.
	CodeStatement struct{ Code string }

	// ConstantStatement references a constant by name, e.g. "[OWNER_SLOT]".
	ConstantStatement struct{ Name string }

	// MacroInvocation invokes another macro by name. The invoked macro's code is copied into the caller.
	MacroInvocation struct {
		MacroName string
		Args      []string
	}

	// LabelDefinition defines a jump label.
	LabelDefinition struct{ Name string }

	// LabelCall references a jump label.
	LabelCall struct{ Name string }

	// ArgCall references a macro argument, e.g. "<value>".
	ArgCall struct{ Name string }
)

func (OpcodeStatement) Kind() StatementKind   { return StatementKindOpcode }
func (LiteralStatement) Kind() StatementKind  { return StatementKindLiteral }
func (CodeStatement) Kind() StatementKind     { return StatementKindCode }
func (ConstantStatement) Kind() StatementKind { return StatementKindConstant }
func (MacroInvocation) Kind() StatementKind   { return StatementKindMacroInvocation }
func (LabelDefinition) Kind() StatementKind   { return StatementKindLabelDefinition }
func (LabelCall) Kind() StatementKind         { return StatementKindLabelCall }
func (ArgCall) Kind() StatementKind           { return StatementKindArgCall }

func (OpcodeStatement) isStatement()   {}
func (LiteralStatement) isStatement()  {}
func (CodeStatement) isStatement()     {}
func (ConstantStatement) isStatement() {}
func (MacroInvocation) isStatement()   {}
func (LabelDefinition) isStatement()   {}
func (LabelCall) isStatement()         {}
func (ArgCall) isStatement()           {}
