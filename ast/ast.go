// Package ast describes the resolved Huff syntax tree consumed by the code generator. The tree is produced by an
// external parser; the code generator treats it as immutable and complete.
package ast

// Contract is the root of a resolved syntax tree. Definitions are kept in declaration order and are looked up by a
// linear scan, so when several definitions share a name the first one wins.
type Contract struct {
	// Macros describes the macro definitions of the contract, including the CONSTRUCTOR and MAIN entry points.
	Macros []MacroDefinition `json:"macros"`

	// Constants describes the constant definitions of the contract.
	Constants []ConstantDefinition `json:"constants"`

	// Constructor describes the constructor interface, if one was declared.
	Constructor *FunctionDefinition `json:"constructor,omitempty"`

	// Functions describes the externally callable function interfaces.
	Functions []FunctionDefinition `json:"functions,omitempty"`

	// Events describes the declared event interfaces.
	Events []EventDefinition `json:"events,omitempty"`

	// Errors describes the declared custom error interfaces.
	Errors []ErrorDefinition `json:"errors,omitempty"`
}

// FindMacroByName returns the first macro definition with the given name, or nil if none exists.
func (c *Contract) FindMacroByName(name string) *MacroDefinition {
	for i := range c.Macros {
		if c.Macros[i].Name == name {
			return &c.Macros[i]
		}
	}
	return nil
}

// FindConstantByName returns the first constant definition with the given name, or nil if none exists.
func (c *Contract) FindConstantByName(name string) *ConstantDefinition {
	for i := range c.Constants {
		if c.Constants[i].Name == name {
			return &c.Constants[i]
		}
	}
	return nil
}

// MacroDefinition is a named, reusable body of statements. Invocations of a macro are inlined into the caller.
type MacroDefinition struct {
	// Name is the unique name of the macro.
	Name string

	// Statements is the macro body. Order is significant, it dictates the output byte order.
	Statements []Statement

	// Takes and Returns describe the declared stack effect. They are carried through but never validated.
	Takes   int
	Returns int
}

// ConstValKind describes which kind of value a constant holds.
type ConstValKind string

const (
	// ConstValKindLiteral describes a constant holding a fixed byte sequence.
	ConstValKindLiteral ConstValKind = "literal"
	// ConstValKindFreeStoragePointer describes a constant whose value is an automatically assigned storage slot.
	ConstValKindFreeStoragePointer ConstValKind = "freeStoragePointer"
)

// ConstVal is the value of a constant definition.
type ConstVal struct {
	// Kind describes which kind of value this is.
	Kind ConstValKind

	// Literal holds the bytes of a ConstValKindLiteral value. It is nil for free storage pointers.
	Literal []byte
}

// NewLiteral creates a literal constant value.
func NewLiteral(b []byte) ConstVal {
	return ConstVal{Kind: ConstValKindLiteral, Literal: b}
}

// NewFreeStoragePointer creates a free storage pointer constant value.
func NewFreeStoragePointer() ConstVal {
	return ConstVal{Kind: ConstValKindFreeStoragePointer}
}

// ConstantDefinition binds a name to a constant value.
type ConstantDefinition struct {
	Name  string
	Value ConstVal
}

// Argument describes a typed parameter of a function, event or error interface.
type Argument struct {
	Name    string `json:"name,omitempty"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// FunctionDefinition describes an externally callable function interface.
type FunctionDefinition struct {
	Name            string     `json:"name"`
	Inputs          []Argument `json:"inputs,omitempty"`
	Outputs         []Argument `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
}

// EventDefinition describes an event interface.
type EventDefinition struct {
	Name      string     `json:"name"`
	Inputs    []Argument `json:"inputs,omitempty"`
	Anonymous bool       `json:"anonymous,omitempty"`
}

// ErrorDefinition describes a custom error interface.
type ErrorDefinition struct {
	Name   string     `json:"name"`
	Inputs []Argument `json:"inputs,omitempty"`
}
