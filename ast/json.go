package ast

import (
	"encoding/json"
	"os"

	"github.com/crytic/medusa-geth/common/hexutil"
	"github.com/pkg/errors"
)

// statementJSON is the serialized form of a Statement. Only the fields relevant to Kind are set.
type statementJSON struct {
	Kind   StatementKind `json:"kind"`
	Opcode string        `json:"opcode,omitempty"`
	Value  string        `json:"value,omitempty"`
	Code   string        `json:"code,omitempty"`
	Name   string        `json:"name,omitempty"`
	Macro  string        `json:"macro,omitempty"`
	Args   []string      `json:"args,omitempty"`
}

// macroDefinitionJSON is the serialized form of a MacroDefinition.
type macroDefinitionJSON struct {
	Name       string          `json:"name"`
	Takes      int             `json:"takes"`
	Returns    int             `json:"returns"`
	Statements []statementJSON `json:"statements"`
}

// constantDefinitionJSON is the serialized form of a ConstantDefinition.
type constantDefinitionJSON struct {
	Name  string        `json:"name"`
	Kind  ConstValKind  `json:"kind"`
	Value hexutil.Bytes `json:"value,omitempty"`
}

// MarshalJSON serializes a MacroDefinition, tagging each statement with its kind.
func (m MacroDefinition) MarshalJSON() ([]byte, error) {
	out := macroDefinitionJSON{
		Name:       m.Name,
		Takes:      m.Takes,
		Returns:    m.Returns,
		Statements: make([]statementJSON, 0, len(m.Statements)),
	}
	for _, statement := range m.Statements {
		s := statementJSON{Kind: statement.Kind()}
		switch st := statement.(type) {
		case OpcodeStatement:
			s.Opcode = st.Opcode
		case LiteralStatement:
			s.Value = st.Value
		case CodeStatement:
			s.Code = st.Code
		case ConstantStatement:
			s.Name = st.Name
		case MacroInvocation:
			s.Macro = st.MacroName
			s.Args = st.Args
		case LabelDefinition:
			s.Name = st.Name
		case LabelCall:
			s.Name = st.Name
		case ArgCall:
			s.Name = st.Name
		}
		out.Statements = append(out.Statements, s)
	}
	return json.Marshal(out)
}

// UnmarshalJSON deserializes a MacroDefinition. Unknown statement kinds are rejected.
func (m *MacroDefinition) UnmarshalJSON(b []byte) error {
	var in macroDefinitionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	statements := make([]Statement, 0, len(in.Statements))
	for i, s := range in.Statements {
		var statement Statement
		switch s.Kind {
		case StatementKindOpcode:
			statement = OpcodeStatement{Opcode: s.Opcode}
		case StatementKindLiteral:
			statement = LiteralStatement{Value: s.Value}
		case StatementKindCode:
			statement = CodeStatement{Code: s.Code}
		case StatementKindConstant:
			statement = ConstantStatement{Name: s.Name}
		case StatementKindMacroInvocation:
			statement = MacroInvocation{MacroName: s.Macro, Args: s.Args}
		case StatementKindLabelDefinition:
			statement = LabelDefinition{Name: s.Name}
		case StatementKindLabelCall:
			statement = LabelCall{Name: s.Name}
		case StatementKindArgCall:
			statement = ArgCall{Name: s.Name}
		default:
			return errors.Errorf("macro %s, statement %d: unknown statement kind %q", in.Name, i, s.Kind)
		}
		statements = append(statements, statement)
	}

	*m = MacroDefinition{Name: in.Name, Statements: statements, Takes: in.Takes, Returns: in.Returns}
	return nil
}

// MarshalJSON serializes a ConstantDefinition.
func (c ConstantDefinition) MarshalJSON() ([]byte, error) {
	return json.Marshal(constantDefinitionJSON{Name: c.Name, Kind: c.Value.Kind, Value: c.Value.Literal})
}

// UnmarshalJSON deserializes a ConstantDefinition. Literal values are 0x-prefixed hex strings.
func (c *ConstantDefinition) UnmarshalJSON(b []byte) error {
	var in constantDefinitionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	switch in.Kind {
	case ConstValKindLiteral:
		*c = ConstantDefinition{Name: in.Name, Value: NewLiteral(in.Value)}
	case ConstValKindFreeStoragePointer:
		*c = ConstantDefinition{Name: in.Name, Value: NewFreeStoragePointer()}
	default:
		return errors.Errorf("constant %s: unknown value kind %q", in.Name, in.Kind)
	}
	return nil
}

// ReadContractFromFile reads a JSON-serialized Contract from the provided file path.
func ReadContractFromFile(path string) (*Contract, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var contract Contract
	if err = json.Unmarshal(b, &contract); err != nil {
		return nil, errors.Wrapf(err, "could not parse syntax tree at %s", path)
	}
	return &contract, nil
}

// WriteToFile writes the Contract to the provided file path in a JSON-serialized format.
func (c *Contract) WriteToFile(path string) error {
	b, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	if err = os.WriteFile(path, b, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
