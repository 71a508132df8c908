package ast

import (
	"strings"

	"github.com/crytic/huffgen/bytecode"
	"github.com/crytic/medusa-geth/core/vm"
	"github.com/pkg/errors"
)

// IRByte is a single item of a macro's intermediate representation. It is one of IRRawByte, IRConstant or
// IRStatement; the set is closed.
type IRByte interface {
	isIRByte()
}

// IR item types.
type (
	// IRRawByte is an already resolved byte unit, emitted verbatim.
	IRRawByte struct{ Byte bytecode.Byte }

	// IRConstant is a constant reference, resolved against the contract's constants during expansion.
	IRConstant struct{ Name string }

	// IRStatement is a statement that must be handled during expansion. Only macro invocations are valid there.
	IRStatement struct{ Statement Statement }
)

func (IRRawByte) isIRByte()   {}
func (IRConstant) isIRByte()  {}
func (IRStatement) isIRByte() {}

// IRBytecode is the ordered intermediate representation of a macro body.
type IRBytecode []IRByte

// opcodeAliases maps mnemonics accepted in Huff source onto the names used by the opcode table.
var opcodeAliases = map[string]string{
	"SHA3": "KECCAK256",
}

// ToIRBytecode converts the macro's statements into intermediate representation, preserving order. Opcodes, literals
// and raw code are resolved to byte units here; constant references and all other statements are carried through.
func (m *MacroDefinition) ToIRBytecode() (IRBytecode, error) {
	irb := make(IRBytecode, 0, len(m.Statements))
	for i, statement := range m.Statements {
		switch s := statement.(type) {
		case OpcodeStatement:
			op, err := ResolveOpcode(s.Opcode)
			if err != nil {
				return nil, errors.Wrapf(err, "macro %s, statement %d", m.Name, i)
			}
			irb = append(irb, IRRawByte{Byte: bytecode.OpcodeByte(op)})
		case LiteralStatement:
			value, err := bytecode.DecodeHexLiteral(s.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "macro %s, statement %d", m.Name, i)
			}
			push, err := bytecode.PushBytes(value)
			if err != nil {
				return nil, errors.Wrapf(err, "macro %s, statement %d", m.Name, i)
			}
			irb = append(irb, IRRawByte{Byte: push})
		case CodeStatement:
			if err := bytecode.Validate(s.Code); err != nil {
				return nil, errors.Wrapf(err, "macro %s, statement %d", m.Name, i)
			}
			irb = append(irb, IRRawByte{Byte: bytecode.Byte(s.Code)})
		case ConstantStatement:
			irb = append(irb, IRConstant{Name: s.Name})
		case nil:
			return nil, errors.Errorf("macro %s, statement %d: nil statement", m.Name, i)
		default:
			irb = append(irb, IRStatement{Statement: s})
		}
	}
	return irb, nil
}

// ResolveOpcode resolves an opcode mnemonic, case-insensitively. Push opcodes other than PUSH0 are rejected, their
// immediates are written as literals.
func ResolveOpcode(mnemonic string) (vm.OpCode, error) {
	name := strings.ToUpper(mnemonic)
	if alias, ok := opcodeAliases[name]; ok {
		name = alias
	}

	op := vm.StringToOp(name)
	// The opcode table yields STOP for unknown names
	if op == vm.STOP && name != "STOP" {
		return 0, errors.Errorf("unknown opcode %q", mnemonic)
	}
	if op.IsPush() && op != vm.PUSH0 {
		return 0, errors.Errorf("opcode %q needs an immediate, use a literal instead", mnemonic)
	}
	return op, nil
}
