package codegen

import (
	"github.com/crytic/huffgen/ast"
	"github.com/crytic/huffgen/bytecode"
)

// freeStoragePointerSlot is the storage slot every free storage pointer resolves to. Slot assignment is not
// implemented, so all pointers share slot zero.
const freeStoragePointerSlot byte = 0

// ResolveConstant resolves the named constant against the contract into a push instruction. The first definition with
// the name wins. A literal of n bytes encodes as 0x5F+n followed by the literal, without padding.
func ResolveConstant(name string, contract *ast.Contract) (bytecode.Byte, error) {
	if contract == nil {
		return "", newCodegenError(MissingAst, "", nil)
	}

	constant := contract.FindConstantByName(name)
	if constant == nil {
		return "", newCodegenError(MissingConstantDefinition, name, nil)
	}

	switch constant.Value.Kind {
	case ast.ConstValKindLiteral:
		push, err := bytecode.PushBytes(constant.Value.Literal)
		if err != nil {
			return "", newCodegenError(InvalidConstantLiteral, name, err)
		}
		return push, nil
	case ast.ConstValKindFreeStoragePointer:
		// TODO: assign sequential slots in declaration order once the allocation rule is settled upstream
		push, err := bytecode.PushBytes([]byte{freeStoragePointerSlot})
		if err != nil {
			return "", newCodegenError(InvalidConstantLiteral, name, err)
		}
		return push, nil
	default:
		return "", newCodegenError(InvalidConstantLiteral, name, nil)
	}
}
