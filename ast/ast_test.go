package ast

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/crytic/huffgen/bytecode"
	"github.com/crytic/medusa-geth/core/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFindByNameFirstMatchWins verifies lookups are linear scans where the first definition wins.
func TestFindByNameFirstMatchWins(t *testing.T) {
	t.Parallel()

	contract := &Contract{
		Macros: []MacroDefinition{
			{Name: "MAIN", Takes: 1},
			{Name: "MAIN", Takes: 2},
		},
		Constants: []ConstantDefinition{
			{Name: "OWNER", Value: NewLiteral([]byte{0x01})},
			{Name: "OWNER", Value: NewLiteral([]byte{0x02})},
		},
	}

	require.NotNil(t, contract.FindMacroByName("MAIN"))
	assert.Equal(t, 1, contract.FindMacroByName("MAIN").Takes)
	assert.Nil(t, contract.FindMacroByName("CONSTRUCTOR"))

	require.NotNil(t, contract.FindConstantByName("OWNER"))
	assert.Equal(t, []byte{0x01}, contract.FindConstantByName("OWNER").Value.Literal)
	assert.Nil(t, contract.FindConstantByName("MISSING"))
}

// TestToIRBytecode verifies statements are converted in order and only invocations and unresolved statement kinds are
// carried through as statements.
func TestToIRBytecode(t *testing.T) {
	t.Parallel()

	macro := MacroDefinition{
		Name: "MAIN",
		Statements: []Statement{
			LiteralStatement{Value: "0x00"},
			OpcodeStatement{Opcode: "calldataload"},
			ConstantStatement{Name: "SLOT"},
			MacroInvocation{MacroName: "HELPER"},
			CodeStatement{Code: "5b"},
			OpcodeStatement{Opcode: "sha3"},
			LabelDefinition{Name: "cool_label"},
		},
	}

	irb, err := macro.ToIRBytecode()
	require.NoError(t, err)
	require.Len(t, irb, 7)

	assert.Equal(t, IRRawByte{Byte: "6000"}, irb[0])
	assert.Equal(t, IRRawByte{Byte: bytecode.OpcodeByte(vm.CALLDATALOAD)}, irb[1])
	assert.Equal(t, IRConstant{Name: "SLOT"}, irb[2])
	assert.Equal(t, IRStatement{Statement: MacroInvocation{MacroName: "HELPER"}}, irb[3])
	assert.Equal(t, IRRawByte{Byte: "5b"}, irb[4])
	assert.Equal(t, IRRawByte{Byte: "20"}, irb[5])
	assert.Equal(t, IRStatement{Statement: LabelDefinition{Name: "cool_label"}}, irb[6])
}

// TestToIRBytecodeRejectsBadStatements verifies malformed statements fail conversion.
func TestToIRBytecodeRejectsBadStatements(t *testing.T) {
	t.Parallel()

	bad := []Statement{
		OpcodeStatement{Opcode: "notanopcode"},
		OpcodeStatement{Opcode: "push1"},
		LiteralStatement{Value: "0xzz"},
		CodeStatement{Code: "600"},
		nil,
	}
	for _, statement := range bad {
		macro := MacroDefinition{Name: "BAD", Statements: []Statement{statement}}
		_, err := macro.ToIRBytecode()
		assert.Error(t, err, "statement %#v", statement)
	}
}

// TestResolveOpcode verifies mnemonics resolve case-insensitively against the opcode table.
func TestResolveOpcode(t *testing.T) {
	t.Parallel()

	op, err := ResolveOpcode("stop")
	require.NoError(t, err)
	assert.Equal(t, vm.STOP, op)

	op, err = ResolveOpcode("PUSH0")
	require.NoError(t, err)
	assert.Equal(t, vm.PUSH0, op)

	op, err = ResolveOpcode("Mstore")
	require.NoError(t, err)
	assert.Equal(t, vm.MSTORE, op)
}

// TestContractJSONRoundTrip writes a contract to disk and reads it back.
func TestContractJSONRoundTrip(t *testing.T) {
	t.Parallel()

	contract := &Contract{
		Macros: []MacroDefinition{{
			Name:    "MAIN",
			Takes:   0,
			Returns: 0,
			Statements: []Statement{
				LiteralStatement{Value: "0x2a"},
				ConstantStatement{Name: "SLOT"},
				MacroInvocation{MacroName: "HELPER", Args: []string{"0x01"}},
				ArgCall{Name: "value"},
				LabelCall{Name: "done"},
				LabelDefinition{Name: "done"},
				CodeStatement{Code: "00"},
				OpcodeStatement{Opcode: "stop"},
			},
		}},
		Constants: []ConstantDefinition{
			{Name: "SLOT", Value: NewFreeStoragePointer()},
			{Name: "OWNER", Value: NewLiteral([]byte{0xbe, 0xef})},
		},
		Functions: []FunctionDefinition{{
			Name:            "transfer",
			Inputs:          []Argument{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
			Outputs:         []Argument{{Type: "bool"}},
			StateMutability: "nonpayable",
		}},
	}

	path := filepath.Join(t.TempDir(), "contract.json")
	require.NoError(t, contract.WriteToFile(path))

	read, err := ReadContractFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, contract, read)
}

// TestUnmarshalRejectsUnknownKinds verifies unknown statement and constant kinds fail decoding.
func TestUnmarshalRejectsUnknownKinds(t *testing.T) {
	t.Parallel()

	var macro MacroDefinition
	err := json.Unmarshal([]byte(`{"name":"M","statements":[{"kind":"jumpTable"}]}`), &macro)
	assert.Error(t, err)

	var constant ConstantDefinition
	err = json.Unmarshal([]byte(`{"name":"C","kind":"immutable"}`), &constant)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"name":"C","kind":"literal","value":"0x2a"}`), &constant)
	require.NoError(t, err)
	assert.Equal(t, NewLiteral([]byte{0x2a}), constant.Value)
}
