package bytecode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/crytic/medusa-geth/core/vm"
	"github.com/pkg/errors"
)

// Instruction describes a single decoded instruction within a bytecode string.
type Instruction struct {
	// Offset is the byte offset of the opcode within the bytecode.
	Offset int

	// Op is the decoded opcode.
	Op vm.OpCode

	// Immediate holds the data following a push opcode. It is nil for every other opcode.
	Immediate []byte

	// Truncated is set when the bytecode ended before the full immediate of a push was read.
	Truncated bool
}

// String renders the instruction as "offset: OPCODE [0ximmediate]".
func (i Instruction) String() string {
	s := fmt.Sprintf("%04x: %v", i.Offset, i.Op)
	if i.Immediate != nil {
		s += " 0x" + hex.EncodeToString(i.Immediate)
	}
	if i.Truncated {
		s += " (truncated)"
	}
	return s
}

// Disassemble decodes a hex bytecode string into its instructions. Bytes which do not map to a known opcode are kept
// as-is, the opcode's String method reports them as undefined.
func Disassemble(code string) ([]Instruction, error) {
	if err := Validate(code); err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(code)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	instructions := make([]Instruction, 0, len(raw))
	for pc := 0; pc < len(raw); pc++ {
		inst := Instruction{Offset: pc, Op: vm.OpCode(raw[pc])}
		if inst.Op.IsPush() && inst.Op != vm.PUSH0 {
			size := int(inst.Op - vm.PUSH0)
			end := pc + 1 + size
			if end > len(raw) {
				end = len(raw)
				inst.Truncated = true
			}
			inst.Immediate = raw[pc+1 : end]
			pc = end - 1
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}

// FormatInstructions renders a disassembly listing, one instruction per line.
func FormatInstructions(instructions []Instruction) string {
	var sb strings.Builder
	for _, inst := range instructions {
		sb.WriteString(inst.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
