// Package bytecode provides the hex-encoded byte units the code generator emits, along with push encoding,
// validation and disassembly helpers over EVM bytecode strings.
package bytecode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/crytic/medusa-geth/core/vm"
	"github.com/pkg/errors"
)

// MaxPushSize is the largest immediate a single push instruction can carry.
const MaxPushSize = int(vm.PUSH32 - vm.PUSH0)

// Byte is an atomic, hex-encoded unit of output bytecode. A unit may span more than one byte, e.g. a push instruction
// together with its immediate data. Concatenating units in order yields the final bytecode string.
type Byte string

// Len returns the number of bytes the unit encodes.
func (b Byte) Len() int {
	return len(b) / 2
}

// Join concatenates byte units, in order, into a single hex string.
func Join(units []Byte) string {
	var sb strings.Builder
	for _, unit := range units {
		sb.WriteString(string(unit))
	}
	return sb.String()
}

// PushBytes encodes value as a push instruction of the minimal width required to hold the literal as given: opcode
// 0x5F+len(value) followed by the literal bytes. No padding is added beyond the literal's own length.
func PushBytes(value []byte) (Byte, error) {
	if len(value) == 0 || len(value) > MaxPushSize {
		return "", errors.Errorf("push literal must be between 1 and %d bytes, got %d", MaxPushSize, len(value))
	}
	op := vm.PUSH0 + vm.OpCode(len(value))
	return Byte(fmt.Sprintf("%02x%s", byte(op), hex.EncodeToString(value))), nil
}

// OpcodeByte returns the single byte unit for an opcode.
func OpcodeByte(op vm.OpCode) Byte {
	return Byte(fmt.Sprintf("%02x", byte(op)))
}

// Validate checks that s is a well-formed hex bytecode string: an even number of hex characters, without a 0x prefix.
// Upper and lower case digits are both accepted.
func Validate(s string) error {
	if _, err := hex.DecodeString(s); err != nil {
		return errors.Wrap(err, "malformed bytecode")
	}
	return nil
}

// DecodeHexLiteral decodes a hex literal as written in source, with or without a 0x prefix. Odd-length literals are
// left-padded with a single zero nibble, so "0x2" decodes to 0x02.
func DecodeHexLiteral(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) == 0 {
		return nil, errors.New("empty hex literal")
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
