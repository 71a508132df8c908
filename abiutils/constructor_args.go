package abiutils

import (
	"encoding/hex"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/crytic/medusa-geth/accounts/abi"
	"github.com/crytic/medusa-geth/common"
	"github.com/crytic/medusa-geth/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// bigIntType is the Go type go-ethereum uses for integers without a primitive equivalent.
var bigIntType = reflect.TypeOf(&big.Int{})

// ConstructorArg is an already-typed ABI value passed to a contract constructor.
type ConstructorArg struct {
	// Type describes the ABI type of the argument.
	Type abi.Type

	// Value is the Go value to encode, in the representation go-ethereum expects for Type (e.g. *big.Int for
	// uint256, common.Address for address, [32]byte for bytes32).
	Value any
}

// NewConstructorArg creates a ConstructorArg from an ABI type string and a Go value.
func NewConstructorArg(typeName string, value any) (ConstructorArg, error) {
	t, err := abi.NewType(typeName, "", nil)
	if err != nil {
		return ConstructorArg{}, errors.Wrapf(err, "invalid constructor argument type %q", typeName)
	}
	return ConstructorArg{Type: t, Value: value}, nil
}

// Encode ABI-encodes the argument on its own and returns the hex string of the result.
func (c ConstructorArg) Encode() (string, error) {
	data, err := abi.Arguments{{Type: c.Type}}.Pack(c.Value)
	if err != nil {
		return "", errors.Wrapf(err, "could not encode constructor argument of type %s", c.Type.String())
	}
	return hex.EncodeToString(data), nil
}

// EncodeConstructorArgs encodes each argument independently and concatenates the hex results in argument order.
func EncodeConstructorArgs(args []ConstructorArg) (string, error) {
	var sb strings.Builder
	for i, arg := range args {
		encoded, err := arg.Encode()
		if err != nil {
			return "", errors.Wrapf(err, "argument %d", i)
		}
		sb.WriteString(encoded)
	}
	return sb.String(), nil
}

// ParseConstructorArg creates a ConstructorArg from an ABI type string and a textual value, as supplied on the command
// line or in a project config. Integers may be decimal or 0x-prefixed hex; bytes values are 0x-prefixed hex.
// Arrays, slices and tuples are not supported.
func ParseConstructorArg(typeName string, raw string) (ConstructorArg, error) {
	t, err := abi.NewType(typeName, "", nil)
	if err != nil {
		return ConstructorArg{}, errors.Wrapf(err, "invalid constructor argument type %q", typeName)
	}

	value, err := parseAbiValue(&t, strings.TrimSpace(raw))
	if err != nil {
		return ConstructorArg{}, errors.Wrapf(err, "invalid %s value %q", typeName, raw)
	}
	return ConstructorArg{Type: t, Value: value}, nil
}

// parseAbiValue converts a textual value into the Go representation of the given ABI type.
func parseAbiValue(valueType *abi.Type, raw string) (any, error) {
	switch valueType.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, errors.New("not a hex address")
		}
		return common.HexToAddress(raw), nil
	case abi.UintTy:
		u, err := parseUint256(raw)
		if err != nil {
			return nil, err
		}
		if u.BitLen() > valueType.Size {
			return nil, errors.Errorf("value does not fit in %d bits", valueType.Size)
		}
		// 8, 16, 32 and 64 bit integers use primitive types, every other size uses big.Int
		if valueType.GetType() == bigIntType {
			return u.ToBig(), nil
		}
		return reflect.ValueOf(u.Uint64()).Convert(valueType.GetType()).Interface(), nil
	case abi.IntTy:
		i, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, errors.New("not an integer")
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(valueType.Size-1))
		if i.Cmp(limit) >= 0 || i.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, errors.Errorf("value does not fit in %d bits", valueType.Size)
		}
		if valueType.GetType() == bigIntType {
			return i, nil
		}
		return reflect.ValueOf(i.Int64()).Convert(valueType.GetType()).Interface(), nil
	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return b, nil
	case abi.StringTy:
		return raw, nil
	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return b, nil
	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if len(b) != valueType.Size {
			return nil, errors.Errorf("expected %d bytes, got %d", valueType.Size, len(b))
		}
		array := reflect.New(valueType.GetType()).Elem()
		reflect.Copy(array, reflect.ValueOf(b))
		return array.Interface(), nil
	default:
		return nil, errors.Errorf("unsupported constructor argument type %s", valueType.String())
	}
}

// parseUint256 parses a decimal or 0x-prefixed hex unsigned integer of at most 256 bits.
func parseUint256(raw string) (*uint256.Int, error) {
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		b, ok := new(big.Int).SetString(raw[2:], 16)
		if !ok || b.Sign() < 0 {
			return nil, errors.New("not an unsigned hex integer")
		}
		u, overflow := uint256.FromBig(b)
		if overflow {
			return nil, errors.New("value exceeds 256 bits")
		}
		return u, nil
	}
	u, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return u, nil
}
