package abiutils

import (
	"github.com/crytic/huffgen/ast"
	"github.com/crytic/medusa-geth/accounts/abi"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// stateMutabilities lists the accepted function state mutability values.
var stateMutabilities = []string{"pure", "view", "nonpayable", "payable"}

// FromContract converts the function, event and error declarations of a syntax tree into an ABI description. The
// constructor comes first, followed by functions, events and errors in declaration order. Every argument type is
// validated against the go-ethereum type parser.
func FromContract(contract *ast.Contract) (*Abi, error) {
	if contract == nil {
		return nil, errors.New("cannot generate an ABI without a syntax tree")
	}

	entries := make([]Entry, 0, 1+len(contract.Functions)+len(contract.Events)+len(contract.Errors))

	if contract.Constructor != nil {
		inputs, err := convertArguments(contract.Constructor.Inputs, false)
		if err != nil {
			return nil, errors.Wrap(err, "constructor")
		}
		mutability, err := normalizeStateMutability(contract.Constructor.StateMutability)
		if err != nil {
			return nil, errors.Wrap(err, "constructor")
		}
		entries = append(entries, Entry{Type: EntryTypeConstructor, Inputs: inputs, StateMutability: mutability})
	}

	for _, function := range contract.Functions {
		inputs, err := convertArguments(function.Inputs, false)
		if err != nil {
			return nil, errors.Wrapf(err, "function %s", function.Name)
		}
		outputs, err := convertArguments(function.Outputs, false)
		if err != nil {
			return nil, errors.Wrapf(err, "function %s", function.Name)
		}
		mutability, err := normalizeStateMutability(function.StateMutability)
		if err != nil {
			return nil, errors.Wrapf(err, "function %s", function.Name)
		}
		entries = append(entries, Entry{
			Type:            EntryTypeFunction,
			Name:            function.Name,
			Inputs:          inputs,
			Outputs:         outputs,
			StateMutability: mutability,
		})
	}

	for _, event := range contract.Events {
		inputs, err := convertArguments(event.Inputs, true)
		if err != nil {
			return nil, errors.Wrapf(err, "event %s", event.Name)
		}
		entries = append(entries, Entry{Type: EntryTypeEvent, Name: event.Name, Inputs: inputs, Anonymous: event.Anonymous})
	}

	for _, customError := range contract.Errors {
		inputs, err := convertArguments(customError.Inputs, false)
		if err != nil {
			return nil, errors.Wrapf(err, "error %s", customError.Name)
		}
		entries = append(entries, Entry{Type: EntryTypeError, Name: customError.Name, Inputs: inputs})
	}

	return &Abi{Entries: entries}, nil
}

// convertArguments validates and converts syntax tree arguments. Indexed flags are only kept for events.
func convertArguments(args []ast.Argument, allowIndexed bool) ([]Argument, error) {
	converted := make([]Argument, 0, len(args))
	for i, arg := range args {
		if _, err := abi.NewType(arg.Type, "", nil); err != nil {
			return nil, errors.Wrapf(err, "argument %d has invalid type %q", i, arg.Type)
		}
		if arg.Indexed && !allowIndexed {
			return nil, errors.Errorf("argument %d cannot be indexed", i)
		}
		converted = append(converted, Argument{Name: arg.Name, Type: arg.Type, Indexed: arg.Indexed})
	}
	return converted, nil
}

// normalizeStateMutability defaults an empty mutability to nonpayable and rejects unknown values.
func normalizeStateMutability(mutability string) (string, error) {
	if mutability == "" {
		return "nonpayable", nil
	}
	if !slices.Contains(stateMutabilities, mutability) {
		return "", errors.Errorf("unknown state mutability %q", mutability)
	}
	return mutability, nil
}
