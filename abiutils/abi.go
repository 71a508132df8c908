// Package abiutils generates contract interface descriptions (ABIs) from a syntax tree and encodes constructor
// arguments, on top of go-ethereum's accounts/abi package.
package abiutils

import (
	"encoding/json"
	"strings"

	"github.com/crytic/huffgen/utils"
	"github.com/crytic/medusa-geth/accounts/abi"
	"github.com/pkg/errors"
)

// Entry types of a JSON ABI.
const (
	EntryTypeConstructor = "constructor"
	EntryTypeFunction    = "function"
	EntryTypeEvent       = "event"
	EntryTypeError       = "error"
)

// Argument describes a typed parameter within an ABI entry.
type Argument struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// Entry describes a single constructor, function, event or error within an ABI.
type Entry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []Argument `json:"inputs"`
	Outputs         []Argument `json:"outputs,omitempty"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Anonymous       bool       `json:"anonymous,omitempty"`
}

// Abi describes a contract's application binary interface. It serializes to the standard JSON ABI array.
type Abi struct {
	Entries []Entry
}

// MarshalJSON serializes the ABI as a JSON array of entries.
func (a Abi) MarshalJSON() ([]byte, error) {
	entries := a.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON deserializes the ABI from a JSON array of entries.
func (a *Abi) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &a.Entries)
}

// Constructor returns the constructor entry, or nil if the ABI has none.
func (a *Abi) Constructor() *Entry {
	for i := range a.Entries {
		if a.Entries[i].Type == EntryTypeConstructor {
			return &a.Entries[i]
		}
	}
	return nil
}

// EntriesOfType returns the entries of the given type, in declaration order.
func (a *Abi) EntriesOfType(entryType string) []Entry {
	return utils.SliceWhere(a.Entries, func(e Entry) bool {
		return e.Type == entryType
	})
}

// Names returns the names of the entries of the given type, in declaration order.
func (a *Abi) Names(entryType string) []string {
	return utils.SliceSelect(a.EntriesOfType(entryType), func(e Entry) string {
		return e.Name
	})
}

// ToEthABI converts the description into a go-ethereum abi.ABI, which resolves every type and computes selectors.
func (a *Abi) ToEthABI() (*abi.ABI, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := abi.JSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse generated ABI")
	}
	return &result, nil
}
