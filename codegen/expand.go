package codegen

import (
	"strings"

	"github.com/crytic/huffgen/ast"
	"github.com/crytic/huffgen/bytecode"
	"github.com/crytic/huffgen/logging/colors"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// ExpandMacro expands the macro into a flat sequence of byte units, in declaration order. Constant references are
// resolved against the contract and macro invocations are inlined recursively. If contract is nil, the session's
// syntax tree is used.
//
// A macro which invokes itself, directly or transitively, fails with CyclicMacroInvocation. Invoking the same macro
// several times along different paths is allowed.
func (c *Codegen) ExpandMacro(macro *ast.MacroDefinition, contract *ast.Contract) ([]bytecode.Byte, error) {
	contract, err := c.GracefulASTGrab(contract)
	if err != nil {
		return nil, err
	}
	if macro == nil {
		return nil, newCodegenError(MissingMacroDefinition, "", nil)
	}
	return c.expand(macro, contract, nil)
}

// expand expands the macro, with stack holding the names of the macros currently being expanded, outermost first.
func (c *Codegen) expand(macro *ast.MacroDefinition, contract *ast.Contract, stack []string) ([]bytecode.Byte, error) {
	stack = append(slices.Clone(stack), macro.Name)
	c.logger.Trace("Expanding macro ", colors.Bold, strings.Join(stack, " -> "), colors.Reset)

	irb, err := macro.ToIRBytecode()
	if err != nil {
		c.logger.Error("Failed to convert macro ", colors.Bold, macro.Name, colors.Reset, " to intermediate representation", err)
		return nil, newCodegenError(InvalidMacroStatement, macro.Name, err)
	}

	units := make([]bytecode.Byte, 0, len(irb))
	for _, irByte := range irb {
		switch item := irByte.(type) {
		case ast.IRRawByte:
			units = append(units, item.Byte)
		case ast.IRConstant:
			push, err := ResolveConstant(item.Name, contract)
			if err != nil {
				c.logger.Warn("Failed to resolve constant ", colors.Bold, item.Name, colors.Reset, " in macro ", macro.Name)
				return nil, err
			}
			units = append(units, push)
		case ast.IRStatement:
			invocation, ok := item.Statement.(ast.MacroInvocation)
			if !ok {
				c.logger.Error("Unexpected ", item.Statement.Kind(), " statement in macro ", colors.Bold, macro.Name, colors.Reset)
				return nil, newCodegenError(InvalidMacroStatement, macro.Name, errors.Errorf("unexpected %s statement", item.Statement.Kind()))
			}

			nested, err := c.expandInvocation(invocation, contract, stack)
			if err != nil {
				return nil, err
			}
			units = append(units, nested...)
		default:
			return nil, newCodegenError(InvalidMacroStatement, macro.Name, errors.Errorf("unexpected intermediate item %T", irByte))
		}
	}

	err = c.Events.MacroExpanded.Publish(MacroExpandedEvent{
		Codegen:   c,
		MacroName: macro.Name,
		Depth:     len(stack) - 1,
		Size:      len(bytecode.Join(units)) / 2,
	})
	if err != nil {
		return nil, err
	}
	return units, nil
}

// expandInvocation looks up the invoked macro and expands it in place of the invocation.
func (c *Codegen) expandInvocation(invocation ast.MacroInvocation, contract *ast.Contract, stack []string) ([]bytecode.Byte, error) {
	target := contract.FindMacroByName(invocation.MacroName)
	if target == nil {
		c.logger.Warn("Invoked macro ", colors.Bold, invocation.MacroName, colors.Reset, " not found in contract")
		return nil, newCodegenError(MissingMacroDefinition, invocation.MacroName, nil)
	}

	if slices.Contains(stack, target.Name) {
		path := strings.Join(append(slices.Clone(stack), target.Name), " -> ")
		c.logger.Error("Cyclic macro invocation ", colors.Bold, path, colors.Reset)
		return nil, newCodegenError(CyclicMacroInvocation, path, nil)
	}

	nested, err := c.expand(target, contract, stack)
	if err != nil {
		// Cycles surface as-is so the outermost error names the whole cycle
		if errors.Is(err, ErrCyclicMacroInvocation) {
			return nil, err
		}
		c.logger.Error("Failed to expand invoked macro ", colors.Bold, target.Name, colors.Reset)
		return nil, newCodegenError(FailedMacroRecursion, target.Name, err)
	}
	return nested, nil
}
