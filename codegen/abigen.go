package codegen

import (
	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/ast"
	"github.com/crytic/huffgen/logging/colors"
)

// AbiGen generates the contract's interface description and merges it into the session's artifact, leaving the
// bytecode fields untouched. If output is not empty the whole artifact is then exported to it. A failed export is
// logged but not returned. If contract is nil, the session's syntax tree is used.
func (c *Codegen) AbiGen(contract *ast.Contract, output string) (*abiutils.Abi, error) {
	contract, err := c.GracefulASTGrab(contract)
	if err != nil {
		return nil, err
	}

	contractAbi, err := abiutils.FromContract(contract)
	if err != nil {
		c.logger.Error("Failed to generate the contract interface", err)
		return nil, newCodegenError(InvalidAbiDeclaration, "", err)
	}
	c.store.SetAbi(contractAbi)
	c.logger.Debug("Generated ", len(contractAbi.Entries), " interface entries")

	if output != "" {
		if _, err = c.store.Export(output); err != nil {
			c.logger.Warn("Failed to export the compile artifact to ", colors.Bold, output, colors.Reset, err)
		}
	}
	return contractAbi, nil
}
