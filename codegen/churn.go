package codegen

import (
	"fmt"

	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/artifacts"
	"github.com/crytic/huffgen/bytecode"
	"github.com/crytic/huffgen/logging/colors"
	"github.com/crytic/medusa-geth/core/vm"
)

const (
	// MaxCodeSize is the largest size or offset the bootstrap can express in its two byte push immediates.
	MaxCodeSize = 0xffff

	// bootstrapLength is the length in bytes of the bootstrap sequence. The runtime code starts this many bytes after
	// the end of the constructor code.
	bootstrapLength = 13
)

// bootstrap returns the sequence which copies the runtime code into memory and returns it:
//
//	PUSH2 <runtimeLength> DUP1 PUSH2 <runtimeOffset> PUSH1 0x00 CODECOPY PUSH1 0x00 RETURN
func bootstrap(runtimeLength int, runtimeOffset int) string {
	return fmt.Sprintf("%02x%04x%02x%02x%04x%02x00%02x%02x00%02x",
		byte(vm.PUSH2), runtimeLength, byte(vm.DUP1), byte(vm.PUSH2), runtimeOffset,
		byte(vm.PUSH1), byte(vm.CODECOPY), byte(vm.PUSH1), byte(vm.RETURN),
	)
}

// Churn assembles the deployment bytecode from the runtime and constructor bytecode: the constructor code, followed
// by a bootstrap which returns the runtime code, the runtime code itself and the ABI-encoded constructor arguments.
// The result is written into the session's artifact, leaving any ABI already present untouched.
func (c *Codegen) Churn(args []abiutils.ConstructorArg, runtimeBytecode string, constructorBytecode string) (*artifacts.Artifact, error) {
	if err := bytecode.Validate(runtimeBytecode); err != nil {
		c.logger.Error("Runtime bytecode is not a valid hex string", err)
		return nil, newCodegenError(InvalidBytecode, "runtime", err)
	}
	if err := bytecode.Validate(constructorBytecode); err != nil {
		c.logger.Error("Constructor bytecode is not a valid hex string", err)
		return nil, newCodegenError(InvalidBytecode, "constructor", err)
	}

	runtimeLength := len(runtimeBytecode) / 2
	runtimeOffset := bootstrapLength + len(constructorBytecode)/2
	if runtimeLength > MaxCodeSize {
		c.logger.Error("Runtime bytecode of ", runtimeLength, " bytes exceeds the maximum of ", MaxCodeSize)
		return nil, newCodegenError(BytecodeTooLarge, "runtime", fmt.Errorf("%d bytes", runtimeLength))
	}
	if runtimeOffset > MaxCodeSize {
		c.logger.Error("Runtime code offset of ", runtimeOffset, " bytes exceeds the maximum of ", MaxCodeSize)
		return nil, newCodegenError(BytecodeTooLarge, "constructor", fmt.Errorf("runtime offset %d", runtimeOffset))
	}
	c.logger.Debug("Runtime size: ", colors.Bold, fmt.Sprintf("%04x", runtimeLength), colors.Reset,
		", runtime offset: ", colors.Bold, fmt.Sprintf("%04x", runtimeOffset), colors.Reset)

	encodedArgs, err := abiutils.EncodeConstructorArgs(args)
	if err != nil {
		c.logger.Error("Failed to encode constructor arguments", err)
		return nil, newCodegenError(InvalidConstructorArgument, "", err)
	}

	deployment := constructorBytecode + bootstrap(runtimeLength, runtimeOffset) + runtimeBytecode + encodedArgs
	return c.store.SetBytecode(deployment, runtimeBytecode).Clone(), nil
}
