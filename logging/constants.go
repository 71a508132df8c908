package logging

// These constants are used to identify the various services that may do some logging
const (
	// CODEGEN_SERVICE is the constant used to identify the codegen package
	CODEGEN_SERVICE = "codegen"
	// ABI_SERVICE is the constant used to identify the abiutils package
	ABI_SERVICE = "abi"
	// ARTIFACT_SERVICE is the constant used to identify the artifacts package
	ARTIFACT_SERVICE = "artifacts"
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
)
