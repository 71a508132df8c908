package cmd

import (
	"github.com/crytic/huffgen/logging"
	"github.com/crytic/huffgen/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "huffgen",
	Short:   "A code generator for Huff syntax trees",
	Long:    "huffgen lowers a resolved Huff syntax tree into deployable EVM bytecode and a contract interface",
	Version: version.GetInfo().Short(),
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true).NewSubLogger("module", logging.CLI_SERVICE)

// Execute provides an exportable function to invoke the CLI. Returns an error if one was encountered.
func Execute() error {
	return rootCmd.Execute()
}
