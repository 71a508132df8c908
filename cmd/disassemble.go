package cmd

import (
	"fmt"

	"github.com/crytic/huffgen/artifacts"
	"github.com/crytic/huffgen/bytecode"
	"github.com/spf13/cobra"
)

// disassembleCmd represents the command provider for disassembly
var disassembleCmd = &cobra.Command{
	Use:   "disassemble [bytecode]",
	Short: "Prints the instructions of a bytecode string or artifact",
	Long: `Prints the instructions of a hex bytecode string, or of the bytecode of an artifact written by the compile
command (--artifact). With --runtime, the artifact's runtime bytecode is disassembled instead of its deployment
bytecode.`,
	Args:          cmdValidateDisassembleArgs,
	RunE:          cmdRunDisassemble,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	disassembleCmd.Flags().String("artifact", "", "path to an artifact to disassemble")
	disassembleCmd.Flags().Bool("runtime", false, "disassemble the artifact's runtime bytecode")

	rootCmd.AddCommand(disassembleCmd)
}

// cmdValidateDisassembleArgs makes sure exactly one of a bytecode argument or an artifact path is provided
func cmdValidateDisassembleArgs(cmd *cobra.Command, args []string) error {
	artifactFlagUsed := cmd.Flags().Changed("artifact")
	if (len(args) == 1) == artifactFlagUsed || len(args) > 1 {
		err := fmt.Errorf("disassemble accepts either a single bytecode argument or the --artifact flag")
		cmdLogger.Error("Failed to validate args to the disassemble command", err)
		return err
	}
	return nil
}

// cmdRunDisassemble executes the disassemble CLI command
func cmdRunDisassemble(cmd *cobra.Command, args []string) error {
	var code string
	if len(args) == 1 {
		code = args[0]
	} else {
		artifactPath, err := cmd.Flags().GetString("artifact")
		if err != nil {
			return err
		}
		runtime, err := cmd.Flags().GetBool("runtime")
		if err != nil {
			return err
		}

		artifact, err := artifacts.ReadArtifactFromFile(artifactPath)
		if err != nil {
			cmdLogger.Error("Failed to read the artifact", err)
			return err
		}
		code = artifact.Bytecode
		if runtime {
			code = artifact.Runtime
		}
	}

	instructions, err := bytecode.Disassemble(code)
	if err != nil {
		cmdLogger.Error("Failed to disassemble the bytecode", err)
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), bytecode.FormatInstructions(instructions))
	return nil
}
