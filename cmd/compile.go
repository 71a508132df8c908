package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crytic/huffgen/abiutils"
	"github.com/crytic/huffgen/artifacts"
	"github.com/crytic/huffgen/ast"
	"github.com/crytic/huffgen/bytecode"
	"github.com/crytic/huffgen/cmd/exitcodes"
	"github.com/crytic/huffgen/codegen"
	"github.com/crytic/huffgen/config"
	"github.com/crytic/huffgen/logging"
	"github.com/crytic/huffgen/logging/colors"
	"github.com/crytic/huffgen/utils"
	"github.com/spf13/cobra"
)

// compileCmd represents the command provider for code generation
var compileCmd = &cobra.Command{
	Use:               "compile [target]",
	Short:             "Generates bytecode and an interface for a Huff syntax tree",
	Long:              `Generates deployment bytecode, runtime bytecode and an ABI for a Huff syntax tree and exports them as an artifact`,
	Args:              cmdValidateCompileArgs,
	ValidArgsFunction: cmdValidCompileArgs,
	RunE:              cmdRunCompile,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the compile command
	err := addCompileFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the compile command", err)
	}

	rootCmd.AddCommand(compileCmd)
}

// cmdValidCompileArgs will return which files and flags are valid for dynamic completion for the compile command
func cmdValidCompileArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return targetCompletions(cmd, args, toComplete)
}

// cmdValidateCompileArgs makes sure that at most one positional argument, the target, is provided to the compile command
func cmdValidateCompileArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("compile accepts at most one positional argument, the target syntax tree")
		cmdLogger.Error("Failed to validate args to the compile command", err)
		return err
	}
	return nil
}

// cmdRunCompile executes the CLI compile command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (huffgen.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If huffgen.json can't be found, use the default project configuration.
func cmdRunCompile(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the compile command", err)
		return err
	}

	// If --config was not used, look for `huffgen.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the compile command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the compile command", err)
			return err
		}
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed && existenceError != nil {
		cmdLogger.Error("Failed to run the compile command", existenceError)
		return existenceError
	}

	// Possibility #3: --config flag was not used and huffgen.json was not found, so use the default project config
	if !configFlagUsed && existenceError != nil {
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration instead", configPath))
		projectConfig = config.GetDefaultProjectConfig()
	}

	err = updateProjectConfigWithCompileFlags(cmd, args, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the compile command", err)
		return err
	}

	// Paths within the configuration are relative to the directory of the configuration file
	err = os.Chdir(filepath.Dir(configPath))
	if err != nil {
		cmdLogger.Error("Failed to run the compile command", err)
		return err
	}

	err = projectConfig.Validate()
	if err != nil {
		cmdLogger.Error("Invalid project configuration", err)
		return err
	}

	closeLogs, err := setupGlobalLogger(projectConfig.Logging)
	if err != nil {
		cmdLogger.Error("Failed to set up logging", err)
		return err
	}
	defer closeLogs()

	return compileTarget(cmd, projectConfig)
}

// compileTarget reads the configured syntax tree, generates its artifact and exports it.
func compileTarget(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	contract, err := ast.ReadContractFromFile(projectConfig.Compilation.Target)
	if err != nil {
		cmdLogger.Error("Failed to read the syntax tree at ", colors.Bold, projectConfig.Compilation.Target, colors.Reset, err)
		return err
	}

	constructorArgs, err := projectConfig.Compilation.ParseConstructorArgs()
	if err != nil {
		cmdLogger.Error("Failed to parse the constructor arguments", err)
		return err
	}

	start := time.Now()
	cg := codegen.NewCodegen()
	expandedMacros := 0
	cg.Events.MacroExpanded.Subscribe(func(event codegen.MacroExpandedEvent) error {
		expandedMacros++
		return nil
	})
	cg.Events.ArtifactExported.Subscribe(func(event codegen.ArtifactExportedEvent) error {
		cmdLogger.Info("Artifact ", event.Result, ": ", colors.Bold, event.Path, colors.Reset)
		return nil
	})

	artifact, err := cg.Generate(contract, constructorArgs)
	if err != nil {
		if _, ok := codegen.KindOf(err); ok {
			cmdLogger.Error("Code generation failed for ", colors.Bold, projectConfig.Compilation.Target, colors.Reset, err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCodegenError)
		}
		return err
	}
	cmdLogger.Info("Generated code for ", colors.Bold, projectConfig.Compilation.Target, colors.Reset, " in ",
		time.Since(start).Round(time.Millisecond), " (", expandedMacros, " macro expansions)")
	if artifact.Abi != nil {
		cmdLogger.Debug("ABI functions: ", strings.Join(artifact.Abi.Names(abiutils.EntryTypeFunction), ", "))
		cmdLogger.Debug("ABI events: ", strings.Join(artifact.Abi.Names(abiutils.EntryTypeEvent), ", "))
	}

	printOpcodes, err := cmd.Flags().GetBool("print-opcodes")
	if err != nil {
		return err
	}
	if printOpcodes {
		instructions, err := bytecode.Disassemble(artifact.Runtime)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), bytecode.FormatInstructions(instructions))
	}

	outputPath := projectConfig.Compilation.GetOutputPath()
	if _, err = cg.Export(outputPath); err != nil {
		cmdLogger.Error("Failed to export the artifact", err)
		return err
	}

	if projectConfig.Compilation.ArtifactCacheDirectory != "" {
		artifacts.NotifyArtifactHashStatus(artifact, projectConfig.Compilation.ArtifactCacheDirectory, cmdLogger)
	}
	return nil
}

// setupGlobalLogger replaces the global logger according to the logging configuration. Structured logs are written
// to a timestamped file when a log directory is configured. The returned function closes that file.
func setupGlobalLogger(loggingConfig config.LoggingConfig) (func(), error) {
	logging.GlobalLogger = logging.NewLogger(loggingConfig.Level, loggingConfig.EnableConsoleLogging)
	if loggingConfig.LogDirectory == "" {
		return func() {}, nil
	}

	fileName := fmt.Sprintf("huffgen-%d.log", time.Now().Unix())
	file, err := utils.CreateFile(loggingConfig.LogDirectory, fileName)
	if err != nil {
		return nil, err
	}
	logging.GlobalLogger.AddWriter(file, logging.STRUCTURED)
	return func() {
		logging.GlobalLogger.RemoveWriter(file)
		file.Close()
	}, nil
}
