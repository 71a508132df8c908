package cmd

import (
	"fmt"

	"github.com/crytic/huffgen/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// addCompileFlags adds the various flags for the compile command
func addCompileFlags() error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	compileCmd.Flags().SortFlags = false

	// Config file
	compileCmd.Flags().String("config", "", "path to config file")

	// Target
	compileCmd.Flags().String("target", "", TargetFlagDescription)

	// Output path
	compileCmd.Flags().String("out", "",
		"output path for the artifact (unless a config file is provided, default is the target's name with an .artifact.json extension)")

	// Constructor arguments
	compileCmd.Flags().StringArray("constructor-arg", []string{},
		"constructor argument of the form type:value, e.g. uint256:1000. May be repeated, arguments are encoded in order")

	// Artifact cache directory
	compileCmd.Flags().String("cache-dir", "",
		fmt.Sprintf("directory holding the hash of the previous artifact (unless a config file is provided, default is %q)", defaultConfig.Compilation.ArtifactCacheDirectory))

	// Log level
	compileCmd.Flags().String("log-level", "",
		fmt.Sprintf("log level, one of trace, debug, info, warn, error (unless a config file is provided, default is %s)", defaultConfig.Logging.Level))

	// Print opcodes
	compileCmd.Flags().Bool("print-opcodes", false, "print the disassembled runtime bytecode")
	return nil
}

// updateProjectConfigWithCompileFlags will update the given projectConfig with any CLI arguments that were provided to
// the compile command
func updateProjectConfigWithCompileFlags(cmd *cobra.Command, args []string, projectConfig *config.ProjectConfig) error {
	var err error

	err = updateCompilationTarget(cmd, args, projectConfig)
	if err != nil {
		return err
	}

	// Update the output path
	if cmd.Flags().Changed("out") {
		projectConfig.Compilation.OutputPath, err = cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
	}

	// Replace the constructor arguments
	if cmd.Flags().Changed("constructor-arg") {
		rawArgs, err := cmd.Flags().GetStringArray("constructor-arg")
		if err != nil {
			return err
		}
		projectConfig.Compilation.ConstructorArgs = make([]config.ArgumentConfig, 0, len(rawArgs))
		for _, rawArg := range rawArgs {
			arg, err := config.ParseArgumentConfig(rawArg)
			if err != nil {
				return err
			}
			projectConfig.Compilation.ConstructorArgs = append(projectConfig.Compilation.ConstructorArgs, arg)
		}
	}

	// Update the artifact cache directory
	if cmd.Flags().Changed("cache-dir") {
		projectConfig.Compilation.ArtifactCacheDirectory, err = cmd.Flags().GetString("cache-dir")
		if err != nil {
			return err
		}
	}

	// Update the log level
	if cmd.Flags().Changed("log-level") {
		levelName, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		projectConfig.Logging.Level, err = zerolog.ParseLevel(levelName)
		if err != nil {
			return err
		}
	}
	return nil
}
