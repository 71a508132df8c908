package cmd

import (
	"github.com/crytic/huffgen/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Target syntax tree
	initCmd.Flags().String("target", "", TargetFlagDescription)

	// Overwrite without prompting
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file without prompting")
	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, args []string, projectConfig *config.ProjectConfig) error {
	return updateCompilationTarget(cmd, args, projectConfig)
}
