package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crytic/huffgen/config"
	"github.com/crytic/huffgen/logging/colors"
	"github.com/spf13/cobra"
)

// initCmd represents the command provider for init
var initCmd = &cobra.Command{
	Use:               "init [target]",
	Short:             "Initializes a project configuration",
	Long:              `Initializes a project configuration`,
	Args:              cmdValidateInitArgs,
	ValidArgsFunction: cmdValidInitArgs,
	RunE:              cmdRunInit,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	err := addInitFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the init command", err)
	}

	rootCmd.AddCommand(initCmd)
}

// cmdValidInitArgs will return which files and flags are valid for dynamic completion for the init command
func cmdValidInitArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return targetCompletions(cmd, args, toComplete)
}

// cmdValidateInitArgs makes sure that at most one positional argument, the target, is provided to the init command
func cmdValidateInitArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("init accepts at most one positional argument, the target syntax tree")
		cmdLogger.Error("Failed to validate args to the init command", err)
		return err
	}
	return nil
}

// cmdRunInit executes the init CLI command and updates the project configuration with any flags
func cmdRunInit(cmd *cobra.Command, args []string) error {
	outputFlagUsed := cmd.Flags().Changed("out")
	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	// If we weren't provided an output path (flag was not used), we use our working directory
	if !outputFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the init command", err)
			return err
		}
		outputPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	projectConfig := config.GetDefaultProjectConfig()
	err = updateProjectConfigWithInitFlags(cmd, args, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if _, err = os.Stat(outputPath); err == nil && !force {
		// Prompt user for overwrite confirmation
		fmt.Fprint(cmd.OutOrStdout(), "The file already exists. Overwrite? (y/n): ")
		response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && response == "" {
			cmdLogger.Error("Failed to scan input", err)
			return err
		}

		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(cmd.OutOrStdout(), "Operation canceled.")
			return nil
		}
	}

	err = projectConfig.WriteToFile(outputPath)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	if absoluteOutputPath, err := filepath.Abs(outputPath); err == nil {
		outputPath = absoluteOutputPath
	}
	cmdLogger.Info("Project configuration successfully output to: ", colors.Bold, outputPath, colors.Reset)
	return nil
}
