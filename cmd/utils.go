package cmd

import (
	"strings"

	"github.com/crytic/huffgen/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// updateCompilationTarget will update the compilation target in the projectConfig with the positional target argument,
// if one was provided, and then with the --target flag, which takes precedence
func updateCompilationTarget(cmd *cobra.Command, args []string, projectConfig *config.ProjectConfig) error {
	if len(args) > 0 {
		projectConfig.Compilation.Target = args[0]
	}
	if cmd.Flags().Changed("target") {
		newTarget, err := cmd.Flags().GetString("target")
		if err != nil {
			return err
		}
		projectConfig.Compilation.Target = newTarget
	}
	return nil
}

// targetCompletions completes a positional target with syntax tree files, and flags otherwise.
func targetCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 && !strings.HasPrefix(toComplete, "-") {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return unusedFlagCompletions(cmd), cobra.ShellCompDirectiveNoFileComp
}

// unusedFlagCompletions returns the flags of cmd which have not been set yet, for dynamic completion.
func unusedFlagCompletions(cmd *cobra.Command) []string {
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// Include the "--" prefix so the shell offers the flag rather than a positional argument
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	return unusedFlags
}
