package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:       "completion [bash|zsh]",
	Short:     "Generate shell completion code for the specified shell (bash or zsh)",
	ValidArgs: []string{"bash", "zsh"},
	Long: `To load completions:

Bash:

  $ source <(huffgen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ huffgen completion bash > /etc/bash_completion.d/huffgen
  # macOS:
  $ huffgen completion bash > $(brew --prefix)/etc/bash_completion.d/huffgen

Zsh:

  $ huffgen completion zsh > "${fpath[1]}/_huffgen"`,
	Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		switch args[0] {
		case "bash":
			err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		}
		if err != nil {
			return fmt.Errorf("unable to generate a %s completion: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
