package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script for barchart.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the given shell and print it to stdout.

  $ source <(barchart completion bash)
  $ barchart completion zsh > "${fpath[1]}/_barchart"
  $ barchart completion fish > ~/.config/fish/completions/barchart.fish
  PS> barchart completion powershell | Out-String | Invoke-Expression

Completions cover subcommands, format names for --format and sort names for --sort.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
