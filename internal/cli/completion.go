package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command, which emits a
// completion script for the requested shell on stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for skein on stdout.

Load it directly for the current session:

  $ source <(skein completion bash)
  $ skein completion fish | source
  PS> skein completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  $ skein completion bash > /etc/bash_completion.d/skein
  $ skein completion zsh > "${fpath[1]}/_skein"
  $ skein completion fish > ~/.config/fish/completions/skein.fish

Zsh users need compinit enabled ("autoload -U compinit; compinit" in
~/.zshrc) before completions take effect.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
