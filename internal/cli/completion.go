package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for citemap.

Bash:
  $ source <(citemap completion bash)
  $ citemap completion bash > /etc/bash_completion.d/citemap

Zsh:
  $ citemap completion zsh > "${fpath[1]}/_citemap"

Fish:
  $ citemap completion fish > ~/.config/fish/completions/citemap.fish

PowerShell:
  PS> citemap completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// completeFormats completes the comma-separated --format value: earlier
// entries are kept and the last one is completed from the known formats.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	var out []string
	for _, f := range pipeline.FormatNames() {
		if strings.HasPrefix(prefix+f, toComplete) && !strings.Contains(prefix, f+",") {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoSpace
}
