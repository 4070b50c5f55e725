package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Print a shell completion script",
		Long: `Print a completion script for the given shell to stdout.

Completion covers commands, flags and browse fragments ('#dr', '#ddt',
...). Typical setups:

  bash        source <(photogrid completion bash)
  zsh         photogrid completion zsh > "${fpath[1]}/_photogrid"
  fish        photogrid completion fish > ~/.config/fish/completions/photogrid.fish
  powershell  photogrid completion powershell | Out-String | Invoke-Expression

Open a new shell afterwards.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletionV2(out, true)
			}
		},
	}
}

// fragmentHints are offered when completing a FRAGMENT argument.
var fragmentHints = []string{
	"#dr\trecent pictures",
	"#dm\tmonths",
	"#dp\tpeople",
	"#dl\tlocation tree",
	"#ddn\tnew pictures",
	"#ddt\tpictures with a tag",
	"#ddp\tpictures of a person",
	"#ddm\tpictures from a month",
	"#ddd\tpictures from a day",
}

// completeFragment completes the first positional argument of commands
// that take a browse fragment.
func completeFragment(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var hits []string
	for _, h := range fragmentHints {
		frag, _, _ := strings.Cut(h, "\t")
		if strings.HasPrefix(frag, toComplete) || strings.HasPrefix(frag[1:], toComplete) {
			hits = append(hits, h)
		}
	}
	return hits, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
