package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var moves bool

	cmd := &cobra.Command{
		Use:   "info <name|signature>",
		Short: "Inspect a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDiagram(args[0])
			if err != nil {
				return err
			}

			printKeyValue("signature", d.Signature())
			printKeyValue("crossings", fmt.Sprintf("%d", d.Size()))
			printKeyValue("writhe", fmt.Sprintf("%+d", d.Writhe()))
			printKeyValue("components", fmt.Sprintf("%d", d.Components()))
			printKeyValue("strings", fmt.Sprintf("%d", d.Strings()))

			if moves {
				printNewline()
				for _, m := range d.Moves(d.Size() + 2) {
					printDetail("%v", m)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&moves, "moves", false, "list the currently legal moves")

	return cmd
}
