package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"doll-web/pkg/services"
)

var flagPlain bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render CMS rich text to HTML",
	Long: `Render reads lightly formatted CMS text from a file (or stdin) and prints the
HTML the site would show for it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		in, err := stdinOrFile(path)
		if err != nil {
			return err
		}
		out := services.RenderRichTextString(string(in))
		if flagPlain {
			out = services.PlainText(out)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of HTML")
}
