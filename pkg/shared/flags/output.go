package flags

import (
	"github.com/spf13/cobra"

	"github.com/Paintersrp/linkext/internal/output"
)

func AddOutput(cmd *cobra.Command) {
	cmd.Flags().Bool("stdout", false, "Print the result instead of copying it to the clipboard.")
	cmd.Flags().Bool("preview", false, "Render the result as markdown in the terminal.")
}

func HandleOutput(cmd *cobra.Command) output.Options {
	stdout, _ := cmd.Flags().GetBool("stdout")
	preview, _ := cmd.Flags().GetBool("preview")
	return output.Options{Stdout: stdout, Preview: preview}
}
