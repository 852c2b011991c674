package page

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/linkext/internal/output"
	"github.com/Paintersrp/linkext/internal/state"
	cmdpkg "github.com/Paintersrp/linkext/pkg/cmd"
	"github.com/Paintersrp/linkext/pkg/shared/flags"
)

const copiedNotice = "Externalized page was copied to clipboard!"

func NewCmdPage(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "page [file]",
		Aliases: []string{"p"},
		Short:   "Externalize the wiki links of a whole note.",
		Long: heredoc.Doc(`
			Rewrites every [[wiki link]] of a note into a markdown link whose URL is
			taken from the linked note's front matter, then copies the result to the
			clipboard. Links to notes without the field become plain text.

			The note is the file argument, else the pinned file, else one picked
			with the fuzzy finder. The front matter of the note itself is dropped
			unless include_frontmatter is set or --frontmatter is given.
		`),
		Example: heredoc.Doc(`
			linkext page notes/reading.md
			linkext page --frontmatter --stdout
			linkext page --field source
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, s, args)
		},
	}

	cmd.Flags().Bool("frontmatter", false, "Keep the note's front matter for this run.")
	flags.AddOutput(cmd)

	return cmd
}

// Run externalizes the active note. Callers other than the page command
// must register the same flags.
func Run(cmd *cobra.Command, s *state.State, args []string) error {
	if err := s.OpenVault(); err != nil {
		return err
	}

	doc, err := cmdpkg.ActiveDocument(s, args, cmdpkg.IsTerminal(cmd.InOrStdin()))
	if err != nil {
		return err
	}
	if doc == "" {
		s.Notifier.Warn("No active file.")
		return nil
	}

	content, err := s.Handler.ReadNote(doc)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", doc, err)
	}

	opts := s.Options()
	if cmd.Flags().Changed("frontmatter") {
		opts.IncludeFrontmatter, _ = cmd.Flags().GetBool("frontmatter")
	}

	result := s.Service().Page(doc, content, opts)

	outOpts := flags.HandleOutput(cmd)
	if err := output.Deliver(cmd.OutOrStdout(), result, outOpts); err != nil {
		return err
	}
	if !outOpts.Stdout {
		s.Notifier.Info(copiedNotice)
	}
	return nil
}
