package selection

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/linkext/internal/output"
	"github.com/Paintersrp/linkext/internal/state"
	cmdpkg "github.com/Paintersrp/linkext/pkg/cmd"
	"github.com/Paintersrp/linkext/pkg/shared/flags"
)

const copiedNotice = "Externalized text was copied to clipboard!"

// ErrNoSelection is returned when no selected text could be found.
var ErrNoSelection = errors.New("no selection: pass --lines, --text or pipe text on stdin")

func NewCmdSelection(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "selection [file]",
		Aliases: []string{"sel", "s"},
		Short:   "Externalize the wiki links of selected text.",
		Long: heredoc.Doc(`
			Rewrites the [[wiki links]] of a piece of text, resolving them against
			the links of a note, and copies the result to the clipboard.

			The selection is a line range of the note (--lines), the --text value,
			or text piped on stdin. Links that do not appear in the note stay plain
			text.
		`),
		Example: heredoc.Doc(`
			linkext selection notes/reading.md --lines 10-24
			sed -n 10,24p notes/reading.md | linkext selection notes/reading.md
			linkext selection --text "See [[Go]] and [[Rust|the crab]]" --stdout
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd, s, args)
		},
	}

	AddFlags(cmd)

	return cmd
}

// AddFlags registers the flags Run reads.
func AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Externalize this text instead of a line range or stdin.")
	flags.AddLines(cmd)
	flags.AddOutput(cmd)
}

// StdinHasData reports whether text is piped or redirected into the
// command. Terminals and character devices such as /dev/null carry none.
func StdinHasData(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}

// ReadPiped returns the text piped on stdin. It is empty when stdin is a
// terminal or the pipe carried nothing.
func ReadPiped(cmd *cobra.Command) (string, error) {
	if !StdinHasData(cmd) {
		return "", nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// Run externalizes the --text value, the --lines range of the active note or
// the text piped on stdin, in that order. An empty pipe is no selection.
func Run(cmd *cobra.Command, s *state.State, args []string) error {
	from, to, hasLines, err := flags.HandleLines(cmd)
	if err != nil {
		return err
	}

	switch {
	case cmd.Flags().Changed("text"):
		text, _ := cmd.Flags().GetString("text")
		return externalize(cmd, s, args, true, func(string) (string, error) {
			return text, nil
		})
	case hasLines:
		return externalize(cmd, s, args, true, func(doc string) (string, error) {
			if doc == "" {
				return "", errors.New("--lines needs a note: pass a file or pin one")
			}
			return s.Handler.ReadLines(doc, from, to)
		})
	}

	text, err := ReadPiped(cmd)
	if err != nil {
		return err
	}
	if text == "" {
		return ErrNoSelection
	}
	return RunText(cmd, s, args, text)
}

// RunText externalizes text that was already read from stdin. The fuzzy
// finder is never offered since stdin is not a terminal.
func RunText(cmd *cobra.Command, s *state.State, args []string, text string) error {
	return externalize(cmd, s, args, false, func(string) (string, error) {
		return text, nil
	})
}

func externalize(cmd *cobra.Command, s *state.State, args []string, interactive bool, selected func(doc string) (string, error)) error {
	if err := s.OpenVault(); err != nil {
		return err
	}

	doc, err := cmdpkg.ActiveDocument(s, args, interactive && cmdpkg.IsTerminal(cmd.InOrStdin()))
	if err != nil {
		return err
	}
	text, err := selected(doc)
	if err != nil {
		return err
	}

	result := s.Service().Selection(doc, text, s.Options())

	outOpts := flags.HandleOutput(cmd)
	if err := output.Deliver(cmd.OutOrStdout(), result, outOpts); err != nil {
		return err
	}
	if !outOpts.Stdout {
		s.Notifier.Info(copiedNotice)
	}
	return nil
}
