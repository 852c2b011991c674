package pin

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/linkext/internal/config"
	"github.com/Paintersrp/linkext/internal/state"
	cmdpkg "github.com/Paintersrp/linkext/pkg/cmd"
)

func NewCmdPin(s *state.State) *cobra.Command {
	var check, unpin bool

	cmd := &cobra.Command{
		Use:     "pin [file|query] [--check] [--clear]",
		Aliases: []string{"pn"},
		Short:   "Pin the note used when no file is given, or check the current pin.",
		Long: heredoc.Doc(`
			The pin command stores a note that page and selection use when they are
			run without a file argument. The pin is saved per workspace.

			An argument that is not a note in the vault is used as the starting
			query of the fuzzy finder.

			Examples:
			  linkext pin notes/reading.md
			  linkext pin reading
			  linkext pin --check
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				pinned := s.Workspace.PinnedFile
				if pinned == "" {
					pinned = "(none)"
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Current pinned file:", pinned)
				return nil
			}
			if unpin {
				if err := s.Config.Set(config.KeyPinnedFile, ""); err != nil {
					return err
				}
				s.Notifier.Info("Pin cleared.")
				return nil
			}
			return run(cmd, s, args)
		},
	}

	cmd.Flags().BoolVarP(&check, "check", "c", false, "Check the current pinned file")
	cmd.Flags().BoolVar(&unpin, "clear", false, "Remove the current pin")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, args []string) error {
	var query string
	if len(args) > 0 {
		path, err := cmdpkg.ResolveVaultPath(s, args[0])
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return pin(s, path)
		}
		query = args[0]
	}

	if !cmdpkg.IsTerminal(cmd.InOrStdin()) {
		if query != "" {
			return errors.New("the specified file does not exist")
		}
		return errors.New("a file argument is required when not running in a terminal")
	}
	if err := s.OpenVault(); err != nil {
		return err
	}
	choice, err := cmdpkg.FindNote(s, "Select file to pin.", query)
	if err != nil {
		return fmt.Errorf("error fuzzyfinding note: %w", err)
	}
	return pin(s, choice)
}

func pin(s *state.State, path string) error {
	if err := s.Config.Set(config.KeyPinnedFile, path); err != nil {
		return err
	}
	s.Notifier.Info(fmt.Sprintf("Pinned %s", path))
	return nil
}
