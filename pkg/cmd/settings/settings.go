package settings

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/linkext/internal/config"
	"github.com/Paintersrp/linkext/internal/state"
	settingsform "github.com/Paintersrp/linkext/internal/tui/settings"
)

var (
	runForm = settingsform.Run
	confirm = func(prompt string) (bool, error) {
		return confirmation.New(prompt, confirmation.No).RunPrompt()
	}
)

func NewCmdSettings(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"cfg"},
		Short:   "CLI settings menu",
		Long: heredoc.Doc(`
			Opens a form to edit the settings of the active workspace: the vault
			directory, the front matter field that holds a note's URL, whether a
			page keeps its own front matter, and the pinned file.

			The subcommands change settings without the form.
		`),
		Example: heredoc.Doc(`
			linkext settings
			linkext settings set field_name source
			linkext settings use research --create
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := runForm(s.Config)
			if err != nil {
				return err
			}
			if saved {
				s.Notifier.Info("Settings saved.")
			}
			return nil
		},
	}

	cmd.AddCommand(
		newCmdShow(s),
		newCmdSet(s),
		newCmdReset(s),
		newCmdUse(s),
	)

	return cmd
}

func newCmdShow(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the settings of the active workspace.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd.OutOrStdout(), s.Config)
		},
	}
}

func show(w io.Writer, cfg *config.Config) error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "workspace: %s\n", cfg.CurrentWorkspace)
	for _, key := range config.SettingKeys {
		value, _ := ws.Value(key)
		fmt.Fprintf(w, "%s: %s\n", key, value)
	}
	return nil
}

func newCmdSet(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting of the active workspace.",
		Long: heredoc.Docf(`
			Valid keys: %s.

			ignored_folders takes a comma separated list. An empty field_name
			falls back to url.
		`, config.SettingKeys),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			s.Notifier.Info(fmt.Sprintf("Updated and Saved: %s", args[0]))
			return nil
		},
	}
}

func newCmdReset(s *state.State) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings, keeping the vault directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := confirm(fmt.Sprintf("Reset settings of workspace %q?", s.Config.CurrentWorkspace))
				if err != nil {
					return err
				}
				if !ok {
					s.Notifier.Info("Reset cancelled.")
					return nil
				}
			}

			if err := s.Config.Reset(); err != nil {
				return err
			}
			s.Notifier.Info("Settings reset to defaults.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newCmdUse(s *state.State) *cobra.Command {
	var create bool
	var vaultDir string

	cmd := &cobra.Command{
		Use:   "use <workspace>",
		Short: "Switch the saved active workspace.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, exists := s.Config.Workspaces[name]; !exists {
				if !create {
					return fmt.Errorf("workspace %q does not exist (use --create)", name)
				}
				if err := s.Config.AddWorkspace(name, &config.Workspace{}, true); err != nil {
					return err
				}
				if vaultDir != "" {
					if err := s.Config.Set(config.KeyVaultDir, vaultDir); err != nil {
						return err
					}
				}
			} else if err := s.Config.SwitchWorkspace(name); err != nil {
				return err
			}

			if err := s.UseWorkspace(name); err != nil {
				return err
			}
			s.Notifier.Info(fmt.Sprintf("Active workspace: %s", name))
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "Create the workspace when it does not exist")
	cmd.Flags().StringVar(&vaultDir, "vaultdir", "", "Vault directory of a created workspace")

	return cmd
}
