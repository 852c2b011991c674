package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/linkext/internal/config"
	"github.com/Paintersrp/linkext/internal/constants"
	"github.com/Paintersrp/linkext/internal/state"
	"github.com/Paintersrp/linkext/pkg/cmd/page"
	"github.com/Paintersrp/linkext/pkg/cmd/pin"
	"github.com/Paintersrp/linkext/pkg/cmd/selection"
	"github.com/Paintersrp/linkext/pkg/cmd/settings"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var (
		workspace string
		verbose   bool
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:     "linkext [file]",
		Version: constants.Version,
		Short:   "Turn the wiki links of a note into markdown links to their URLs.",
		Long: heredoc.Doc(`
			linkext rewrites [[wiki links]] into [text](url) links, taking each URL
			from a front matter field of the linked note, and copies the result to
			the clipboard.

			Without a subcommand it externalizes a selection when --lines or --text
			is given or text is piped on stdin, and the whole page otherwise.

			  linkext notes/reading.md
			  linkext notes/reading.md --lines 4-12
			  pbpaste | linkext notes/reading.md
		`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.SetOutput(cmd.ErrOrStderr(), verbose, quiet)
			return s.UseWorkspace(workspace)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lines") || cmd.Flags().Changed("text") {
				return selection.Run(cmd, s, args)
			}
			// Selected text wins over the whole page, but an empty pipe
			// selects nothing.
			text, err := selection.ReadPiped(cmd)
			if err != nil {
				return err
			}
			if text != "" {
				return selection.RunText(cmd, s, args, text)
			}
			return page.Run(cmd, s, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("vault", "", "Vault directory for this run")
	pf.String("field", "", "Front matter field holding a note's URL for this run")
	pf.StringVarP(&workspace, "workspace", "w", "", "Workspace to use for this run")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log link resolution details")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Hide info notices")
	viper.BindPFlag(config.KeyVaultDir, pf.Lookup("vault"))
	viper.BindPFlag(config.KeyFieldName, pf.Lookup("field"))

	selection.AddFlags(cmd)
	cmd.Flags().Bool("frontmatter", false, "Keep the note's front matter for this run (page mode).")

	cmd.AddCommand(
		page.NewCmdPage(s),
		selection.NewCmdSelection(s),
		pin.NewCmdPin(s),
		settings.NewCmdSettings(s),
	)

	return cmd, nil
}
