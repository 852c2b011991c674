package state

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/Paintersrp/linkext/internal/config"
	"github.com/Paintersrp/linkext/internal/externalize"
	"github.com/Paintersrp/linkext/internal/handler"
	"github.com/Paintersrp/linkext/internal/logger"
	"github.com/Paintersrp/linkext/internal/notice"
	"github.com/Paintersrp/linkext/internal/pathutil"
	"github.com/Paintersrp/linkext/internal/vault"
)

type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	WorkspaceName string
	Home          string
	Vault         string
	Handler       *handler.FileHandler
	Index         *vault.Index
	Logger        *log.Logger
	Notifier      externalize.Notifier
}

// NewState loads the config under home. The vault is not touched until
// OpenVault is called, so settings commands work before one is configured.
func NewState(home string) (*State, error) {
	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	s := &State{
		Config:   cfg,
		Home:     home,
		Logger:   logger.New(os.Stderr, false),
		Notifier: notice.NewTerminal(os.Stderr, false),
	}
	s.refreshWorkspace()
	return s, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}
	return config.Load(home)
}

// UseWorkspace activates name for this run without saving it.
func (s *State) UseWorkspace(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if err := s.Config.ActivateWorkspace(name); err != nil {
		return err
	}
	s.refreshWorkspace()
	return nil
}

// SetOutput points logging and notices at w.
func (s *State) SetOutput(w io.Writer, verbose, quiet bool) {
	s.Logger = logger.New(w, verbose)
	s.Notifier = notice.NewTerminal(w, quiet)
}

func (s *State) refreshWorkspace() {
	s.Workspace = s.Config.MustWorkspace()
	s.WorkspaceName = s.Config.CurrentWorkspace
	s.Vault = s.Workspace.VaultDir
}

// VaultDir is the vault of this run: the --vault flag or LINKEXT_VAULTDIR
// when set, the active workspace otherwise.
func (s *State) VaultDir() string {
	dir := strings.TrimSpace(viper.GetString(config.KeyVaultDir))
	if dir == "" {
		dir = s.Workspace.VaultDir
	}
	if dir == "" {
		return ""
	}
	// Flag and environment values may be relative to the working directory.
	abs, err := filepath.Abs(pathutil.ExpandHome(dir, s.Home))
	if err != nil {
		return dir
	}
	return abs
}

// Options builds the externalize settings for this run from the workspace
// and any flag or environment overrides.
func (s *State) Options() externalize.Options {
	opts := s.Workspace.Options()
	if field := strings.TrimSpace(viper.GetString(config.KeyFieldName)); field != "" {
		opts.FieldName = field
	}
	if viper.IsSet(config.KeyIncludeFrontmatter) {
		opts.IncludeFrontmatter = viper.GetBool(config.KeyIncludeFrontmatter)
	}
	return opts
}

// OpenVault indexes the vault's notes. Repeated calls reuse the first index.
func (s *State) OpenVault() error {
	if s.Index != nil {
		return nil
	}

	dir := s.VaultDir()
	if err := config.RequireVault(dir); err != nil {
		return err
	}

	h := handler.NewFileHandler(dir)
	files, err := h.WalkFiles(s.Workspace.IgnoredFolders)
	if err != nil {
		return fmt.Errorf("failed to list notes in %s: %w", dir, err)
	}

	idx := vault.NewIndex(dir, vault.Config{
		IgnoredFolders: append([]string(nil), s.Workspace.IgnoredFolders...),
		Logger:         s.Logger,
	})
	if err := idx.Build(files); err != nil {
		return err
	}
	s.Logger.Debug("vault indexed", "dir", dir, "notes", len(files))

	s.Vault = dir
	s.Handler = h
	s.Index = idx
	return nil
}

// Service returns the externalizer bound to the opened vault.
func (s *State) Service() *externalize.Service {
	svc := &externalize.Service{Notifier: s.Notifier, Logger: s.Logger}
	if s.Index != nil {
		svc.Host = s.Index
	}
	return svc
}
