package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/linkext/internal/constants"
	"github.com/Paintersrp/linkext/internal/externalize"
	"github.com/Paintersrp/linkext/internal/pathutil"
)

type Workspace struct {
	VaultDir           string   `yaml:"vaultdir"            json:"vault_dir"`
	FieldName          string   `yaml:"field_name"          json:"field_name"`
	IncludeFrontmatter bool     `yaml:"include_frontmatter" json:"include_frontmatter"`
	PinnedFile         string   `yaml:"pinned_file"         json:"pinned_file"`
	IgnoredFolders     []string `yaml:"ignored_folders"     json:"ignored_folders"`
}

type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"         json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`

	home   string     `yaml:"-"`
	active *Workspace `yaml:"-"`
}

const defaultWorkspaceName = "default"

// Setting keys accepted by Set.
const (
	KeyVaultDir           = "vaultdir"
	KeyFieldName          = "field_name"
	KeyIncludeFrontmatter = "include_frontmatter"
	KeyPinnedFile         = "pinned_file"
	KeyIgnoredFolders     = "ignored_folders"
)

var SettingKeys = []string{
	KeyVaultDir,
	KeyFieldName,
	KeyIncludeFrontmatter,
	KeyPinnedFile,
	KeyIgnoredFolders,
}

func newWorkspace() *Workspace {
	return &Workspace{
		FieldName:      constants.DefaultFieldName,
		IgnoredFolders: []string{},
	}
}

func (ws *Workspace) ensureDefaults() {
	ws.FieldName = strings.TrimSpace(ws.FieldName)
	if ws.FieldName == "" {
		ws.FieldName = constants.DefaultFieldName
	}
	if ws.IgnoredFolders == nil {
		ws.IgnoredFolders = []string{}
	}
}

// Options builds the immutable externalize settings for one run.
func (ws *Workspace) Options() externalize.Options {
	return externalize.Options{
		FieldName:          ws.FieldName,
		IncludeFrontmatter: ws.IncludeFrontmatter,
	}
}

// ValidateFieldName rejects names that cannot be a front matter key.
func ValidateFieldName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}
	if strings.ContainsAny(trimmed, ": \t\n") {
		return fmt.Errorf("invalid field name %q: must not contain spaces or colons", name)
	}
	return nil
}

// Load reads the config file under home. Stored values are merged over the
// defaults; an empty file yields a single default workspace.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{home: home}
	if len(strings.TrimSpace(string(data))) != 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	if err := ValidateFieldName(ws.FieldName); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if cfg.CurrentWorkspace == "" {
		if len(cfg.Workspaces) == 0 {
			cfg.Workspaces[defaultWorkspaceName] = newWorkspace()
			cfg.CurrentWorkspace = defaultWorkspaceName
		} else {
			cfg.CurrentWorkspace = cfg.WorkspaceNames()[0]
		}
	}

	return cfg.setActiveWorkspace(cfg.CurrentWorkspace)
}

func (cfg *Config) setActiveWorkspace(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	ws, ok := cfg.Workspaces[name]
	if !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if ws == nil {
		ws = newWorkspace()
		cfg.Workspaces[name] = ws
	}

	ws.ensureDefaults()
	cfg.CurrentWorkspace = name
	cfg.active = ws

	syncWorkspaceWithViper(ws)

	return nil
}

func syncWorkspaceWithViper(ws *Workspace) {
	viper.SetDefault(KeyVaultDir, ws.VaultDir)
	viper.SetDefault(KeyFieldName, ws.FieldName)
	viper.SetDefault(KeyIncludeFrontmatter, ws.IncludeFrontmatter)
	viper.SetDefault(KeyPinnedFile, ws.PinnedFile)
	viper.SetDefault(KeyIgnoredFolders, append([]string(nil), ws.IgnoredFolders...))
}

func (cfg *Config) ActiveWorkspace() (*Workspace, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentWorkspace == "" {
		return nil, fmt.Errorf("no workspace is currently selected")
	}

	if err := cfg.setActiveWorkspace(cfg.CurrentWorkspace); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) MustWorkspace() *Workspace {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		panic(err)
	}
	return ws
}

func (cfg *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(cfg.Workspaces))
	for name := range cfg.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActivateWorkspace switches the active workspace for this run only.
func (cfg *Config) ActivateWorkspace(name string) error {
	return cfg.setActiveWorkspace(name)
}

// SwitchWorkspace switches the active workspace and saves the choice.
func (cfg *Config) SwitchWorkspace(name string) error {
	if err := cfg.setActiveWorkspace(name); err != nil {
		return err
	}
	return cfg.Save()
}

func (cfg *Config) AddWorkspace(name string, ws *Workspace, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}

	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if _, exists := cfg.Workspaces[trimmed]; exists {
		return fmt.Errorf("workspace %q already exists", trimmed)
	}

	if ws == nil {
		ws = newWorkspace()
	}
	ws.ensureDefaults()
	cfg.Workspaces[trimmed] = ws

	if cfg.CurrentWorkspace == "" || makeCurrent {
		if err := cfg.setActiveWorkspace(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

// Set updates one setting of the active workspace and saves.
func (cfg *Config) Set(key, value string) error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	switch key {
	case KeyVaultDir:
		dir := strings.TrimSpace(value)
		if dir != "" {
			abs, err := filepath.Abs(pathutil.ExpandHome(dir, cfg.home))
			if err != nil {
				return fmt.Errorf("resolve vault directory: %w", err)
			}
			dir = abs
		}
		ws.VaultDir = dir
	case KeyFieldName:
		if err := ValidateFieldName(value); err != nil {
			return err
		}
		ws.FieldName = strings.TrimSpace(value)
	case KeyIncludeFrontmatter:
		include, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
		}
		ws.IncludeFrontmatter = include
	case KeyPinnedFile:
		ws.PinnedFile = strings.TrimSpace(value)
	case KeyIgnoredFolders:
		ws.IgnoredFolders = splitList(value)
	default:
		return fmt.Errorf("unknown setting %q. Valid settings are %s", key, strings.Join(SettingKeys, ", "))
	}

	ws.ensureDefaults()
	return cfg.Save()
}

// Value returns the setting named key as Set would accept it.
func (ws *Workspace) Value(key string) (string, bool) {
	switch key {
	case KeyVaultDir:
		return ws.VaultDir, true
	case KeyFieldName:
		return ws.FieldName, true
	case KeyIncludeFrontmatter:
		return strconv.FormatBool(ws.IncludeFrontmatter), true
	case KeyPinnedFile:
		return ws.PinnedFile, true
	case KeyIgnoredFolders:
		return strings.Join(ws.IgnoredFolders, ", "), true
	}
	return "", false
}

// Reset restores the active workspace to defaults, keeping its vault.
func (cfg *Config) Reset() error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	vault := ws.VaultDir
	*ws = *newWorkspace()
	ws.VaultDir = vault
	return cfg.Save()
}

func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (cfg *Config) GetConfigPath() string {
	if cfg.home != "" {
		return GetConfigPath(cfg.home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

// Save overwrites the config file with the current settings.
func (cfg *Config) Save() error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if err := ValidateFieldName(ws.FieldName); err != nil {
		return err
	}

	syncWorkspaceWithViper(ws)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if configPath == "" {
		return fmt.Errorf("could not determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
