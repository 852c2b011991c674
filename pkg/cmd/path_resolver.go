package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/Paintersrp/linkext/internal/fzf"
	"github.com/Paintersrp/linkext/internal/pathutil"
	"github.com/Paintersrp/linkext/internal/state"
)

var pickNote = func(s *state.State, header, query string) (string, error) {
	return fzf.NewFuzzyFinder(s.Vault, header, s.Index.Documents()).Run(query)
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ResolveVaultPath resolves arg, absolute or vault relative, to a path
// inside the vault. A missing ".md" extension is added when only the
// extended name exists.
func ResolveVaultPath(s *state.State, arg string) (string, error) {
	if s == nil || s.Config == nil {
		return "", fmt.Errorf("state configuration is not initialized")
	}
	vaultDir := filepath.Clean(s.VaultDir())
	if strings.TrimSpace(s.VaultDir()) == "" {
		return "", fmt.Errorf("vault directory is not configured")
	}
	if arg == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	var resolved string
	if filepath.IsAbs(arg) {
		resolved = filepath.Clean(arg)
	} else {
		resolved = filepath.Join(vaultDir, filepath.Clean(arg))
	}

	if !pathutil.WithinVault(vaultDir, resolved) {
		return "", fmt.Errorf("path %q is outside the vault %q", resolved, vaultDir)
	}

	if filepath.Ext(resolved) != ".md" {
		if _, err := os.Stat(resolved); errors.Is(err, os.ErrNotExist) {
			if _, err := os.Stat(resolved + ".md"); err == nil {
				resolved += ".md"
			}
		}
	}

	return resolved, nil
}

// ActiveDocument picks the note a command works on: the positional argument,
// else the pinned file, else a note chosen with the fuzzy finder when
// interactive is set. An empty result means there is no active document.
func ActiveDocument(s *state.State, args []string, interactive bool) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		path, err := ResolveVaultPath(s, args[0])
		if err != nil {
			return "", err
		}
		if s.Index != nil && s.Index.Canonical(path) == "" {
			s.Logger.Warn("note is not indexed, its links cannot be resolved", "path", path)
		}
		return path, nil
	}

	if pinned := strings.TrimSpace(s.Workspace.PinnedFile); pinned != "" {
		path, err := ResolveVaultPath(s, pinned)
		if err != nil {
			return "", fmt.Errorf("pinned file: %w", err)
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		s.Logger.Warn("pinned file no longer exists", "path", path)
	}

	if !interactive || s.Index == nil {
		return "", nil
	}

	path, err := pickNote(s, "Select a note to externalize.", "")
	if errors.Is(err, fzf.ErrNoSelection) {
		return "", nil
	}
	return path, err
}

// FindNote opens the fuzzy finder over the opened vault, seeded with query.
func FindNote(s *state.State, header, query string) (string, error) {
	if s.Index == nil {
		return "", fmt.Errorf("vault is not open")
	}
	return pickNote(s, header, query)
}
