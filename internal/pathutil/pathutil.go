package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// VaultRelative returns the path to target relative to the provided vault directory.
// The returned path always uses forward slashes.
func VaultRelative(vaultDir, target string) (string, error) {
	rel, err := filepath.Rel(NormalizePath(vaultDir), NormalizePath(target))
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// WithinVault reports whether target sits inside vaultDir.
func WithinVault(vaultDir, target string) bool {
	rel, err := VaultRelative(vaultDir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// CleanLinkpath prepares the path part of a wiki link for lookup: forward
// slashes, no surrounding whitespace or slashes, no leading "./".
func CleanLinkpath(link string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(link, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "./")
	return strings.Trim(cleaned, "/")
}

// IsExternal reports whether link points outside the vault (a URL or a
// mailto address).
func IsExternal(link string) bool {
	lowered := strings.ToLower(link)
	return strings.Contains(lowered, "://") || strings.HasPrefix(lowered, "mailto:")
}

// ExpandHome replaces a leading "~" in p with home. An empty home falls back
// to the current user's home directory.
func ExpandHome(p, home string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		home = dir
	}
	return filepath.Join(home, p[1:])
}
