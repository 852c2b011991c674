package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/linkext/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists creates an empty config file under homeDir when there
// is none yet.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}

// RequireVault reports a ConfigInitError when vaultDir is unset or missing.
func RequireVault(vaultDir string) error {
	if strings.TrimSpace(vaultDir) == "" {
		return &ConfigInitError{Err: ErrNoVault}
	}

	info, err := os.Stat(vaultDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ConfigInitError{Path: vaultDir, Err: ErrVaultNotFound}
		}
		return fmt.Errorf("failed to check vault directory: %w", err)
	}
	if !info.IsDir() {
		return &ConfigInitError{Path: vaultDir, Err: ErrVaultNotDir}
	}
	return nil
}
