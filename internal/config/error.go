package config

import (
	"errors"
	"fmt"
)

var (
	ErrNoVault       = errors.New(`no vault configured. Run "linkext settings set vaultdir <dir>" or pass --vault`)
	ErrVaultNotFound = errors.New("vault directory does not exist")
	ErrVaultNotDir   = errors.New("vault path is not a directory")
)

// ConfigInitError reports a vault directory that cannot be opened. Err is
// one of the ErrNoVault, ErrVaultNotFound or ErrVaultNotDir sentinels.
type ConfigInitError struct {
	Path string
	Err  error
}

func (e *ConfigInitError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Path)
}

func (e *ConfigInitError) Unwrap() error {
	return e.Err
}
