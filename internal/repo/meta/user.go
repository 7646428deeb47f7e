package meta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/svcs/internal/util"
)

var ErrInvalidUsername = errors.New("username must be a single non-empty line")

// Username returns the configured username, or "" when unset.
func (mc *MetaContext) Username() (string, error) {
	data, err := mc.FS.ReadFile(mc.Config.ConfigFile())
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config %q: %w", mc.Config.ConfigFile(), err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// SetUsername replaces the configured username.
func (mc *MetaContext) SetUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "\r\n") {
		return ErrInvalidUsername
	}
	if err := util.WriteFileAtomic(mc.FS, mc.Config.ConfigFile(), []byte(name)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	mc.Logger.Debug("username set", "username", name)
	return nil
}
