// Package config loads application settings and expands paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// dataHome is the per-user data directory the default paths live under.
// XDG_DATA_HOME replaces it when set.
const dataHome = "~/.local/share"

// ExpandPath resolves $VAR references and a leading ~ in path. Paths under
// the default data directory follow XDG_DATA_HOME. Anything that cannot be
// resolved is returned as is.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)

	if rest, ok := strings.CutPrefix(path, dataHome+"/"); ok {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, rest)
		}
	}

	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
