// Package prefabs ships the player tuning spec and sequence scripts. Both
// are embedded so the binary is self-contained, but a checkout's prefabs/
// directory overrides the embedded copy, which is what makes live tuning
// with the watcher work.
package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var specsFS embed.FS

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Load returns a spec file by name, preferring the on-disk copy under
// prefabs/ over the embedded one. Accepts "player.yaml" or
// "prefabs/player.yaml".
func Load(name string) ([]byte, error) {
	clean := specPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return specsFS.ReadFile(clean)
}

// LoadScript returns a sequence script by name. Accepts "respawn.tengo",
// "scripts/respawn.tengo" or the full prefabs/ path. Scripts are not
// disk-overridden; a script change lands through the embedded copy on
// rebuild or through the watcher-driven reload while running.
func LoadScript(name string) ([]byte, error) {
	return scriptsFS.ReadFile(scriptPath(name))
}

// ModTime reports the on-disk modification time of a spec or script, by the
// same names Load and LoadScript accept. ok is false when no disk copy
// exists, i.e. only the embedded version is available.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(specPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func specPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "prefabs/")
	return s
}

func scriptPath(name string) string {
	s := specPath(name)
	return path.Join("scripts", strings.TrimPrefix(s, "scripts/"))
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
