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
var TuningFS embed.FS

//go:embed *.schema.json
var SchemaFS embed.FS

//go:embed scripts/*.tengo
var ScriptFS embed.FS

// Dir holds on-disk tuning and scripts that take precedence over the
// embedded copies. main sets it from -prefabs; tests use a temp dir.
var Dir = "prefabs"

// Load returns a tuning file such as game.yaml.
func Load(name string) ([]byte, error) {
	return readOverride(TuningFS, tuningPath(name))
}

// LoadScript returns a director script. "director.tengo",
// "scripts/director.tengo" and "prefabs/scripts/director.tengo" all name
// the same file.
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptFS, scriptPath(name))
}

// ModTime reports when the on-disk copy of a tuning file last changed.
// ok is false when only the embedded copy exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(overridePath(tuningPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readOverride(fsys embed.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(overridePath(rel)); err == nil {
		return data, nil
	}
	return fsys.ReadFile(rel)
}

// tuningPath maps a name to its slash path relative to Dir.
func tuningPath(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func scriptPath(name string) string {
	if name == "" {
		return ""
	}
	rel := strings.TrimPrefix(tuningPath(name), "scripts/")
	return path.Join("scripts", rel)
}

func overridePath(rel string) string {
	return filepath.Join(Dir, filepath.FromSlash(rel))
}
