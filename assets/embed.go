package assets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed sfx/*.wav
var assetsFS embed.FS

// Dir is checked for on-disk clip overrides before the embedded set.
var Dir = "assets"

// LoadFile loads an asset by assets-relative path, preferring a disk copy.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

func clipPath(name string) string {
	return "sfx/" + name + ".wav"
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
