package scenes

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Dir is the on-disk directory whose files take precedence over the embedded
// copies. The viewer watches it for hot reload.
const Dir = "scenes"

//go:embed *.yaml
var ScenesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns the scene file name, preferring a copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

// LoadScript returns a scene script, preferring a copy on disk.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports when the disk copy of a scene file last changed.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanScenePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the embedded scenes without their extension.
func Names() []string {
	entries, err := fs.ReadDir(ScenesFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSceneFile(e.Name()) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

func cleanScenePath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
