package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	//go:embed *.yaml
	PrefabsFS embed.FS

	//go:embed scripts/*.tengo
	ScriptsFS embed.FS
)

// Dir is the on-disk override directory, relative to the working directory.
func Dir() string {
	return "prefabs"
}

// Load reads a prefab YAML file, preferring the copy under Dir.
func Load(name string) ([]byte, error) {
	return readOverride(PrefabsFS, prefabName(name))
}

// LoadScript reads a behaviour script, preferring prefabs/scripts on disk.
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptsFS, scriptName(name))
}

// ModTime reports the modification time of the on-disk override, if any.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(onDisk(prefabName(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readOverride(embedded fs.FS, name string) ([]byte, error) {
	if data, err := os.ReadFile(onDisk(name)); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, name)
}

// prefabName strips a leading prefabs/ so names resolve inside the embed root.
func prefabName(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), Dir()+"/")
}

// scriptName accepts "follow.tengo", "scripts/follow.tengo" or
// "prefabs/scripts/follow.tengo".
func scriptName(name string) string {
	if name == "" {
		return ""
	}
	s := strings.TrimPrefix(prefabName(name), "scripts/")
	return path.Join("scripts", s)
}

func onDisk(name string) string {
	return filepath.Join(Dir(), filepath.FromSlash(name))
}
