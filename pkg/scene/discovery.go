package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// SceneInfo describes a scene that can be rendered
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Lookup
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// ListScenes returns the built-in scenes followed by every JSON scene in dir.
// Files that cannot be read are skipped and reported in the returned error.
func ListScenes(dir string) ([]SceneInfo, error) {
	var scenes []SceneInfo
	for _, id := range BuiltinNames() {
		cfg := builtins[id]()
		scenes = append(scenes, SceneInfo{
			ID:          id,
			Name:        cfg.Name,
			Description: cfg.Description,
			Type:        "builtin",
		})
	}

	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory is not an error
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return scenes, errors.Wrap(err, "scanning scenes directory")
	}

	var found []SceneInfo
	var errs error
	for _, path := range files {
		info, err := readSceneInfo(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		found = append(found, info)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})
	return append(scenes, found...), errs
}

func readSceneInfo(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       path,
		Name:     titleCase(base),
		Type:     "json",
		FilePath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, errors.Wrapf(err, "reading %s", path)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, errors.Wrapf(err, "parsing %s", path)
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// titleCase converts "sliced-sphere" or "sliced_sphere" to "Sliced Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
