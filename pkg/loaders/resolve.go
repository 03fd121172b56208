package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// fileScenePrefix marks scene ids that refer to files in the scenes directory
const fileScenePrefix = "file:"

// ResolveScene builds the scene named by ref and returns it with a short name
// suitable for output directories. ref is one of:
//
//	mirrors               built-in scene id
//	file:spheres          scenes/spheres.txt under scenesDir
//	path/to/scene.txt     any scene file on disk
func ResolveScene(ref, scenesDir string) (*scene.Scene, string, error) {
	switch {
	case ref == "":
		return nil, "", fmt.Errorf("%w: no scene given", scene.ErrUnknownScene)

	case strings.HasPrefix(ref, fileScenePrefix):
		name := strings.TrimPrefix(ref, fileScenePrefix)
		if name == "" || name != filepath.Base(name) || name == ".." {
			return nil, "", fmt.Errorf("%w: invalid scene file id %q", scene.ErrUnknownScene, ref)
		}
		if scenesDir == "" {
			return nil, "", fmt.Errorf("%w: %q (no scenes directory found)", scene.ErrUnknownScene, ref)
		}
		s, err := LoadScene(filepath.Join(scenesDir, name+".txt"))
		return s, name, err

	case strings.HasSuffix(ref, ".txt") || strings.ContainsRune(ref, filepath.Separator) || strings.ContainsRune(ref, '/'):
		s, err := LoadScene(ref)
		return s, strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref)), err

	default:
		s, err := scene.NewBuiltinScene(ref)
		return s, ref, err
	}
}
