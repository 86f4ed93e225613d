package files

import (
	"path/filepath"

	"github.com/arthur-debert/tmplfs/pkg/paths"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// findFonts walks root recursively in directory order and returns every font
// file as a template-scoped id. The dependency subtree is skipped; package
// fonts belong to the package. Unreadable directories are ignored.
func findFonts(fsys types.FS, root string) []types.FileID {
	var fonts []types.FileID

	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			name := entry.Name()
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}
			switch {
			case entry.IsDir():
				if rel == "" && name == paths.DependenciesDir {
					continue
				}
				walk(filepath.Join(dir, name), childRel)
			case entry.Type().IsRegular() && isFont(name):
				fonts = append(fonts, types.TemplateFile(childRel))
			}
		}
	}
	walk(root, "")

	return fonts
}
