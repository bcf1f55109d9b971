// Package fonts locates the font used by the overlay widgets and the HUD.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts are the file extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate base directories for fonts, relative to the
// process working directory. The first that exists is used when scanning.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative paths of all font files under dir, forward-slash
// separated. Only .ttf and .otf are included. A missing dir yields an empty
// list.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindDefault returns the absolute-ish path of the first font found under
// BaseDirs, or "" when none exists. Fonts named "Regular" sort first within
// a scan because ScanDir walks lexically and families ship a Regular weight.
func FindDefault() string {
	for _, base := range BaseDirs() {
		files, err := ScanDir(base)
		if err != nil || len(files) == 0 {
			continue
		}
		for _, f := range files {
			if strings.Contains(strings.ToLower(f), "regular") {
				return filepath.Join(base, filepath.FromSlash(f))
			}
		}
		return filepath.Join(base, filepath.FromSlash(files[0]))
	}
	return ""
}
