// Package archive extracts zip bundles: glTF models distributed as a .gltf
// plus buffers and textures, and downloaded font families.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unzip extracts zipPath into destDir, preserving directory structure.
// destDir is created if needed. Entries that would escape destDir are
// skipped. Returns the list of extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Clean(filepath.Join(destDir, f.Name))
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		if !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) && absDest != absDir {
			continue // path escape
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		out, err := os.Create(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		rc, err := f.Open()
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("unzip: %w", err)
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

// modelExts are the model files a bundle may contain, in preference order
// (.glb is self-contained, .gltf references siblings, .obj last).
var modelExts = []string{".glb", ".gltf", ".obj"}

// ExtractModelBundle extracts a zipped model archive into destDir and
// returns the path of the model file inside it. Errors if the archive holds
// no recognizable model file.
func ExtractModelBundle(zipPath, destDir string) (modelPath string, err error) {
	files, err := Unzip(zipPath, destDir)
	if err != nil {
		return "", err
	}
	for _, want := range modelExts {
		for _, f := range files {
			if strings.ToLower(filepath.Ext(f)) == want {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("unzip: no model file (.glb/.gltf/.obj) in %s", filepath.Base(zipPath))
}

// FindFontFilesInDir returns paths (relative to baseDir) of .ttf and .otf
// files under dir, preferring names containing "Regular".
func FindFontFilesInDir(dir, baseDir string) (relPaths []string, err error) {
	dir = filepath.Clean(dir)
	baseDir = filepath.Clean(baseDir)
	var regular []string
	var other []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.Contains(strings.ToLower(rel), "regular") {
			regular = append(regular, rel)
		} else {
			other = append(other, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	relPaths = append(relPaths, regular...)
	relPaths = append(relPaths, other...)
	return relPaths, nil
}
