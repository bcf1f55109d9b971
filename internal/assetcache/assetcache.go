// Package assetcache fetches remote assets (textures, videos, models) into a
// local cache directory so the graphics layer can load them from disk. Local
// paths pass through untouched.
package assetcache

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"

// Cache fetches URLs into a directory and reuses already-downloaded files.
type Cache struct {
	dir    string
	client *http.Client
}

// New returns a cache rooted at dir. The directory is created on first
// fetch.
func New(dir string) *Cache {
	return &Cache{
		dir:    dir,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// IsRemote reports whether the given location needs fetching.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch resolves a content URL to a local file path. Local paths are
// returned as-is (after an existence check); remote URLs are downloaded into
// the cache directory. The filename is derived from the URL path or
// Content-Disposition; the extension from the URL or Content-Type.
func (c *Cache) Fetch(location string) (string, error) {
	if !IsRemote(location) {
		if _, err := os.Stat(location); err != nil {
			return "", fmt.Errorf("assetcache: %w", err)
		}
		return location, nil
	}

	req, err := http.NewRequest(http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("assetcache: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assetcache: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assetcache: HTTP %d for %s", resp.StatusCode, location)
	}

	ext := extensionFromURL(location)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(location)
	}
	if name == "" {
		name = "asset"
	}
	name = sanitizeFilename(name)
	if ext != "" && !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("assetcache: %w", err)
	}
	savedPath := filepath.Join(c.dir, name)
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("assetcache: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("assetcache: %w", err)
	}
	return savedPath, nil
}

// knownExts are the asset extensions the viewer loads directly.
var knownExts = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp",
	".mp4", ".webm", ".mkv", ".mov",
	".gltf", ".glb", ".obj", ".zip",
	".ttf", ".otf",
}

func extensionFromURL(u string) string {
	path := u
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range knownExts {
		if ext == known {
			return ext
		}
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "gif"):
		return ".gif"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "mp4"):
		return ".mp4"
	case strings.Contains(ct, "webm"):
		return ".webm"
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf"):
		return ".gltf"
	case strings.Contains(ct, "zip"):
		return ".zip"
	case strings.Contains(ct, "font"), strings.Contains(ct, "ttf"):
		return ".ttf"
	}
	return ""
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		s = strings.Trim(s, "\" ")
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return s
	}
	return ""
}

func filenameFromURL(u string) string {
	path := u
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "asset"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
