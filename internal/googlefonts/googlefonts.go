// Package googlefonts resolves a font family name to a downloadable TTF URL
// from the google/fonts repository, so the overlay font can be configured by
// family name without bundling font files.
package googlefonts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiBase = "https://api.github.com/repos/google/fonts/contents/ofl"

// Only these hosts are used; no user-supplied URLs.
var allowedRawPrefix = "https://raw.githubusercontent.com/google/fonts/"

type repoFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// folderCandidates converts a display name to candidate folder names in
// google/fonts ofl: "Open Sans" -> "opensans", "open-sans".
func folderCandidates(family string) []string {
	family = strings.TrimSpace(family)
	if family == "" {
		return nil
	}
	lower := strings.ToLower(family)
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

// Resolve returns the raw download URL of a TTF/OTF file for the given font
// family, preferring a non-italic weight. It tries each candidate folder
// name and returns the first hit.
func Resolve(family string) (string, error) {
	candidates := folderCandidates(family)
	if len(candidates) == 0 {
		return "", fmt.Errorf("googlefonts: empty family name")
	}
	var lastErr error
	for _, folder := range candidates {
		u, err := lookupFolder(folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func lookupFolder(folder string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, apiBase+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("googlefonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("googlefonts: family %q not found", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("googlefonts: HTTP %d", resp.StatusCode)
	}
	var files []repoFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("googlefonts: %w", err)
	}
	var preferred, fallback string
	for _, f := range files {
		if f.Type != "file" || f.DownloadURL == "" {
			continue
		}
		lower := strings.ToLower(f.Name)
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if !strings.HasPrefix(f.DownloadURL, allowedRawPrefix) {
			continue
		}
		if strings.Contains(lower, "italic") {
			if fallback == "" {
				fallback = f.DownloadURL
			}
			continue
		}
		preferred = f.DownloadURL
		break
	}
	if preferred != "" {
		return preferred, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("googlefonts: no .ttf/.otf file for %q", folder)
}
