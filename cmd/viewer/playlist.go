package main

import (
	"fmt"
	"strings"

	"asset-viewer/internal/content"
)

// parsePlaylist turns command-line entries of the form "kind=location" (or
// "kind:location" for locations without a scheme) into content descriptors.
// Accepted kinds: image, video, 360_video, 3d_model.
func parsePlaylist(args []string) ([]content.Descriptor, error) {
	var list []content.Descriptor
	for _, arg := range args {
		desc, err := parseEntry(arg)
		if err != nil {
			return nil, err
		}
		list = append(list, desc)
	}
	return list, nil
}

func parseEntry(arg string) (content.Descriptor, error) {
	kindStr, url, ok := strings.Cut(arg, "=")
	if !ok {
		// "image:shot.png" also works, but only when the part before the
		// colon names a kind, so URLs like https://... stay intact.
		before, after, found := strings.Cut(arg, ":")
		if !found {
			return content.Descriptor{}, fmt.Errorf("playlist entry %q: want kind=location", arg)
		}
		if _, known := content.ParseKind(before); !known {
			return content.Descriptor{}, fmt.Errorf("playlist entry %q: unknown kind %q", arg, before)
		}
		kindStr, url = before, after
	}
	kind, known := content.ParseKind(strings.TrimSpace(kindStr))
	if !known {
		return content.Descriptor{}, fmt.Errorf("playlist entry %q: unknown kind %q", arg, kindStr)
	}
	desc := content.Descriptor{Kind: kind, URL: strings.TrimSpace(url)}
	if err := desc.Validate(); err != nil {
		return content.Descriptor{}, err
	}
	return desc, nil
}
