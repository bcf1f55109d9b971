package content

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind tags the type of visual content a descriptor refers to.
// The string forms match the wire values used by content descriptors
// ("image", "video", "360_video", "3d_model").
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
	KindPanorama360
	KindModel3D
)

// String returns the wire form of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindPanorama360:
		return "360_video"
	case KindModel3D:
		return "3d_model"
	}
	return "unknown"
}

// ParseKind maps a wire string to a Kind. Unrecognized strings return
// KindUnknown and false.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image":
		return KindImage, true
	case "video":
		return KindVideo, true
	case "360_video":
		return KindPanorama360, true
	case "3d_model":
		return KindModel3D, true
	}
	return KindUnknown, false
}

// Descriptor is an immutable content-load request: what to display and where
// to fetch it from. URL may be an http(s) URL or a local file path.
type Descriptor struct {
	Kind Kind
	URL  string
}

// UnsupportedFormatError reports a descriptor the viewer cannot render:
// an unknown kind or a model URL with an unrecognized extension.
type UnsupportedFormatError struct {
	Kind Kind
	URL  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Kind == KindModel3D {
		return fmt.Sprintf("content: unsupported model format %q", e.URL)
	}
	return fmt.Sprintf("content: unsupported content kind %q", e.Kind)
}

// ModelFormat identifies the loader used for a 3D model file.
type ModelFormat int

const (
	ModelFormatNone ModelFormat = iota
	ModelFormatGLTF
	ModelFormatGLB
	ModelFormatOBJ
)

// ModelFormatFromPath returns the model format for a URL or path based on its
// extension. Query strings are ignored. Zip archives return ModelFormatNone;
// callers extract them first and re-detect on the contained file.
func ModelFormatFromPath(path string) ModelFormat {
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf":
		return ModelFormatGLTF
	case ".glb":
		return ModelFormatGLB
	case ".obj":
		return ModelFormatOBJ
	}
	return ModelFormatNone
}

// IsModelBundle reports whether the URL or path looks like a zip archive
// (glTF models are often distributed as a .gltf plus buffers and textures in
// one zip).
func IsModelBundle(path string) bool {
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	return strings.ToLower(filepath.Ext(path)) == ".zip"
}

// Validate checks a descriptor before any asset work starts. Unknown kinds
// and model URLs with unrecognized extensions fail with
// UnsupportedFormatError; an empty URL fails with a plain error.
func (d Descriptor) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("content: empty URL")
	}
	switch d.Kind {
	case KindImage, KindVideo, KindPanorama360:
		return nil
	case KindModel3D:
		if IsModelBundle(d.URL) || ModelFormatFromPath(d.URL) != ModelFormatNone {
			return nil
		}
		return &UnsupportedFormatError{Kind: KindModel3D, URL: d.URL}
	}
	return &UnsupportedFormatError{Kind: d.Kind, URL: d.URL}
}
