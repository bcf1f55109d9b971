package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"image", KindImage, true},
		{"video", KindVideo, true},
		{"360_video", KindPanorama360, true},
		{"3d_model", KindModel3D, true},
		{"IMAGE", KindImage, true},
		{"hologram", KindUnknown, false},
		{"", KindUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseKind(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseKind(%q)", tt.in)
	}
}

func TestKindStringRoundTrips(t *testing.T) {
	for _, k := range []Kind{KindImage, KindVideo, KindPanorama360, KindModel3D} {
		got, ok := ParseKind(k.String())
		require.True(t, ok, "kind %v", k)
		assert.Equal(t, k, got)
	}
}

func TestModelFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want ModelFormat
	}{
		{"duck.gltf", ModelFormatGLTF},
		{"assets/Duck.GLB", ModelFormatGLB},
		{"ship.obj", ModelFormatOBJ},
		{"https://cdn.example.com/duck.glb?token=abc123", ModelFormatGLB},
		{"duck.fbx", ModelFormatNone},
		{"duck.zip", ModelFormatNone},
		{"duck", ModelFormatNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModelFormatFromPath(tt.path), "path %q", tt.path)
	}
}

func TestIsModelBundle(t *testing.T) {
	assert.True(t, IsModelBundle("scene.zip"))
	assert.True(t, IsModelBundle("https://example.com/scene.ZIP?dl=1"))
	assert.False(t, IsModelBundle("scene.glb"))
}

func TestDescriptorValidate(t *testing.T) {
	ok := []Descriptor{
		{Kind: KindImage, URL: "cat.png"},
		{Kind: KindVideo, URL: "clip.mp4"},
		{Kind: KindPanorama360, URL: "tour.mp4"},
		{Kind: KindModel3D, URL: "duck.glb"},
		{Kind: KindModel3D, URL: "scene.zip"},
	}
	for _, d := range ok {
		assert.NoError(t, d.Validate(), "%s %s", d.Kind, d.URL)
	}

	err := Descriptor{Kind: KindModel3D, URL: "duck.fbx"}.Validate()
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, KindModel3D, unsupported.Kind)

	err = Descriptor{Kind: KindUnknown, URL: "thing"}.Validate()
	require.ErrorAs(t, err, &unsupported)

	assert.Error(t, Descriptor{Kind: KindImage, URL: ""}.Validate())
}
