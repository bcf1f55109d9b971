package graphics

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	// Decoders for the image content kinds the viewer accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"asset-viewer/internal/archive"
	"asset-viewer/internal/assetcache"
	"asset-viewer/internal/content"
	"asset-viewer/internal/motion"
	"asset-viewer/internal/overlay"
	"asset-viewer/internal/videotex"
	"asset-viewer/internal/viewer"
)

const (
	// maxTextureDim caps decoded image size before GPU upload.
	maxTextureDim = 4096

	// modelTargetSize is the world-space size the largest model dimension
	// is scaled to.
	modelTargetSize = 2

	// Image content fades in to this opacity over fadeDuration seconds;
	// video holds it from the first frame.
	surfaceOpacity = 0.95
	fadeDuration   = 0.5

	panoramaHintText = "Drag to look around"
)

// Backend implements viewer.Backend on raylib: Prepare fetches and decodes
// off the frame thread, Install creates GPU resources on it.
type Backend struct {
	cache    *assetcache.Cache
	surfaces *Surfaces
}

// NewBackend returns a backend fetching through cache and drawing flat
// content with the given accent border color.
func NewBackend(cache *assetcache.Cache, accent rl.Color) *Backend {
	return &Backend{
		cache:    cache,
		surfaces: NewSurfaces(accent),
	}
}

// Surfaces returns the shared surface cache, for the per-frame SetView call
// and final Unload.
func (b *Backend) Surfaces() *Surfaces {
	return b.surfaces
}

// Prepare fetches and decodes the descriptor's asset. It runs off the frame
// thread and must not touch the GPU.
func (b *Backend) Prepare(desc content.Descriptor) (viewer.Asset, error) {
	switch desc.Kind {
	case content.KindImage:
		path, err := b.cache.Fetch(desc.URL)
		if err != nil {
			return nil, err
		}
		img, err := decodeImage(path)
		if err != nil {
			return nil, err
		}
		return &imageAsset{img: img}, nil

	case content.KindVideo, content.KindPanorama360:
		path, err := b.cache.Fetch(desc.URL)
		if err != nil {
			return nil, err
		}
		player, err := videotex.Open(path)
		if err != nil {
			return nil, err
		}
		return &videoAsset{kind: desc.Kind, player: player}, nil

	case content.KindModel3D:
		path, err := b.cache.Fetch(desc.URL)
		if err != nil {
			return nil, err
		}
		if content.IsModelBundle(path) {
			dest := filepath.Join(b.cache.Dir(), "bundles", strings.TrimSuffix(filepath.Base(path), ".zip"))
			path, err = archive.ExtractModelBundle(path, dest)
			if err != nil {
				return nil, err
			}
		}
		if content.ModelFormatFromPath(path) == content.ModelFormatNone {
			return nil, &content.UnsupportedFormatError{Kind: content.KindModel3D, URL: path}
		}
		return &modelAsset{path: path}, nil
	}
	return nil, &content.UnsupportedFormatError{Kind: desc.Kind, URL: desc.URL}
}

// Install turns a prepared asset into a live node plus its overlay widgets.
// Runs on the frame thread.
func (b *Backend) Install(asset viewer.Asset) (viewer.Node, []overlay.Widget, error) {
	switch a := asset.(type) {
	case *imageAsset:
		tex := uploadRGBA(a.img)
		if !rl.IsTextureValid(tex) {
			return nil, nil, fmt.Errorf("graphics: texture upload failed")
		}
		node := &flatNode{
			kind:     content.KindImage,
			surfaces: b.surfaces,
			tex:      tex,
			fade:     motion.NewFade(surfaceOpacity, fadeDuration),
		}
		return node, nil, nil

	case *videoAsset:
		tex := uploadRGBA(blankFrame(a.player.Width(), a.player.Height()))
		if !rl.IsTextureValid(tex) {
			a.player.Close()
			return nil, nil, fmt.Errorf("graphics: texture upload failed")
		}
		if a.kind == content.KindPanorama360 {
			node := &panoramaNode{surfaces: b.surfaces, tex: tex, player: a.player}
			return node, []overlay.Widget{overlay.NewHint(panoramaHintText)}, nil
		}
		node := &flatNode{
			kind:     content.KindVideo,
			surfaces: b.surfaces,
			tex:      tex,
			player:   a.player,
			alpha:    surfaceOpacity,
		}
		return node, []overlay.Widget{overlay.NewPlayPauseButton(a.player)}, nil

	case *modelAsset:
		model := rl.LoadModel(a.path)
		if model.MeshCount == 0 {
			return nil, nil, fmt.Errorf("graphics: failed to load model %s", filepath.Base(a.path))
		}
		box := rl.GetModelBoundingBox(model)
		size := rl.NewVector3(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y, box.Max.Z-box.Min.Z)
		largest := math32.Max(size.X, math32.Max(size.Y, size.Z))
		scale := float32(1)
		if largest > 0 {
			scale = modelTargetSize / largest
		}
		center := rl.NewVector3((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2, (box.Min.Z+box.Max.Z)/2)
		// Bake recentering into the model transform so the node draws and
		// spins about the origin.
		model.Transform = rl.MatrixTranslate(-center.X, -center.Y, -center.Z)

		anims := rl.LoadModelAnimations(a.path)
		animCount := len(anims)
		for _, anim := range anims {
			rl.UnloadModelAnimation(anim)
		}

		node := &modelNode{model: model, scale: scale}
		info := overlay.NewInfoPanel([]string{
			fmt.Sprintf("Model: %s", filepath.Base(a.path)),
			fmt.Sprintf("Animations: %d", animCount),
			"Drag to rotate, scroll to zoom",
		})
		return node, []overlay.Widget{info}, nil
	}
	return nil, nil, fmt.Errorf("graphics: unknown asset %T", asset)
}

// imageAsset is a decoded image awaiting GPU upload.
type imageAsset struct {
	img *image.RGBA
}

func (a *imageAsset) Kind() content.Kind { return content.KindImage }
func (a *imageAsset) Discard()           {}

// videoAsset is a running decode pipeline awaiting a texture to stream into.
type videoAsset struct {
	kind   content.Kind
	player *videotex.Player
}

func (a *videoAsset) Kind() content.Kind { return a.kind }
func (a *videoAsset) Discard()           { a.player.Close() }

// modelAsset is a fetched (and, for bundles, extracted) model file path.
type modelAsset struct {
	path string
}

func (a *modelAsset) Kind() content.Kind { return content.KindModel3D }
func (a *modelAsset) Discard()           {}

// flatNode is image or video content on the 4:3 surface with the accent
// border, bobbing and swaying with wall-clock time.
type flatNode struct {
	kind     content.Kind
	surfaces *Surfaces
	tex      rl.Texture2D
	player   *videotex.Player // nil for images
	fade     *motion.Fade     // nil for video
	alpha    float32
	bob      float32
	sway     float32
}

func (n *flatNode) Kind() content.Kind { return n.kind }

func (n *flatNode) Animate(now, dt float64) {
	n.bob = motion.Bob(now)
	n.sway = motion.Sway(now)
	if n.fade != nil {
		n.alpha = n.fade.Value(now)
	}
	if n.player != nil {
		if frame := n.player.NextFrame(now); frame != nil {
			updateTexture(n.tex, frame)
		}
	}
}

func (n *flatNode) Draw() {
	n.surfaces.DrawSurface(n.tex, n.alpha, n.bob, n.sway)
}

func (n *flatNode) Dispose() {
	if n.player != nil {
		n.player.Close()
	}
	rl.UnloadTexture(n.tex)
}

// panoramaNode is 360° video on the inward-facing sphere. No automatic
// motion; orientation is user-driven through the orbit controls.
type panoramaNode struct {
	surfaces *Surfaces
	tex      rl.Texture2D
	player   *videotex.Player
}

func (n *panoramaNode) Kind() content.Kind { return content.KindPanorama360 }

func (n *panoramaNode) Animate(now, dt float64) {
	if frame := n.player.NextFrame(now); frame != nil {
		updateTexture(n.tex, frame)
	}
}

func (n *panoramaNode) Draw() {
	n.surfaces.DrawPanorama(n.tex)
}

func (n *panoramaNode) Dispose() {
	n.player.Close()
	rl.UnloadTexture(n.tex)
}

// modelNode is a loaded 3D model scaled so its largest dimension is
// modelTargetSize, centered at the origin, spinning about Y.
type modelNode struct {
	model   rl.Model
	scale   float32
	started bool
	startAt float64
	angle   float32 // degrees, for DrawModelEx
}

func (n *modelNode) Kind() content.Kind { return content.KindModel3D }

func (n *modelNode) Animate(now, dt float64) {
	if !n.started {
		n.started = true
		n.startAt = now
	}
	n.angle = motion.Spin(now-n.startAt) * 180 / math32.Pi
}

func (n *modelNode) Draw() {
	rl.DrawModelEx(n.model, rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0), n.angle,
		rl.NewVector3(n.scale, n.scale, n.scale), rl.White)
}

func (n *modelNode) Dispose() {
	rl.UnloadModel(n.model)
}

// decodeImage loads and decodes an image file into RGBA, downscaling
// anything larger than maxTextureDim on its longest side.
func decodeImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphics: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("graphics: decode %s: %w", filepath.Base(path), err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxTextureDim || h > maxTextureDim {
		ratio := float64(maxTextureDim) / float64(max(w, h))
		return transform.Resize(src, int(float64(w)*ratio), int(float64(h)*ratio), transform.Linear), nil
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)
	return rgba, nil
}

func blankFrame(w, h int) *image.RGBA {
	if w <= 0 {
		w = 2
	}
	if h <= 0 {
		h = 2
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// uploadRGBA creates a GPU texture from an RGBA image.
func uploadRGBA(img *image.RGBA) rl.Texture2D {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	return tex
}

// updateTexture streams a decoded frame into an existing texture. The pixel
// layout of image.RGBA matches color.RGBA, so the buffer is reinterpreted
// in place instead of copied per frame.
func updateTexture(tex rl.Texture2D, frame *image.RGBA) {
	w := frame.Bounds().Dx()
	h := frame.Bounds().Dy()
	if int(tex.Width) != w || int(tex.Height) != h || len(frame.Pix) < 4*w*h {
		return
	}
	pixels := unsafe.Slice((*color.RGBA)(unsafe.Pointer(&frame.Pix[0])), w*h)
	rl.UpdateTexture(tex, pixels)
}
