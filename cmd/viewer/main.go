package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"asset-viewer/internal/assetcache"
	"asset-viewer/internal/content"
	"asset-viewer/internal/debug"
	"asset-viewer/internal/fonts"
	"asset-viewer/internal/googlefonts"
	"asset-viewer/internal/graphics"
	"asset-viewer/internal/logger"
	"asset-viewer/internal/overlay"
	"asset-viewer/internal/stage"
	"asset-viewer/internal/viewer"
	"asset-viewer/internal/viewerconfig"
)

const windowTitle = "Asset Viewer"

func main() {
	viewerconfig.LoadEnvFile(".env")
	prefs, err := viewerconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	playlist, err := parsePlaylist(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		usage()
		os.Exit(2)
	}
	if len(playlist) == 0 {
		usage()
		os.Exit(2)
	}

	log := logger.New("")
	cache := assetcache.New(prefs.CacheDir)

	graphics.OpenWindow(prefs.WindowWidth, prefs.WindowHeight, windowTitle, prefs.TargetFPS)

	backend := graphics.NewBackend(cache, parseAccent(prefs.AccentColor))
	loop := graphics.NewLoop()
	vp := viewer.New(backend, viewer.WithLogger(log), viewer.WithShutdown(loop.Stop))
	viewer.Activate(vp)

	stg := stage.New(prefs.GridVisible)
	hud := debug.New()
	hud.SetShowFPS(prefs.ShowFPS)
	hud.SetShowMemAlloc(prefs.ShowMemAlloc)
	hud.SetShowStatus(true)

	font := loadOverlayFont(prefs, cache, log)
	if font.Texture.ID != 0 {
		overlay.SetFont(font)
		hud.SetFont(font)
	}

	index := 0
	load := func() {
		if err := viewer.Load(playlist[index]); err != nil {
			log.Logf("playlist item %d: %v", index, err)
		}
	}
	load()

	update := func(now, dt float64) {
		switch {
		case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyN):
			index = (index + 1) % len(playlist)
			load()
		case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyP):
			index = (index - 1 + len(playlist)) % len(playlist)
			load()
		case rl.IsKeyPressed(rl.KeyC):
			vp.ClearContent()
		case rl.IsKeyPressed(rl.KeyG):
			stg.GridVisible = !stg.GridVisible
		case rl.IsKeyPressed(rl.KeyF):
			hud.SetShowFPS(!hud.ShowFPS)
			hud.SetShowMemAlloc(!hud.ShowMemAlloc)
		}

		graphics.UpdateOrbit(vp.Controls())
		vp.Update(now, dt)
		vp.Overlays().Update()
		hud.SetStatus(statusLine(vp, playlist[index]))
	}

	draw := func() {
		stg.Apply(vp.Controls())
		backend.Surfaces().SetView(vp.Controls().Eye())

		stg.Begin(vp.Controls().InPanorama())
		vp.Draw()
		stg.End()

		vp.Overlays().Draw()
		hud.Draw()
	}

	loop.Run(update, draw)

	viewer.Shutdown()
	backend.Surfaces().Unload()
	if font.Texture.ID != 0 {
		rl.UnloadFont(font)
	}
	graphics.CloseWindow()
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: viewer kind=location [kind=location ...]")
	fmt.Fprintln(os.Stderr, "kinds: image, video, 360_video, 3d_model")
	fmt.Fprintln(os.Stderr, "example: viewer image=shots/cat.png 3d_model=https://example.com/duck.glb")
}

// statusLine summarizes the viewport for the HUD: the last error if one is
// set, otherwise the live content, otherwise the item still loading,
// otherwise the cleared state.
func statusLine(vp *viewer.Viewport, current content.Descriptor) string {
	if err := vp.LastError(); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	if node := vp.Node(); node != nil {
		return fmt.Sprintf("%s: %s", node.Kind(), filepath.Base(current.URL))
	}
	if vp.Loading() {
		return fmt.Sprintf("loading %s", filepath.Base(current.URL))
	}
	return "no content"
}

// loadOverlayFont finds a font for the overlay text: a bundled font first,
// then the configured family downloaded through the cache. Zero value means
// raylib's default font.
func loadOverlayFont(prefs viewerconfig.Prefs, cache *assetcache.Cache, log *logger.Logger) rl.Font {
	path := fonts.FindDefault()
	if path == "" && prefs.FontFamily != "" {
		url, err := googlefonts.Resolve(prefs.FontFamily)
		if err != nil {
			log.Logf("font %q: %v", prefs.FontFamily, err)
			return rl.Font{}
		}
		path, err = cache.Fetch(url)
		if err != nil {
			log.Logf("font %q: %v", prefs.FontFamily, err)
			return rl.Font{}
		}
	}
	if path == "" {
		return rl.Font{}
	}
	font := rl.LoadFont(path)
	if font.Texture.ID == 0 {
		log.Logf("failed to load font %s", path)
		return rl.Font{}
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// parseAccent parses a hex RRGGBB accent color, falling back to the default
// blue on bad input.
func parseAccent(hex string) rl.Color {
	if len(hex) != 6 {
		hex = viewerconfig.Default().AccentColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		v, _ = strconv.ParseUint(viewerconfig.Default().AccentColor, 16, 32)
	}
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}
