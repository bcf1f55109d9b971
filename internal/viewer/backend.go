package viewer

import (
	"asset-viewer/internal/content"
	"asset-viewer/internal/overlay"
)

// Asset is content prepared off the frame thread: fetched, decoded, or
// extracted, but not yet turned into live scene resources. An asset that is
// never installed (superseded by a newer load) must be discarded.
type Asset interface {
	Kind() content.Kind
	// Discard releases CPU-side resources (decoders, buffers) without
	// installing. Called for superseded or orphaned assets.
	Discard()
}

// Node is the live content item installed in the scene. At most one exists
// per viewport.
type Node interface {
	Kind() content.Kind
	// Animate advances idle motion and streams pending media frames.
	// now is the frame clock in seconds, dt the last frame duration.
	Animate(now, dt float64)
	// Draw renders the node; called between the stage's Begin and End.
	Draw()
	// Dispose releases every scene resource the node owns: meshes,
	// materials, textures, media decoders.
	Dispose()
}

// Backend turns content descriptors into assets and assets into nodes. The
// graphics backend implements it against the GPU; tests implement it with
// counting fakes.
type Backend interface {
	// Prepare runs off the frame thread and may block on network and
	// decode work.
	Prepare(desc content.Descriptor) (Asset, error)
	// Install runs on the frame thread. It returns the live node plus the
	// overlay widgets that accompany it (play/pause control, hints, info
	// panel).
	Install(asset Asset) (Node, []overlay.Widget, error)
}
