// Package videotex decodes video files into a stream of RGBA frames for use
// as live textures. Decoding runs on its own goroutine (ffmpeg via reisen);
// the frame loop polls NextFrame once per frame and uploads at the video's
// native rate. Playback is muted and loops until Close.
package videotex

import (
	"fmt"
	"image"
	"sync"

	"github.com/zergon321/reisen"
)

// frameBufferSize bounds decoded frames held in memory; the decoder blocks
// when the buffer is full, so decode speed follows display speed.
const frameBufferSize = 8

const defaultFPS = 30

// Player owns one video file's decode pipeline and playback state.
type Player struct {
	path          string
	width, height int
	frameDur      float64 // seconds per frame

	frames chan *image.RGBA
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once

	mu          sync.Mutex
	playing     bool
	lastFrameAt float64
}

// Open probes path, starts the decode goroutine, and begins playback
// immediately.
func Open(path string) (*Player, error) {
	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, fmt.Errorf("videotex: %w", err)
	}
	streams := media.VideoStreams()
	if len(streams) == 0 {
		media.Close()
		return nil, fmt.Errorf("videotex: no video stream in %s", path)
	}
	vs := streams[0]
	num, den := vs.FrameRate()
	fps := float64(defaultFPS)
	if num > 0 && den > 0 {
		fps = float64(num) / float64(den)
	}
	p := &Player{
		path:     path,
		width:    int(vs.Width()),
		height:   int(vs.Height()),
		frameDur: 1 / fps,
		frames:   make(chan *image.RGBA, frameBufferSize),
		done:     make(chan struct{}),
		playing:  true,
	}
	media.Close()

	p.wg.Add(1)
	go p.pump()
	return p, nil
}

// Width returns the frame width in pixels.
func (p *Player) Width() int { return p.width }

// Height returns the frame height in pixels.
func (p *Player) Height() int { return p.height }

// Playing reports whether playback is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play resumes playback.
func (p *Player) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
}

// Pause suspends playback; the current frame stays on screen.
func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

// Toggle flips between playing and paused.
func (p *Player) Toggle() {
	p.mu.Lock()
	p.playing = !p.playing
	p.mu.Unlock()
}

// NextFrame returns the next decoded frame when playback is running and
// enough wall-clock time has passed since the previous frame, or nil.
// now is the frame loop's clock in seconds.
func (p *Player) NextFrame(now float64) *image.RGBA {
	p.mu.Lock()
	if !p.playing || now-p.lastFrameAt < p.frameDur {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	select {
	case frame, ok := <-p.frames:
		if !ok {
			return nil
		}
		p.mu.Lock()
		p.lastFrameAt = now
		p.mu.Unlock()
		return frame
	default:
		return nil
	}
}

// Close stops the decode goroutine and releases the media. Idempotent.
func (p *Player) Close() {
	p.once.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

// pump decodes the file front to back, blocking on the frame buffer for
// backpressure, and reopens the media at EOF so playback loops.
func (p *Player) pump() {
	defer p.wg.Done()
	for {
		if stopped := p.decodePass(); stopped {
			return
		}
		select {
		case <-p.done:
			return
		default:
		}
	}
}

// decodePass plays the file once. Returns true when the player was closed.
func (p *Player) decodePass() (stopped bool) {
	media, err := reisen.NewMedia(p.path)
	if err != nil {
		return true
	}
	defer media.Close()
	if err := media.OpenDecode(); err != nil {
		return true
	}
	defer media.CloseDecode()
	stream := media.VideoStreams()[0]
	if err := stream.Open(); err != nil {
		return true
	}
	defer stream.Close()

	for {
		select {
		case <-p.done:
			return true
		default:
		}
		packet, gotPacket, err := media.ReadPacket()
		if err != nil || !gotPacket {
			return false
		}
		if packet.Type() != reisen.StreamVideo {
			continue
		}
		s, ok := media.Streams()[packet.StreamIndex()].(*reisen.VideoStream)
		if !ok {
			continue
		}
		frame, gotFrame, err := s.ReadVideoFrame()
		if err != nil {
			continue
		}
		if !gotFrame {
			return false
		}
		if frame == nil {
			continue
		}
		select {
		case p.frames <- frame.Image():
		case <-p.done:
			return true
		}
	}
}
