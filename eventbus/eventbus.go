// Package eventbus is the bounded, non-blocking boundary between the
// emulation core's goroutine and the host goroutine: controller input and
// shutdown requests flow in through Inputs, finished frames flow out
// through Frames. Every operation on Bus is safe to call from either side
// without locking, and neither channel is ever allowed to make the core
// block on a slow or absent consumer.
package eventbus

import (
	"image"
	"sync/atomic"

	"nestorcore/hwlog"
)

// InputKind distinguishes the two shapes of message the host can push
// onto Inputs.
type InputKind uint8

const (
	// ButtonChange reports a single controller button transition.
	ButtonChange InputKind = iota
	// Shutdown asks the core to stop. nes.NES.Run checks for it once per
	// frame, before rendering the next one, so the frame in progress is
	// finished first; it is not checked between instructions.
	Shutdown
)

// InputEvent is one message from the host to the emulation core.
type InputEvent struct {
	Kind InputKind

	// Controller selects which joypad port (0 or 1) Button applies to.
	// Unused for Shutdown.
	Controller uint8
	Button     uint8
	Pressed    bool
}

// framesDepth is the capacity of the Frames channel. Two lets the core
// finish a frame while the host is still blitting the previous one,
// without ever queuing more than one frame of latency.
const framesDepth = 2

// Bus is the channel pair a host and a running nes.NES communicate
// through. The zero value is not usable; construct with New.
type Bus struct {
	Inputs chan InputEvent
	Frames chan *image.RGBA

	dropped atomic.Uint64
}

// New returns a ready Bus. inputDepth sizes the Inputs channel; callers
// that only ever send from a single UI goroutine can pass a small number
// such as 8.
func New(inputDepth int) *Bus {
	if inputDepth < 1 {
		inputDepth = 1
	}
	return &Bus{
		Inputs: make(chan InputEvent, inputDepth),
		Frames: make(chan *image.RGBA, framesDepth),
	}
}

// PushInput enqueues an input event for the core to drain. If Inputs is
// full the event is dropped and logged rather than blocking the sender --
// the host is expected to retry on the next real input change, so a
// dropped stale event is harmless.
func (b *Bus) PushInput(ev InputEvent) {
	select {
	case b.Inputs <- ev:
	default:
		hwlog.ModInput.WarnZ("input queue full, dropping event").
			Int("kind", int(ev.Kind)).End()
	}
}

// PushShutdown enqueues a Shutdown event behind any events already queued.
// Like PushInput, it is dropped (and logged) if Inputs is full.
func (b *Bus) PushShutdown() {
	b.PushInput(InputEvent{Kind: Shutdown})
}

// PublishFrame hands a completed frame to the host. If the host hasn't
// drained the previous frame(s) yet and Frames is full, the oldest queued
// frame is dropped to make room -- the core must never block waiting for
// a slow or absent host.
func (b *Bus) PublishFrame(f *image.RGBA) {
	for {
		select {
		case b.Frames <- f:
			return
		default:
		}
		select {
		case <-b.Frames:
			b.dropped.Add(1)
		default:
		}
	}
}

// DroppedFrames returns the total number of frames discarded because the
// host fell behind, for diagnostics.
func (b *Bus) DroppedFrames() uint64 { return b.dropped.Load() }

// DrainInputs delivers every currently queued input event to fn, in
// order, without blocking. It returns true if a Shutdown event was seen.
func (b *Bus) DrainInputs(fn func(InputEvent)) (shutdown bool) {
	for {
		select {
		case ev := <-b.Inputs:
			if ev.Kind == Shutdown {
				shutdown = true
			}
			fn(ev)
		default:
			return shutdown
		}
	}
}
