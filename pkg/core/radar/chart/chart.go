package chart

import (
	"sync"

	"github.com/matzehuels/techradar/pkg/radar"
)

// Chart holds the latest scene of a long-lived rendering surface.
// It is safe for concurrent use.
type Chart struct {
	opts []Option

	mu      sync.RWMutex
	passes  uint64
	input   Input // latest requested input, possibly not yet published
	current Scene
}

// New creates a chart. The options apply to every pass.
func New(opts ...Option) *Chart {
	return &Chart{opts: opts}
}

// Redraw runs a full pass over in and publishes it unless a newer pass has
// already been published. The scene of this pass is returned either way.
func (c *Chart) Redraw(in Input) Scene {
	return c.draw(func(Input) Input { return in })
}

// SetData redraws with a new dataset at the current viewport.
func (c *Chart) SetData(d *radar.Dataset) Scene {
	return c.draw(func(prev Input) Input {
		return InputFrom(d, prev.Width, prev.Height)
	})
}

// Resize redraws the current data at a new viewport.
func (c *Chart) Resize(width, height float64) Scene {
	return c.draw(func(prev Input) Input {
		prev.Width, prev.Height = width, height
		return prev
	})
}

// draw derives the next input from the latest requested one and numbers the
// pass under one lock, so a later pass always sees every earlier change.
func (c *Chart) draw(next func(Input) Input) Scene {
	c.mu.Lock()
	in := next(c.input)
	c.input = in
	c.passes++
	pass := c.passes
	c.mu.Unlock()

	s := Build(in, c.opts...)
	s.Pass = pass

	c.mu.Lock()
	defer c.mu.Unlock()
	if pass > c.current.Pass {
		c.current = s
	}
	return s
}

// Scene returns the latest published scene. ok is false before the first pass.
func (c *Chart) Scene() (s Scene, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.current.Pass > 0
}
