package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/saft/output"
)

// TimingCollector records timers as a tree. It is safe for concurrent use, but
// nesting follows start order, so concurrent timers end up under each other.
type TimingCollector struct {
	mu     sync.Mutex
	root   *timerNode
	active *timerNode
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *timerNode
	children []*timerNode
}

// duration is zero for a timer that is still open.
func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// NewTimingCollector returns an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start opens a timer. The first timer becomes the root, later ones are added
// under the innermost open timer.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: time.Now()}
	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.active
		c.active.children = append(c.active.children, node)
	}
	c.active = node

	return &timing{collector: c, node: node}
}

// Reset forgets every timer, so watch mode can time each re-check on its own.
func (c *TimingCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.root, c.active = nil, nil
}

// Report prints the timer tree. Nothing is printed when no timer was started.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root != nil {
		formatTimingTree(w, c.root, styles)
	}
}

type timing struct {
	collector *TimingCollector
	node      *timerNode
}

// End closes the timer and makes its parent the innermost open timer again.
// Only the first call has an effect.
func (t *timing) End() {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	if !t.node.end.IsZero() {
		return
	}
	t.node.end = time.Now()

	if t.node.parent != nil {
		c.active = t.node.parent
	}
}
