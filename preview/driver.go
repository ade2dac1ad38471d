// Package preview debounces re-renders of a live preview.
//
// A Driver is Idle while the preview is hidden. Show or an edit while shown
// moves it to Pending and (re)arms a single timer; when the timer fires the
// render func runs and the Driver becomes Settled. Every arm bumps a token,
// so a timer or render that lost the race is ignored.
package preview

import (
	"sync"
	"time"
)

// DefaultDelay is how long the driver waits after the last edit.
const DefaultDelay = time.Second

type State int

const (
	Idle State = iota
	Pending
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Settled:
		return "settled"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// RenderFunc produces the preview document.
type RenderFunc func() (string, error)

// Status is a point-in-time view of a driver.
type Status struct {
	State   State     `json:"state"`
	Content string    `json:"-"`
	Err     error     `json:"-"`
	Renders int       `json:"renders"`
	Updated time.Time `json:"updated"`
}

type Option func(*Driver)

// WithOnSettle registers fn to run after every applied render, outside the
// driver lock.
func WithOnSettle(fn func(Status)) Option {
	return func(d *Driver) { d.onSettle = fn }
}

type Driver struct {
	mu       sync.Mutex
	delay    time.Duration
	render   RenderFunc
	onSettle func(Status)

	state   State
	token   uint64
	timer   *time.Timer
	content string
	err     error
	renders int
	updated time.Time
	closed  bool
}

func NewDriver(delay time.Duration, render RenderFunc, opts ...Option) *Driver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Driver{delay: delay, render: render}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Show opens the preview and schedules a render.
func (d *Driver) Show() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.arm()
}

// Touch reports an edit. It only schedules a render while shown.
func (d *Driver) Touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.state == Idle {
		return
	}
	d.arm()
}

// Hide closes the preview, cancels any pending render and drops the content.
func (d *Driver) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
	d.state = Idle
	d.content = ""
	d.err = nil
}

// Close is Hide plus a guarantee that nothing is scheduled afterwards.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
	d.closed = true
	d.state = Idle
	d.content = ""
	d.err = nil
}

func (d *Driver) Snapshot() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status()
}

func (d *Driver) status() Status {
	return Status{State: d.state, Content: d.content, Err: d.err, Renders: d.renders, Updated: d.updated}
}

// arm must be called with d.mu held.
func (d *Driver) arm() {
	d.cancel()
	d.state = Pending
	tok := d.token
	d.timer = time.AfterFunc(d.delay, func() { d.fire(tok) })
}

// cancel must be called with d.mu held.
func (d *Driver) cancel() {
	d.token++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Driver) fire(tok uint64) {
	d.mu.Lock()
	if tok != d.token || d.state != Pending {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	// The render func may take the caller's own locks.
	html, err := d.render()

	d.mu.Lock()
	if tok != d.token || d.state != Pending {
		d.mu.Unlock()
		return
	}
	if err != nil {
		d.err = err
	} else {
		d.content = html
		d.err = nil
	}
	d.renders++
	d.updated = time.Now()
	d.state = Settled
	d.timer = nil
	st := d.status()
	cb := d.onSettle
	d.mu.Unlock()

	if cb != nil {
		cb(st)
	}
}
