package page

import (
	"context"
	"sync"
)

// loop is a task queue plus an animation frame queue. Frames requested while a
// frame batch runs are deferred to the next batch.
type loop struct {
	mu      sync.Mutex
	tasks   []func()
	frames  []func()
	pending int
	wake    chan struct{}
}

func newLoop() *loop {
	return &loop{wake: make(chan struct{}, 1)}
}

func (l *loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *loop) post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

func (l *loop) frame(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
	l.signal()
}

// spawn runs work on its own goroutine and queues the continuation it returns.
// The loop stays alive until the continuation is queued.
func (l *loop) spawn(work func() func()) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()

	go func() {
		cont := work()
		l.mu.Lock()
		l.pending--
		if cont != nil {
			l.tasks = append(l.tasks, cont)
		}
		l.mu.Unlock()
		l.signal()
	}()
}

// next pops the next task. When none is queued it reports whether background
// work is still outstanding, under the same lock, so a completion cannot slip
// between the two checks.
func (l *loop) next() (task func(), ok bool, pending bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) == 0 && len(l.frames) > 0 {
		l.tasks = l.frames
		l.frames = nil
	}
	if len(l.tasks) == 0 {
		return nil, false, l.pending > 0
	}
	task = l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task, true, false
}

func (l *loop) busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending > 0 || len(l.tasks) > 0 || len(l.frames) > 0
}

// Post queues fn on the page loop. Safe to call from any goroutine.
func (p *Page) Post(fn func()) {
	p.loop.post(fn)
}

// RequestAnimationFrame queues fn for the next frame batch, which runs once the
// task queue is empty.
func (p *Page) RequestAnimationFrame(fn func()) {
	p.loop.frame(fn)
}

// Busy reports whether tasks, frames or background work are outstanding.
func (p *Page) Busy() bool {
	return p.loop.busy()
}

// Run drives the loop on the calling goroutine until no task, frame or
// background load is outstanding, or ctx is done.
func (p *Page) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		task, ok, pending := p.loop.next()
		if ok {
			task()
			continue
		}
		if !pending {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.loop.wake:
		}
	}
}
