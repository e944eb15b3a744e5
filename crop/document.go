package crop

import "sync"

// Listener receives events dispatched by a Document.
type Listener func(Event)

type listenerEntry struct {
	id     int
	onMove Listener
	onEnd  Listener
}

// Document routes move and end events to the listeners of active gestures,
// no matter which element they originated from.
type Document struct {
	mu        sync.RWMutex
	nextID    int
	listeners []listenerEntry
}

func NewDocument() *Document {
	return &Document{}
}

// Listen attaches move and end listeners until the returned Capture is
// released.
func (d *Document) Listen(onMove, onEnd Listener) *Capture {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners = append(d.listeners, listenerEntry{id: id, onMove: onMove, onEnd: onEnd})
	d.mu.Unlock()

	return &Capture{release: func() { d.remove(id) }}
}

func (d *Document) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to the attached listeners. Events other than moves
// and gesture ends are dropped.
func (d *Document) Dispatch(ev Event) {
	d.mu.RLock()
	var fns []Listener
	for _, l := range d.listeners {
		switch {
		case ev.Type == EventMove && l.onMove != nil:
			fns = append(fns, l.onMove)
		case ev.Type.Ends() && l.onEnd != nil:
			fns = append(fns, l.onEnd)
		}
	}
	d.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of attached listener pairs.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Capture holds a pair of document listeners for the lifetime of a gesture.
type Capture struct {
	once    sync.Once
	release func()
}

// Release detaches the listeners. It is safe to call more than once and on
// a nil Capture.
func (c *Capture) Release() {
	if c == nil {
		return
	}
	c.once.Do(c.release)
}
