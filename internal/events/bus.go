package events

// Handler receives published events.
type Handler func(Event)

// Bus delivers events to subscribers synchronously, in subscription order.
// A nil *Bus is valid and drops everything.
type Bus struct {
	nextID   int
	handlers []subscriber
}

type subscriber struct {
	id int
	h  Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	if b == nil || h == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscriber{id: id, h: h})
	return func() {
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of live subscribers.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.handlers)
}

// Publish delivers e to every subscriber registered when it was called.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, s := range b.handlers {
		s.h(e)
	}
}

// Recorder collects events; tests subscribe it to a bus.
type Recorder struct {
	Events []Event
}

// Handle appends e.
func (r *Recorder) Handle(e Event) {
	r.Events = append(r.Events, e)
}

// OfKind returns the recorded events of one kind, in order.
func (r *Recorder) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}
