package event

// Recorder collects every event emitted on a bus, in order. It is meant for
// tests and debugging tools.
type Recorder struct {
	Events      []Event
	unsubscribe func()
}

// NewRecorder subscribes a recorder to all topics of b.
func NewRecorder(b *Bus) *Recorder {
	r := &Recorder{}
	r.unsubscribe = b.SubscribeAll(func(ev Event) {
		r.Events = append(r.Events, ev)
	})
	return r
}

// Count returns how many events of topic were recorded.
func (r *Recorder) Count(topic Topic) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Topic == topic {
			n++
		}
	}
	return n
}

// Last returns the most recent event of topic.
func (r *Recorder) Last(topic Topic) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Topic == topic {
			return r.Events[i], true
		}
	}
	return Event{}, false
}

// Topics returns the recorded topics in order.
func (r *Recorder) Topics() []Topic {
	out := make([]Topic, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Topic
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Stop detaches the recorder from the bus.
func (r *Recorder) Stop() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}
