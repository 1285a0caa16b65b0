package diag

import "sync"

// Recorder is a Sink that keeps every message in memory.
// Used by tests and by the CLI to count swallowed failures.
type Recorder struct {
	mu   sync.Mutex
	msgs []string
	next Sink
}

// NewRecorder creates a recorder. If next is non-nil every message is also
// forwarded to it.
func NewRecorder(next Sink) *Recorder {
	return &Recorder{next: next}
}

// PushError implements Sink.
func (r *Recorder) PushError(msg string) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()

	if r.next != nil {
		r.next.PushError(msg)
	}
}

// Messages returns a copy of the recorded messages in push order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Len returns the number of recorded messages.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}
