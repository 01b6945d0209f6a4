package subprocess

import "sync"

// lineQueue is an unbounded single-producer single-consumer FIFO of lines.
// Closing the queue is the end sentinel: no lines are accepted afterwards.
type lineQueue struct {
	mu     sync.Mutex
	items  []string
	closed bool
	notify chan struct{}
}

func newLineQueue() *lineQueue {
	return &lineQueue{notify: make(chan struct{}, 1)}
}

// push appends a line. Pushes after close are dropped.
func (q *lineQueue) push(line string) {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()

		return
	}

	q.items = append(q.items, line)
	q.mu.Unlock()

	q.signal()
}

// close marks the end of the stream. It is safe to call more than once.
func (q *lineQueue) close() {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()

		return
	}

	q.closed = true
	q.mu.Unlock()

	q.signal()
}

func (q *lineQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// ready returns a channel that receives after a push or close.
func (q *lineQueue) ready() <-chan struct{} {
	return q.notify
}

// tryPop removes the oldest line without blocking. closed reports whether the
// sentinel was reached, and is only true once the queue is empty.
func (q *lineQueue) tryPop() (line string, ok bool, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false, q.closed
	}

	line = q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]

	return line, true, false
}

// drain removes and returns every queued line.
func (q *lineQueue) drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	lines := q.items
	q.items = nil

	return lines
}
