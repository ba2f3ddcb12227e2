package control

// Scheduler runs a function after the current operation returns
type Scheduler interface {
	Schedule(fn func())
}

// Deferred is a FIFO queue of pending functions. It is not safe for
// concurrent use; the editor is single threaded.
type Deferred struct {
	queue []func()
}

// Schedule appends fn to the queue.
func (d *Deferred) Schedule(fn func()) {
	d.queue = append(d.queue, fn)
}

// Drain runs queued functions in order until the queue is empty, including
// functions scheduled while draining, and returns how many ran.
func (d *Deferred) Drain() int {
	n := 0
	for len(d.queue) > 0 {
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		fn()
		n++
	}
	return n
}

// Len returns the number of pending functions.
func (d *Deferred) Len() int {
	return len(d.queue)
}
