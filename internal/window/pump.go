package window

// Pump yields the window events that arrived since the previous Poll.
type Pump interface {
	Poll() []Event
}

// Queue is a Pump fed by Push. The zero value is ready to use.
type Queue struct {
	pending []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(events ...Event) {
	q.pending = append(q.pending, events...)
}

func (q *Queue) Poll() []Event {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *Queue) Len() int { return len(q.pending) }

// Idle is a Pump that never produces events.
type Idle struct{}

func (Idle) Poll() []Event { return nil }
