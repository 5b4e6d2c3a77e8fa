// Package frame carries the per-frame plumbing shared by the demo hosts:
// a callback registry with token-based unsubscribe, a frame pacer, and a
// framerate counter.
package frame

// Loop is a minimal per-frame callback registry for hosts that do not
// have a native one. Subscribers run in registration order from whatever
// goroutine calls Tick; the loop itself does no locking.
type Loop struct {
	nextToken uint64
	order     []uint64
	subs      map[uint64]func(dt float64)
}

func NewLoop() *Loop {
	return &Loop{subs: make(map[uint64]func(dt float64))}
}

// Subscribe registers fn and returns the token that removes it.
func (l *Loop) Subscribe(fn func(dt float64)) uint64 {
	l.nextToken++
	l.subs[l.nextToken] = fn
	l.order = append(l.order, l.nextToken)
	return l.nextToken
}

// Unsubscribe removes the callback registered under token. Unknown tokens
// are ignored.
func (l *Loop) Unsubscribe(token uint64) {
	if _, ok := l.subs[token]; !ok {
		return
	}
	delete(l.subs, token)
	for i, t := range l.order {
		if t == token {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Tick invokes every live subscriber with the frame delta in seconds.
func (l *Loop) Tick(dt float64) {
	for _, token := range l.order {
		if fn, ok := l.subs[token]; ok {
			fn(dt)
		}
	}
}

// Len reports the number of live subscriptions.
func (l *Loop) Len() int {
	return len(l.subs)
}
