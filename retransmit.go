package zrtp

import "time"

// retransmitTimer is pure data: the channel state machine arms it, and the
// host-driven Tick consults it. No goroutines or blocking waits are
// involved, per spec.md §5.
type retransmitTimer struct {
	armed    bool
	interval time.Duration
	cap      time.Duration
	deadline time.Duration // time left until the next fire, decremented by tick
	tries    int
	maxTries int
}

const (
	helloInterval = 50 * time.Millisecond
	helloCap      = 200 * time.Millisecond
	helloMaxTries = 20

	stepInterval = 150 * time.Millisecond
	stepCap      = 1200 * time.Millisecond
	stepMaxTries = 10
)

func newHelloTimer() retransmitTimer {
	return retransmitTimer{armed: true, interval: helloInterval, cap: helloCap, maxTries: helloMaxTries, deadline: helloInterval}
}

func newStepTimer() retransmitTimer {
	return retransmitTimer{armed: true, interval: stepInterval, cap: stepCap, maxTries: stepMaxTries, deadline: stepInterval}
}

func (t *retransmitTimer) stop() {
	t.armed = false
	t.deadline = 0
	t.tries = 0
}

// tick advances elapsed time by d and reports whether a retransmission is
// due. If the timer has exhausted its tries, it reports (false, true) for
// (fire, expired) to signal the state machine should give up.
func (t *retransmitTimer) tick(d time.Duration) (fire bool, expired bool) {
	if !t.armed {
		return false, false
	}
	t.deadline -= d
	if t.deadline > 0 {
		return false, false
	}
	t.tries++
	if t.tries > t.maxTries {
		t.stop()
		return false, true
	}
	t.interval *= 2
	if t.interval > t.cap {
		t.interval = t.cap
	}
	t.deadline = t.interval
	return true, false
}
