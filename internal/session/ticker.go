package session

import "time"

// Ticker is the resettable clock driving a session. It starts stopped.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

// NewTicker returns a stopped Ticker backed by time.Ticker.
func NewTicker() Ticker {
	t := time.NewTicker(time.Hour)
	t.Stop()
	return &timeTicker{t: t}
}

func (t *timeTicker) C() <-chan time.Time { return t.t.C }

func (t *timeTicker) Reset(d time.Duration) { t.t.Reset(d) }

func (t *timeTicker) Stop() { t.t.Stop() }
