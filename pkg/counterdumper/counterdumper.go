// Package counterdumper contains a counter that periodically invokes a callback if the counter is not zero.
package counterdumper

import (
	"sync/atomic"
	"time"
)

const (
	defaultReportPeriod = 1 * time.Second
)

// CounterDumper is a counter that periodically invokes a callback if the counter is not zero.
type CounterDumper struct {
	// Called with the number of events accumulated since the previous report.
	OnReport func(v uint64)

	// Interval between reports. It defaults to 1 second.
	ReportPeriod time.Duration

	counter uint64

	terminate chan struct{}
	done      chan struct{}
}

// Start starts the counter.
func (c *CounterDumper) Start() {
	if c.ReportPeriod == 0 {
		c.ReportPeriod = defaultReportPeriod
	}

	c.terminate = make(chan struct{})
	c.done = make(chan struct{})

	go c.run()
}

// Stop stops the counter, reporting any residual value first.
func (c *CounterDumper) Stop() {
	close(c.terminate)
	<-c.done

	if v := atomic.SwapUint64(&c.counter, 0); v != 0 {
		c.OnReport(v)
	}
}

// Increase increases the counter value by 1.
func (c *CounterDumper) Increase() {
	atomic.AddUint64(&c.counter, 1)
}

// Add adds value to the counter.
func (c *CounterDumper) Add(v uint64) {
	atomic.AddUint64(&c.counter, v)
}

func (c *CounterDumper) run() {
	defer close(c.done)

	t := time.NewTicker(c.ReportPeriod)
	defer t.Stop()

	for {
		select {
		case <-c.terminate:
			return

		case <-t.C:
			if v := atomic.SwapUint64(&c.counter, 0); v != 0 {
				c.OnReport(v)
			}
		}
	}
}
