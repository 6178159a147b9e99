package counterdumper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodicReport(t *testing.T) {
	reported := make(chan uint64, 1)

	c := &CounterDumper{
		OnReport: func(v uint64) {
			select {
			case reported <- v:
			default:
			}
		},
		ReportPeriod: 50 * time.Millisecond,
	}
	c.Start()
	defer c.Stop()

	c.Increase()
	c.Add(2)

	select {
	case v := <-reported:
		require.Equal(t, uint64(3), v)
	case <-time.After(2 * time.Second):
		t.Fatal("no report received")
	}
}

func TestStopFlushesResidual(t *testing.T) {
	var reports []uint64

	c := &CounterDumper{
		OnReport: func(v uint64) {
			reports = append(reports, v)
		},
		ReportPeriod: 1 * time.Hour,
	}
	c.Start()

	c.Add(5)
	c.Stop()

	require.Equal(t, []uint64{5}, reports)
}
