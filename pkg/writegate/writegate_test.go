package writegate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoReturnsOperationResult(t *testing.T) {
	var g Gate

	err := g.Do(func() error {
		return nil
	})
	require.NoError(t, err)
}

func TestFIFOOrder(t *testing.T) {
	var g Gate

	release := make(chan struct{})
	holding := make(chan struct{})

	var mu sync.Mutex
	var order []string

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.Do(func() error { //nolint:errcheck
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	// queue two operations while the gate is held, one after the other
	for _, label := range []string{"first", "second"} {
		label := label
		queued := g.queueLen()

		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Do(func() error { //nolint:errcheck
				mu.Lock()
				order = append(order, label)
				mu.Unlock()
				return nil
			})
		}()

		require.Eventually(t, func() bool {
			return g.queueLen() == queued+1
		}, 2*time.Second, time.Millisecond)
	}

	close(release)
	wg.Wait()

	require.Equal(t, []string{"first", "second"}, order)
}

func TestOperationCompletesBeforeNext(t *testing.T) {
	var g Gate

	var active int
	var maxActive int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Do(func() error { //nolint:errcheck
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxActive)
}
