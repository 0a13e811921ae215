package main

import (
	"sync"
	"testing"
	"time"
)

// TestConcurrentControlAndRender stresses the control context (key handling),
// the render context and the visual poll against each other, with the refresh
// workers forced into continuous rebuilds. The test has no assertions - the
// race detector is the oracle. Run with:
// go test -race -run TestConcurrentControlAndRender -count=1
func TestConcurrentControlAndRender(t *testing.T) {
	reg := NewRegistry()
	defer reg.Close()
	mixer := NewMixer(reg)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Control context: hammer activation, pitch and blend.
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			id := voiceIDs[i%len(voiceIDs)]
			reg.Activate(id)
			reg.AdjustPitch(0.01)
			reg.Blend()
			reg.AdjustPitch(-0.01)
			reg.Deactivate(voiceIDs[(i+1)%len(voiceIDs)])
			i++
		}
	}()

	// Render context: one block after another, plus refresh requests far in
	// the future so the workers keep rebuilding and republishing tables.
	wg.Add(1)
	go func() {
		defer wg.Done()
		future := time.Now()
		for {
			select {
			case <-stop:
				return
			default:
			}
			mixer.RenderBlock(256)
			// Ever-growing timestamps so every request clears the cadence
			// check and the workers rebuild continuously.
			future = future.Add(refreshInterval + time.Second)
			for _, id := range voiceIDs {
				reg.Osc(id).RequestRefresh(future)
			}
		}
	}()

	// Visual poll: read-only accessors.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			for _, id := range voiceIDs {
				reg.Active(id)
				reg.Entropy(id)
			}
		}
	}()

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()
}
