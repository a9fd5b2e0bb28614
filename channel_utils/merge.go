package channel_utils

import (
	"sync"

	"github.com/eman0056/dream-to-story-app/application/ports/outbound"
)

// MergeChannels fans in any number of channels of the same type onto a
// single channel, using the shared worker pool for the forwarding tasks.
// The merged channel closes once every input channel has closed.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	forward := func(c <-chan T) {
		for val := range c {
			merged <- val
		}
		wg.Done()
	}

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			forward(ch)
		})
		if err != nil {
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}
