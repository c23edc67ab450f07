package orders

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocksSerializePerUser(t *testing.T) {
	locks := newUserLocks()

	const workers = 16
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.Lock(1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestUserLocksAreIndependentAcrossUsers(t *testing.T) {
	locks := newUserLocks()

	unlockA := locks.Lock(1)
	defer unlockA()

	// A second user must not block on the first user's lock.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(2)
		unlockB()
		close(done)
	}()

	<-done
}
