package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatLocks(t *testing.T) {
	t.Run("should serialize holders of the same chat", func(t *testing.T) {
		req := require.New(t)
		locks := newChatLocks()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			maxSeen int
		)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locks.lock(7)
				defer unlock()

				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
			}()
		}
		wg.Wait()

		req.Equal(1, maxSeen)
	})

	t.Run("should drop entries once released", func(t *testing.T) {
		req := require.New(t)
		locks := newChatLocks()

		unlockA := locks.lock(1)
		unlockB := locks.lock(2)
		req.Equal(2, locks.size())

		unlockA()
		unlockB()
		req.Zero(locks.size())
	})
}
