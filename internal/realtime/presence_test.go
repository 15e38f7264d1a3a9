package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/slashdm/internal/protocol"
)

type recordingConn struct {
	id     string
	userID uint
	err    error

	mu       sync.Mutex
	received []protocol.Envelope
}

func newRecordingConn(id string, userID uint) *recordingConn {
	return &recordingConn{id: id, userID: userID}
}

func (c *recordingConn) ID() string   { return c.id }
func (c *recordingConn) UserID() uint { return c.userID }

func (c *recordingConn) Push(env protocol.Envelope) error {
	if c.err != nil {
		return c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.received = append(c.received, env)
	return nil
}

func (c *recordingConn) envelopes() []protocol.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]protocol.Envelope(nil), c.received...)
}

func TestPresence(t *testing.T) {
	t.Run("should track several connections per user", func(t *testing.T) {
		req := require.New(t)
		presence := NewPresence()
		laptop := newRecordingConn("laptop", 1)
		phone := newRecordingConn("phone", 1)

		presence.Register(1, laptop)
		presence.Register(1, phone)

		req.ElementsMatch([]Conn{laptop, phone}, presence.ConnectionsFor(1))
		req.Equal(1, presence.OnlineUsers())
	})

	t.Run("should drop the user with the last connection", func(t *testing.T) {
		req := require.New(t)
		presence := NewPresence()
		laptop := newRecordingConn("laptop", 1)
		phone := newRecordingConn("phone", 1)
		presence.Register(1, laptop)
		presence.Register(1, phone)

		presence.Unregister(1, laptop)
		req.Len(presence.ConnectionsFor(1), 1)

		presence.Unregister(1, phone)
		req.Empty(presence.ConnectionsFor(1))
		req.Zero(presence.OnlineUsers())
	})

	t.Run("should return nothing for an offline user", func(t *testing.T) {
		req := require.New(t)
		presence := NewPresence()

		req.Empty(presence.ConnectionsFor(42))
		presence.Unregister(42, newRecordingConn("ghost", 42))
		req.Zero(presence.OnlineUsers())
	})

	t.Run("should stay consistent under concurrent churn", func(t *testing.T) {
		req := require.New(t)
		presence := NewPresence()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				userID := uint(i % 5)
				conn := newRecordingConn(fmt.Sprintf("conn-%d", i), userID)
				presence.Register(userID, conn)
				_ = presence.ConnectionsFor(userID)
				presence.Unregister(userID, conn)
			}(i)
		}
		wg.Wait()

		req.Zero(presence.OnlineUsers())
	})
}
