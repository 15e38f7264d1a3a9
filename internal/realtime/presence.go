// Package realtime binds authenticated push connections to users and fans
// chat updates out to them.
package realtime

import (
	"sync"

	"github.com/fenggwsx/slashdm/internal/protocol"
)

// Conn is a live push connection bound to one user.
type Conn interface {
	ID() string
	UserID() uint
	// Push enqueues env without blocking. It fails when the connection is
	// closed or its send buffer is full.
	Push(env protocol.Envelope) error
}

// Presence tracks the open connections of every user.
type Presence struct {
	mu    sync.RWMutex
	users map[uint]map[string]Conn
}

// NewPresence initializes an empty registry.
func NewPresence() *Presence {
	return &Presence{
		users: make(map[uint]map[string]Conn),
	}
}

// Register adds conn to the user's set.
func (p *Presence) Register(userID uint, conn Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.users[userID]; !ok {
		p.users[userID] = make(map[string]Conn)
	}
	p.users[userID][conn.ID()] = conn
}

// Unregister removes conn. The user entry is dropped with its last connection.
func (p *Presence) Unregister(userID uint, conn Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conns, ok := p.users[userID]; ok {
		delete(conns, conn.ID())
		if len(conns) == 0 {
			delete(p.users, userID)
		}
	}
}

// ConnectionsFor returns a snapshot of the user's connections. Offline users
// yield an empty slice.
func (p *Presence) ConnectionsFor(userID uint) []Conn {
	p.mu.RLock()
	defer p.mu.RUnlock()

	conns := p.users[userID]
	out := make([]Conn, 0, len(conns))
	for _, conn := range conns {
		out = append(out, conn)
	}
	return out
}

// OnlineUsers returns how many users hold at least one connection.
func (p *Presence) OnlineUsers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.users)
}
