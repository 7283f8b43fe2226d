package remote

import "sync"

// ConnectionStatus describes the last observed reachability of the API.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnecting   ConnectionStatus = "connecting"
	StatusConnected    ConnectionStatus = "connected"
)

// statusTracker holds the connectivity flag for one client. It is mutated
// only by the availability probe and by request-failure observations, and
// read by the UI layer.
type statusTracker struct {
	mu     sync.RWMutex
	status ConnectionStatus
}

func (t *statusTracker) get() ConnectionStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *statusTracker) set(s ConnectionStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = s
}
