package bridge

import (
	"errors"
	"sort"
	"sync"

	"github.com/programmingLego/lwpctl/internal/lwp"
)

var (
	ErrPortBusy     = errors.New("bridge: port already registered")
	ErrPortUnknown  = errors.New("bridge: port not registered")
	ErrPortNotOwned = errors.New("bridge: port not held by this session")
)

// PortRegistry stores connected device sessions by port.
type PortRegistry struct {
	repo map[lwp.Port]*Session
	mu   sync.RWMutex
}

// NewPortRegistry initializes an empty port registry.
func NewPortRegistry() *PortRegistry {
	return &PortRegistry{repo: make(map[lwp.Port]*Session)}
}

// Register claims a port for a session.
func (pr *PortRegistry) Register(port lwp.Port, s *Session) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if _, ok := pr.repo[port]; ok {
		return ErrPortBusy
	}
	pr.repo[port] = s
	return nil
}

// Deregister releases a port.
func (pr *PortRegistry) Deregister(port lwp.Port) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if _, ok := pr.repo[port]; !ok {
		return ErrPortUnknown
	}
	delete(pr.repo, port)
	return nil
}

// Get returns the session holding a port.
func (pr *PortRegistry) Get(port lwp.Port) (*Session, bool) {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	s, ok := pr.repo[port]
	return s, ok
}

// Ports returns the registered ports in stable order.
func (pr *PortRegistry) Ports() []lwp.Port {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	out := make([]lwp.Port, 0, len(pr.repo))
	for port := range pr.repo {
		out = append(out, port)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len reports the number of registered ports.
func (pr *PortRegistry) Len() int {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return len(pr.repo)
}
