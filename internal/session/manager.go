package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sxlmons/cloudvault/internal/logger"
)

// ErrAtCapacity is returned by Manager.Admit when the active session count
// equals MaxConcurrentClients.
var ErrAtCapacity = errors.New("session: at maximum concurrent client capacity")

// sweepInterval is the fixed period of the liveness sweep.
const sweepInterval = 1 * time.Minute

// Manager holds a concurrent mapping of session id -> session, enforces
// admission control, sweeps idle sessions, and coordinates graceful
// shutdown.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	max      int
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager constructs a Manager with the given admission cap and
// inactivity timeout.
func NewManager(ctx context.Context, maxConcurrent int, sessionTimeout time.Duration) *Manager {
	managerCtx, cancel := context.WithCancel(ctx)
	return &Manager{
		sessions: make(map[string]*Session),
		max:      maxConcurrent,
		timeout:  sessionTimeout,
		ctx:      managerCtx,
		cancel:   cancel,
	}
}

// Admit registers s if the manager is under capacity, else returns
// ErrAtCapacity and the caller should reject the connection.
func (m *Manager) Admit(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.max {
		return ErrAtCapacity
	}
	m.sessions[s.ID] = s
	return nil
}

// Remove unregisters a session, e.g. once its loop exits.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of currently tracked sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartSweep launches the background goroutine that disconnects sessions
// idle longer than the configured timeout, checked every sweepInterval.
func (m *Manager) StartSweep() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				m.sweepOnce()
			}
		}
	}()
}

func (m *Manager) sweepOnce() {
	m.mu.Lock()
	var timedOut []*Session
	for _, s := range m.sessions {
		if s.IdleFor() > m.timeout {
			timedOut = append(timedOut, s)
		}
	}
	m.mu.Unlock()

	for _, s := range timedOut {
		logger.Info("disconnecting idle session", "session_id", s.ID, "reason", "SessionTimeout")
		s.Cancel()
	}
}

// Shutdown cancels every tracked session's cancellation signal and waits
// for the sweep goroutine to stop.
// Callers are responsible for awaiting each per-connection loop's exit
// after Shutdown cancels them.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for _, s := range m.sessions {
		s.Cancel()
	}
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
}
