package session

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AdmitRejectsAtCapacity(t *testing.T) {
	m := NewManager(context.Background(), 1, time.Hour)

	c1, s1 := net.Pipe()
	defer c1.Close()
	defer s1.Close()
	sess1 := New(context.Background(), s1)
	require.NoError(t, m.Admit(sess1))

	c2, s2 := net.Pipe()
	defer c2.Close()
	defer s2.Close()
	sess2 := New(context.Background(), s2)
	err := m.Admit(sess2)
	assert.ErrorIs(t, err, ErrAtCapacity)
}

func TestManager_SweepDisconnectsIdleSessions(t *testing.T) {
	m := NewManager(context.Background(), 10, time.Hour)

	c, s := net.Pipe()
	defer c.Close()
	defer s.Close()
	sess := New(context.Background(), s)
	require.NoError(t, m.Admit(sess))

	// Force the session to look idle beyond the timeout without waiting an hour.
	sess.lastActivity = time.Now().Add(-2 * time.Hour)

	m.sweepOnce()

	select {
	case <-sess.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("expected idle session to be cancelled by sweep")
	}
}

func TestManager_ShutdownCancelsAllSessions(t *testing.T) {
	m := NewManager(context.Background(), 10, time.Hour)

	c, s := net.Pipe()
	defer c.Close()
	defer s.Close()
	sess := New(context.Background(), s)
	require.NoError(t, m.Admit(sess))

	m.Shutdown()

	select {
	case <-sess.Context().Done():
	default:
		t.Fatal("expected session context to be cancelled after shutdown")
	}
}
