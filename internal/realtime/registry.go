package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dtroode/attendance-server/internal/logger"
)

// ErrConnectionClosed is returned by Send on a connection that was torn down.
var ErrConnectionClosed = errors.New("connection closed")

// Conn is one live client connection.
type Conn interface {
	ID() string
	Send(ctx context.Context, msg Message) error
	Close() error
}

// FrameConn is a Conn that also reads client frames. ReadFrame blocks until
// a frame arrives or the connection is closed.
type FrameConn interface {
	Conn
	ReadFrame() ([]byte, error)
}

// Registry tracks live connections per subject and delivers messages to them.
// Delivery is best effort: a failed send drops only the failing connection.
type Registry interface {
	Register(subjectID int64, conn Conn)
	Unregister(subjectID int64, conn Conn)
	SendToSubject(ctx context.Context, subjectID int64, msg Message)
	SendToSubjects(ctx context.Context, subjectIDs []int64, msg Message)
	BroadcastAll(ctx context.Context, msg Message)
	Count() int
	Stats() map[int64]int
}

var _ Registry = (*MemoryRegistry)(nil)

// MemoryRegistry is a single-process Registry.
type MemoryRegistry struct {
	mu          sync.RWMutex
	conns       map[int64]map[string]Conn
	sendTimeout time.Duration
	logger      *logger.Logger
}

func NewMemoryRegistry(sendTimeout time.Duration, logger *logger.Logger) *MemoryRegistry {
	return &MemoryRegistry{
		conns:       make(map[int64]map[string]Conn),
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

func (r *MemoryRegistry) Register(subjectID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[subjectID]
	if !ok {
		set = make(map[string]Conn)
		r.conns[subjectID] = set
	}
	set[conn.ID()] = conn
}

func (r *MemoryRegistry) Unregister(subjectID int64, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(subjectID, conn)
}

// unregisterLocked removes conn and reports whether it was present.
func (r *MemoryRegistry) unregisterLocked(subjectID int64, conn Conn) bool {
	set, ok := r.conns[subjectID]
	if !ok {
		return false
	}
	if _, ok := set[conn.ID()]; !ok {
		return false
	}
	delete(set, conn.ID())
	if len(set) == 0 {
		delete(r.conns, subjectID)
	}
	return true
}

func (r *MemoryRegistry) SendToSubject(ctx context.Context, subjectID int64, msg Message) {
	r.mu.RLock()
	targets := make([]Conn, 0, len(r.conns[subjectID]))
	for _, c := range r.conns[subjectID] {
		targets = append(targets, c)
	}
	r.mu.RUnlock()

	for _, c := range targets {
		r.send(ctx, subjectID, c, msg)
	}
}

func (r *MemoryRegistry) SendToSubjects(ctx context.Context, subjectIDs []int64, msg Message) {
	for _, id := range subjectIDs {
		r.SendToSubject(ctx, id, msg)
	}
}

func (r *MemoryRegistry) BroadcastAll(ctx context.Context, msg Message) {
	r.mu.RLock()
	subjects := make([]int64, 0, len(r.conns))
	for id := range r.conns {
		subjects = append(subjects, id)
	}
	r.mu.RUnlock()

	r.SendToSubjects(ctx, subjects, msg)
}

func (r *MemoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, set := range r.conns {
		total += len(set)
	}
	return total
}

func (r *MemoryRegistry) Stats() map[int64]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[int64]int, len(r.conns))
	for id, set := range r.conns {
		stats[id] = len(set)
	}
	return stats
}

func (r *MemoryRegistry) send(ctx context.Context, subjectID int64, conn Conn, msg Message) {
	ctx, cancel := context.WithTimeout(ctx, r.sendTimeout)
	defer cancel()

	err := conn.Send(ctx, msg)
	if err == nil {
		return
	}

	r.mu.Lock()
	removed := r.unregisterLocked(subjectID, conn)
	r.mu.Unlock()

	if removed {
		r.logger.Info("Registry: dropped connection after failed send", "subject_id", subjectID, "conn_id", conn.ID(), "error", err)
		_ = conn.Close()
	}
}
