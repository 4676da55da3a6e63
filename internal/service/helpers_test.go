package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/attendance-server/internal/model"
	"github.com/dtroode/attendance-server/internal/repository/memory"
	"github.com/dtroode/attendance-server/internal/testutil"
)

const (
	courseID    int64 = 7
	presenterID int64 = 3
	enrolledID  int64 = 42
	outsiderID  int64 = 99
)

// bucketAligned is the start of a 60s bucket.
var bucketAligned = time.Unix(1_700_000_040, 0).UTC()

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) kinds() []model.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]model.EventKind, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (p *recordingPublisher) last() model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type fixture struct {
	clock     *testutil.Clock
	db        *memory.DB
	store     *memory.SessionRepository
	marks     *memory.MarkRepository
	directory *memory.Directory
	publisher *recordingPublisher
	settings  Settings
	sessions  *Sessions
	verifier  *Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		clock:     testutil.NewClock(bucketAligned),
		db:        memory.NewDB(),
		directory: memory.NewDirectory(),
		publisher: &recordingPublisher{},
	}
	f.store = memory.NewSessionRepository(f.db)
	f.marks = memory.NewMarkRepository(f.db)
	f.directory.AddCourse(courseID, presenterID)
	f.directory.Enroll(courseID, enrolledID, 43)

	f.settings = Settings{
		BucketWidth: 60 * time.Second,
		MaxLifetime: 120 * time.Second,
		Now:         f.clock.Now,
	}

	log := testutil.MakeNoopLogger()
	f.sessions = NewSessions(f.store, f.marks, f.directory, f.publisher, f.settings, log)
	f.verifier = NewVerifier(f.sessions, f.marks, f.directory, f.publisher, f.settings, log)
	return f
}

func (f *fixture) open(t *testing.T) model.Session {
	t.Helper()
	s, err := f.sessions.Open(context.Background(), courseID, presenterID)
	require.NoError(t, err)
	return s
}
