package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/attendance-server/internal/logger"
	"github.com/dtroode/attendance-server/internal/model"
)

var _ model.EventPublisher = (*Dispatcher)(nil)

// DispatcherConfig holds the channel parameters of a Dispatcher.
type DispatcherConfig struct {
	PingInterval time.Duration
	EventBuffer  int
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// Dispatcher pushes domain events to interested subjects and runs the
// per-connection liveness loop.
type Dispatcher struct {
	registry  Registry
	directory model.Directory
	sink      model.NotificationSink
	events    chan model.Event
	cfg       DispatcherConfig
	logger    *logger.Logger
}

func NewDispatcher(registry Registry, directory model.Directory, sink model.NotificationSink, cfg DispatcherConfig, logger *logger.Logger) *Dispatcher {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Dispatcher{
		registry:  registry,
		directory: directory,
		sink:      sink,
		events:    make(chan model.Event, cfg.EventBuffer),
		cfg:       cfg,
		logger:    logger,
	}
}

// Publish enqueues the event without blocking. When the buffer is full the
// event is dropped.
func (d *Dispatcher) Publish(event model.Event) {
	select {
	case d.events <- event:
	default:
		d.logger.Warn("Dispatcher: event buffer full, dropping event", "kind", event.Kind, "code", event.SessionCode)
	}
}

// Run delivers published events until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			if err := d.dispatch(ctx, event); err != nil {
				d.logger.Error("Dispatcher: failed to dispatch event", "kind", event.Kind, "code", event.SessionCode, "error", err)
			}
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event model.Event) error {
	audience, err := d.audience(ctx, event)
	if err != nil {
		return err
	}

	d.registry.SendToSubjects(ctx, audience, EventMessage(event))

	if event.Kind == model.EventAttendanceMarked {
		n := model.Notification{
			Kind:      string(event.Kind),
			Title:     "Attendance marked",
			Message:   fmt.Sprintf("You were marked present in session %s", event.SessionCode),
			CreatedAt: event.OccurredAt,
		}
		if err := d.sink.Notify(ctx, event.SubjectID, n); err != nil {
			return fmt.Errorf("failed to store notification: %w", err)
		}
	}

	return nil
}

func (d *Dispatcher) audience(ctx context.Context, event model.Event) ([]int64, error) {
	switch event.Kind {
	case model.EventSessionOpened:
		students, err := d.directory.EnrolledSubjects(ctx, event.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve enrolled subjects: %w", err)
		}
		return unique(append(students, event.PresenterID)), nil
	case model.EventAttendanceMarked:
		faculty, err := d.directory.CourseFaculty(ctx, event.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve course faculty: %w", err)
		}
		return unique(append([]int64{event.SubjectID}, faculty...)), nil
	case model.EventSessionClosed:
		faculty, err := d.directory.CourseFaculty(ctx, event.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve course faculty: %w", err)
		}
		students, err := d.directory.EnrolledSubjects(ctx, event.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve enrolled subjects: %w", err)
		}
		return unique(append(faculty, students...)), nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", event.Kind)
	}
}

// Serve runs one connection until it disconnects, a send fails or ctx is
// done. The connection is registered for the duration of the call.
func (d *Dispatcher) Serve(ctx context.Context, subjectID int64, conn FrameConn) {
	ctx, cancel := context.WithCancel(ctx)

	var once sync.Once
	teardown := func() {
		once.Do(func() {
			cancel()
			d.registry.Unregister(subjectID, conn)
			_ = conn.Close()
			d.logger.Info("Dispatcher: connection closed", "subject_id", subjectID, "conn_id", conn.ID(), "connections", d.registry.Count())
		})
	}
	defer teardown()

	d.registry.Register(subjectID, conn)
	d.logger.Info("Dispatcher: connection opened", "subject_id", subjectID, "conn_id", conn.ID(), "connections", d.registry.Count())

	welcome := Message{
		Type: TypeConnected,
		Fields: map[string]any{
			"message":         "Real-time connection established",
			"connected_users": d.registry.Count(),
		},
		Timestamp: d.cfg.Now(),
	}
	if err := conn.Send(ctx, welcome); err != nil {
		return
	}

	go d.pingLoop(ctx, conn, teardown)

	for {
		frame, err := conn.ReadFrame()
		if err != nil {
			return
		}
		if !isHeartbeat(frame) {
			continue
		}
		if err := conn.Send(ctx, Message{Type: TypePong}); err != nil {
			return
		}
	}
}

func (d *Dispatcher) pingLoop(ctx context.Context, conn Conn, teardown func()) {
	ticker := time.NewTicker(d.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			teardown()
			return
		case <-ticker.C:
			ping := Message{
				Type:      TypePing,
				Fields:    map[string]any{"connected_users": d.registry.Count()},
				Timestamp: d.cfg.Now(),
			}
			if err := conn.Send(ctx, ping); err != nil {
				teardown()
				return
			}
		}
	}
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
