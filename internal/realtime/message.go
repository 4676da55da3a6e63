package realtime

import (
	"encoding/json"
	"time"

	"github.com/dtroode/attendance-server/internal/model"
)

// Message types pushed to clients besides domain event kinds.
const (
	TypeConnected = "connected"
	TypePing      = "ping"
	TypePong      = "pong"
)

// Message is one JSON frame on the real-time channel. Fields are flattened
// next to "type" and "timestamp" on the wire.
type Message struct {
	Type      string
	Fields    map[string]any
	Timestamp time.Time
}

func (m Message) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Fields)+2)
	for k, v := range m.Fields {
		out[k] = v
	}
	out["type"] = m.Type
	if !m.Timestamp.IsZero() {
		out["timestamp"] = m.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(out)
}

// EventMessage converts a domain event to its wire form.
func EventMessage(event model.Event) Message {
	fields := map[string]any{
		"session_code": event.SessionCode,
		"course_id":    event.CourseID,
	}
	if event.Kind == model.EventAttendanceMarked {
		fields["subject_id"] = event.SubjectID
		fields["status"] = string(model.StatusPresent)
	}
	return Message{Type: string(event.Kind), Fields: fields, Timestamp: event.OccurredAt}
}

// isHeartbeat reports whether an inbound frame is a client ping.
func isHeartbeat(frame []byte) bool {
	var in struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &in); err != nil {
		return false
	}
	return in.Type == TypePing
}
