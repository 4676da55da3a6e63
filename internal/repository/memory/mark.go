package memory

import (
	"context"
	"sort"

	"github.com/dtroode/attendance-server/internal/model"
)

type markRow struct {
	mark model.Mark
	seq  int
}

var _ model.MarkStore = (*MarkRepository)(nil)

type MarkRepository struct {
	db *DB
}

func NewMarkRepository(db *DB) *MarkRepository {
	return &MarkRepository{db: db}
}

func (r *MarkRepository) Create(_ context.Context, mark model.Mark) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[mark.SessionCode]; !ok {
		return model.ErrNotFound
	}

	bySubject, ok := r.db.marks[mark.SessionCode]
	if !ok {
		bySubject = make(map[int64]markRow)
		r.db.marks[mark.SessionCode] = bySubject
	}
	if _, dup := bySubject[mark.SubjectID]; dup {
		return model.ErrAlreadyMarked
	}
	bySubject[mark.SubjectID] = markRow{mark: mark, seq: len(bySubject)}
	return nil
}

func (r *MarkRepository) ListBySession(_ context.Context, sessionCode string) ([]model.Mark, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]markRow, 0, len(r.db.marks[sessionCode]))
	for _, row := range r.db.marks[sessionCode] {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	marks := make([]model.Mark, 0, len(rows))
	for _, row := range rows {
		marks = append(marks, row.mark)
	}
	return marks, nil
}
