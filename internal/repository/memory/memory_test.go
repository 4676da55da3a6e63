package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/attendance-server/internal/model"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewSessionRepository(NewDB())

	t.Run("open", func(t *testing.T) {
		superseded, err := repo.Open(ctx, model.Session{Code: "AAAAA1", CourseID: 7, PresenterID: 9, CreatedAt: now})
		require.NoError(t, err)
		assert.Empty(t, superseded)

		s, err := repo.GetByCode(ctx, "AAAAA1")
		require.NoError(t, err)
		assert.True(t, s.Active)
		assert.Nil(t, s.ClosedAt)
	})

	t.Run("code collision", func(t *testing.T) {
		_, err := repo.Open(ctx, model.Session{Code: "AAAAA1", CourseID: 8, PresenterID: 9, CreatedAt: now})
		assert.ErrorIs(t, err, model.ErrCodeTaken)
	})

	t.Run("supersede", func(t *testing.T) {
		superseded, err := repo.Open(ctx, model.Session{Code: "AAAAA2", CourseID: 7, PresenterID: 9, CreatedAt: now.Add(time.Minute)})
		require.NoError(t, err)
		assert.Equal(t, []string{"AAAAA1"}, superseded)

		s, err := repo.GetByCode(ctx, "AAAAA1")
		require.NoError(t, err)
		assert.False(t, s.Active)
		require.NotNil(t, s.ClosedAt)
		assert.Equal(t, now.Add(time.Minute), *s.ClosedAt)
	})

	t.Run("deactivate", func(t *testing.T) {
		changed, err := repo.Deactivate(ctx, "AAAAA2", now)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = repo.Deactivate(ctx, "AAAAA2", now)
		require.NoError(t, err)
		assert.False(t, changed)

		_, err = repo.Deactivate(ctx, "ZZZZZZ", now)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("list by course keeps open order", func(t *testing.T) {
		list, err := repo.ListByCourse(ctx, 7)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "AAAAA1", list[0].Code)
		assert.Equal(t, "AAAAA2", list[1].Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := repo.GetByCode(ctx, "ZZZZZZ")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestMarkRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	db := NewDB()
	sessions := NewSessionRepository(db)
	marks := NewMarkRepository(db)

	_, err := sessions.Open(ctx, model.Session{Code: "AAAAA1", CourseID: 7, PresenterID: 9, CreatedAt: now})
	require.NoError(t, err)

	t.Run("unknown session", func(t *testing.T) {
		err := marks.Create(ctx, model.Mark{ID: uuid.New(), SessionCode: "ZZZZZZ", SubjectID: 1, MarkedAt: now})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("concurrent duplicates", func(t *testing.T) {
		var ok, dup atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := marks.Create(ctx, model.Mark{ID: uuid.New(), SessionCode: "AAAAA1", SubjectID: 42, MarkedAt: now})
				if err == nil {
					ok.Add(1)
				} else if assert.ErrorIs(t, err, model.ErrAlreadyMarked) {
					dup.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(49), dup.Load())
	})

	t.Run("list in insertion order", func(t *testing.T) {
		require.NoError(t, marks.Create(ctx, model.Mark{ID: uuid.New(), SessionCode: "AAAAA1", SubjectID: 3, MarkedAt: now}))
		require.NoError(t, marks.Create(ctx, model.Mark{ID: uuid.New(), SessionCode: "AAAAA1", SubjectID: 1, MarkedAt: now}))

		list, err := marks.ListBySession(ctx, "AAAAA1")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []int64{42, 3, 1}, []int64{list[0].SubjectID, list[1].SubjectID, list[2].SubjectID})

		empty, err := marks.ListBySession(ctx, "ZZZZZZ")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()
	d.AddCourse(7, 9)
	d.Enroll(7, 43, 42)

	ok, err := d.IsEnrolled(ctx, 42, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.IsEnrolled(ctx, 42, 8)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = d.TeachesCourse(ctx, 9, 7)
	require.NoError(t, err)
	assert.True(t, ok)

	faculty, err := d.CourseFaculty(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, faculty)

	students, err := d.EnrolledSubjects(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{42, 43}, students)

	none, err := d.EnrolledSubjects(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}
