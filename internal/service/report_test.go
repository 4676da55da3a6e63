package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/attendance-server/internal/code"
	"github.com/dtroode/attendance-server/internal/mocks"
	"github.com/dtroode/attendance-server/internal/model"
	"github.com/dtroode/attendance-server/internal/testutil"
)

func TestReport_CourseReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	report := NewReport(f.store, f.marks, f.directory)

	first := f.open(t)
	token := code.DeriveToken(first.Code, code.Bucket(f.clock.Now(), time.Minute))
	_, err := f.verifier.Verify(ctx, first.Code, token, enrolledID)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	second := f.open(t)

	rows, err := report.CourseReport(ctx, presenterID, courseID)
	require.NoError(t, err)

	assert.Equal(t, []model.ReportRow{
		{SessionCode: first.Code, Date: first.CreatedAt, SubjectID: 42, Status: model.StatusPresent},
		{SessionCode: first.Code, Date: first.CreatedAt, SubjectID: 43, Status: model.StatusAbsent},
		{SessionCode: second.Code, Date: second.CreatedAt, SubjectID: 42, Status: model.StatusAbsent},
		{SessionCode: second.Code, Date: second.CreatedAt, SubjectID: 43, Status: model.StatusAbsent},
	}, rows)

	_, err = report.CourseReport(ctx, 1000, courseID)
	assert.ErrorIs(t, err, model.ErrNotAuthorized)
}

func TestArchiver_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("writes csv roster", func(t *testing.T) {
		f := newFixture(t)
		s := f.open(t)
		token := code.DeriveToken(s.Code, code.Bucket(f.clock.Now(), time.Minute))
		_, err := f.verifier.Verify(ctx, s.Code, token, enrolledID)
		require.NoError(t, err)
		f.clock.Advance(30 * time.Second)
		require.NoError(t, f.sessions.Close(ctx, s.Code))

		var written string
		storage := mocks.NewArchiveStorage(t)
		storage.On("Exists", mock.Anything, ArchiveKey(s.Code)).Return(false, nil).Once()
		storage.On("Put", mock.Anything, ArchiveKey(s.Code), mock.Anything, "text/csv").
			Run(func(args mock.Arguments) { written = string(args.Get(2).([]byte)) }).
			Return(nil).Once()

		a := NewArchiver(f.store, NewReport(f.store, f.marks, f.directory), storage, testutil.MakeNoopLogger())
		require.NoError(t, a.Archive(ctx, s))

		lines := strings.Split(strings.TrimSpace(written), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "session_code,course_id,opened_at,closed_at,subject_id,status", lines[0])
		assert.Equal(t, s.Code+",7,2023-11-14T22:14:00Z,2023-11-14T22:14:30Z,42,present", lines[1])
		assert.Equal(t, s.Code+",7,2023-11-14T22:14:00Z,2023-11-14T22:14:30Z,43,absent", lines[2])
	})

	t.Run("skips existing archive", func(t *testing.T) {
		storage := mocks.NewArchiveStorage(t)
		storage.On("Exists", mock.Anything, "sessions/ABC123.csv").Return(true, nil).Once()

		a := NewArchiver(mocks.NewSessionStore(t), nil, storage, testutil.MakeNoopLogger())
		assert.NoError(t, a.Archive(ctx, model.Session{Code: "ABC123"}))
	})

	t.Run("storage error", func(t *testing.T) {
		storage := mocks.NewArchiveStorage(t)
		storage.On("Exists", mock.Anything, "sessions/ABC123.csv").Return(false, errors.New("unreachable")).Once()

		a := NewArchiver(mocks.NewSessionStore(t), nil, storage, testutil.MakeNoopLogger())
		err := a.Archive(ctx, model.Session{Code: "ABC123"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check archive")
	})
}
