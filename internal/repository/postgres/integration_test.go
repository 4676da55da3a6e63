//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/attendance-server/internal/model"
	repo "github.com/dtroode/attendance-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "attendance_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/attendance_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	sessions := repo.NewSessionRepository(conn)
	marks := repo.NewMarkRepository(conn)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("open supersedes active session of course", func(t *testing.T) {
		superseded, err := sessions.Open(ctx, model.Session{Code: "AAAAA1", CourseID: 100, PresenterID: 9, CreatedAt: now})
		require.NoError(t, err)
		assert.Empty(t, superseded)

		superseded, err = sessions.Open(ctx, model.Session{Code: "AAAAA2", CourseID: 100, PresenterID: 9, CreatedAt: now.Add(time.Second)})
		require.NoError(t, err)
		assert.Equal(t, []string{"AAAAA1"}, superseded)

		old, err := sessions.GetByCode(ctx, "AAAAA1")
		require.NoError(t, err)
		assert.False(t, old.Active)
		require.NotNil(t, old.ClosedAt)

		list, err := sessions.ListByCourse(ctx, 100)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "AAAAA1", list[0].Code)
	})

	t.Run("code collision", func(t *testing.T) {
		_, err := sessions.Open(ctx, model.Session{Code: "AAAAA2", CourseID: 200, PresenterID: 9, CreatedAt: now})
		assert.ErrorIs(t, err, model.ErrCodeTaken)
	})

	t.Run("deactivate", func(t *testing.T) {
		changed, err := sessions.Deactivate(ctx, "AAAAA2", now)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = sessions.Deactivate(ctx, "AAAAA2", now)
		require.NoError(t, err)
		assert.False(t, changed)

		_, err = sessions.Deactivate(ctx, "ZZZZZZ", now)
		assert.ErrorIs(t, err, model.ErrNotFound)

		_, err = sessions.GetByCode(ctx, "ZZZZZZ")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("concurrent marks", func(t *testing.T) {
		_, err := sessions.Open(ctx, model.Session{Code: "BBBBB1", CourseID: 300, PresenterID: 9, CreatedAt: now})
		require.NoError(t, err)

		var ok, dup atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := marks.Create(ctx, model.Mark{ID: uuid.New(), SessionCode: "BBBBB1", SubjectID: 42, MarkedAt: now})
				switch {
				case err == nil:
					ok.Add(1)
				case assert.ErrorIs(t, err, model.ErrAlreadyMarked):
					dup.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(15), dup.Load())

		list, err := marks.ListBySession(ctx, "BBBBB1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(42), list[0].SubjectID)
	})

	t.Run("mark for unknown session", func(t *testing.T) {
		err := marks.Create(ctx, model.Mark{ID: uuid.New(), SessionCode: "NOPE00", SubjectID: 1, MarkedAt: now})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := conn.Exec(ctx, `INSERT INTO courses (id, faculty_id) VALUES (7, 9)`)
		require.NoError(t, err)
		_, err = conn.Exec(ctx, `INSERT INTO enrollments (student_id, course_id) VALUES (42, 7), (43, 7)`)
		require.NoError(t, err)

		dir, err := repo.OpenDirectory(ctx, dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = dir.Close() })

		ok, err := dir.IsEnrolled(ctx, 42, 7)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = dir.TeachesCourse(ctx, 9, 7)
		require.NoError(t, err)
		assert.True(t, ok)

		students, err := dir.EnrolledSubjects(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, []int64{42, 43}, students)
	})
}
